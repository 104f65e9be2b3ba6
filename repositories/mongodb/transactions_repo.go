package mongodb

import (
	// Go Internal Packages
	"context"
	"time"

	// Local Packages
	errors "quick-sale/errors"
	models "quick-sale/models"

	// External Packages
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TxRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

func NewTxRepository(client *mongo.Client, database string) *TxRepository {
	return &TxRepository{client: client, database: database, collection: "transactions"}
}

func (r *TxRepository) col() *mongo.Collection {
	return r.client.Database(r.database).Collection(r.collection)
}

// Save inserts a new transaction record as a single atomic write. The
// record always enters the store pending, with server-assigned id and
// timestamps; the assigned id is returned.
func (r *TxRepository) Save(ctx context.Context, txn *models.Transaction) (string, error) {
	now := time.Now().UTC()
	txn.ID = primitive.NewObjectID().Hex()
	txn.Status = models.StatusPending
	txn.CreatedAt = now
	txn.UpdatedAt = now

	if _, err := r.col().InsertOne(ctx, txn); err != nil {
		return "", errors.PersistenceErr(err)
	}
	return txn.ID, nil
}

// UpdateStatus moves a record through its lifecycle. Re-applying the
// current status is an idempotent no-op (only updatedAt moves); a jump
// between two different terminal statuses is rejected.
func (r *TxRepository) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	if !status.Valid() {
		return errors.E(errors.Invalid, "unknown transaction status")
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.CanTransition(current.Status, status) {
		return errors.TerminalStatusErr(id, string(current.Status), string(status))
	}

	// Guard on the previously read status so a concurrent writer cannot
	// slip a terminal record past the transition check.
	filter := bson.M{"_id": id, "status": current.Status}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	res, err := r.col().UpdateOne(ctx, filter, update)
	if err != nil {
		return errors.PersistenceErr(err)
	}
	if res.MatchedCount == 0 {
		return errors.E(errors.Conflict, "transaction status changed concurrently")
	}
	return nil
}

func (r *TxRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&txn)
	if err == mongo.ErrNoDocuments {
		return nil, errors.TxNotFoundErr(id)
	}
	if err != nil {
		return nil, errors.PersistenceErr(err)
	}
	return &txn, nil
}

// GetByCheckoutID resolves the record a gateway status event refers to.
func (r *TxRepository) GetByCheckoutID(ctx context.Context, checkoutID string) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.col().FindOne(ctx, bson.M{"checkoutId": checkoutID}).Decode(&txn)
	if err == mongo.ErrNoDocuments {
		return nil, errors.E(errors.NotFound, "no transaction for checkout "+checkoutID)
	}
	if err != nil {
		return nil, errors.PersistenceErr(err)
	}
	return &txn, nil
}

// List returns a tenant's transactions, newest first, optionally
// filtered by status. Serves the surrounding app's history view.
func (r *TxRepository) List(ctx context.Context, tenantID string, status models.Status, limit int64) ([]models.Transaction, error) {
	filter := bson.M{"tenantId": tenantID}
	if status != "" {
		filter["status"] = status
	}
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.col().Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.PersistenceErr(err)
	}
	defer cursor.Close(ctx)

	txns := make([]models.Transaction, 0)
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, errors.PersistenceErr(err)
	}
	return txns, nil
}
