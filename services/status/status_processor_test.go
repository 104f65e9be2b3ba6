package status_test

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"testing"
	"time"

	// Local Packages
	errors "quick-sale/errors"
	models "quick-sale/models"
	status "quick-sale/services/status"

	// External Packages
	"go.uber.org/zap"
)

type fakeTxRepo struct {
	// keyed by checkout id
	txns        map[string]*models.Transaction
	updateCalls int
}

func (f *fakeTxRepo) GetByCheckoutID(_ context.Context, checkoutID string) (*models.Transaction, error) {
	txn, ok := f.txns[checkoutID]
	if !ok {
		return nil, errors.E(errors.NotFound, "no transaction for checkout "+checkoutID)
	}
	return txn, nil
}

func (f *fakeTxRepo) UpdateStatus(_ context.Context, id string, newStatus models.Status) error {
	f.updateCalls++
	for _, txn := range f.txns {
		if txn.ID != id {
			continue
		}
		if !models.CanTransition(txn.Status, newStatus) {
			return errors.TerminalStatusErr(id, string(txn.Status), string(newStatus))
		}
		txn.Status = newStatus
		return nil
	}
	return errors.TxNotFoundErr(id)
}

type fakeDLQ struct {
	records []models.Record
}

func (f *fakeDLQ) Send(_ context.Context, records []models.Record) error {
	f.records = append(f.records, records...)
	return nil
}

func eventRecord(t *testing.T, checkoutID string, s models.Status) models.Record {
	t.Helper()
	value, err := json.Marshal(models.PaymentStatusEvent{
		CheckoutID: checkoutID,
		Gateway:    models.GatewayYoco,
		Status:     s,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatal(err)
	}
	return models.Record{Key: []byte(checkoutID), Value: value, Topic: "payment-status"}
}

func TestProcessRecordsAppliesStatus(t *testing.T) {
	repo := &fakeTxRepo{txns: map[string]*models.Transaction{
		"ch_1": {ID: "txn-1", CheckoutID: "ch_1", Status: models.StatusPending},
	}}
	dlq := &fakeDLQ{}
	p := status.NewStatusProcessor(zap.NewNop(), repo, dlq)

	err := p.ProcessRecords(context.Background(), []models.Record{eventRecord(t, "ch_1", models.StatusPaid)})
	if err != nil {
		t.Fatalf("ProcessRecords: %v", err)
	}
	if got := repo.txns["ch_1"].Status; got != models.StatusPaid {
		t.Errorf("status = %s, want paid", got)
	}
	if len(dlq.records) != 0 {
		t.Errorf("nothing should be dead-lettered, got %d", len(dlq.records))
	}
}

func TestProcessRecordsRedeliveryIsIdempotent(t *testing.T) {
	repo := &fakeTxRepo{txns: map[string]*models.Transaction{
		"ch_1": {ID: "txn-1", CheckoutID: "ch_1", Status: models.StatusPending},
	}}
	dlq := &fakeDLQ{}
	p := status.NewStatusProcessor(zap.NewNop(), repo, dlq)

	paid := eventRecord(t, "ch_1", models.StatusPaid)
	for i := 0; i < 2; i++ {
		if err := p.ProcessRecords(context.Background(), []models.Record{paid}); err != nil {
			t.Fatalf("delivery %d: %v", i+1, err)
		}
	}

	if got := repo.txns["ch_1"].Status; got != models.StatusPaid {
		t.Errorf("status = %s, want paid", got)
	}
	if len(dlq.records) != 0 {
		t.Errorf("redelivery must not dead-letter, got %d records", len(dlq.records))
	}
	if repo.updateCalls != 2 {
		t.Errorf("updateCalls = %d, want 2", repo.updateCalls)
	}
}

func TestProcessRecordsTerminalConflictIsDeadLettered(t *testing.T) {
	repo := &fakeTxRepo{txns: map[string]*models.Transaction{
		"ch_1": {ID: "txn-1", CheckoutID: "ch_1", Status: models.StatusPaid},
	}}
	dlq := &fakeDLQ{}
	p := status.NewStatusProcessor(zap.NewNop(), repo, dlq)

	err := p.ProcessRecords(context.Background(), []models.Record{eventRecord(t, "ch_1", models.StatusFailed)})
	if err != nil {
		t.Fatalf("ProcessRecords: %v", err)
	}
	if got := repo.txns["ch_1"].Status; got != models.StatusPaid {
		t.Errorf("terminal status must not move, got %s", got)
	}
	if len(dlq.records) != 1 {
		t.Fatalf("conflicting event must be dead-lettered, got %d", len(dlq.records))
	}
}

func TestProcessRecordsUnknownCheckoutIsDeadLettered(t *testing.T) {
	repo := &fakeTxRepo{txns: map[string]*models.Transaction{}}
	dlq := &fakeDLQ{}
	p := status.NewStatusProcessor(zap.NewNop(), repo, dlq)

	err := p.ProcessRecords(context.Background(), []models.Record{eventRecord(t, "ch_missing", models.StatusPaid)})
	if err != nil {
		t.Fatalf("ProcessRecords: %v", err)
	}
	if len(dlq.records) != 1 {
		t.Fatalf("unknown checkout must be dead-lettered, got %d", len(dlq.records))
	}
}

func TestProcessRecordsMalformedEvent(t *testing.T) {
	repo := &fakeTxRepo{txns: map[string]*models.Transaction{}}
	dlq := &fakeDLQ{}
	p := status.NewStatusProcessor(zap.NewNop(), repo, dlq)

	bad := models.Record{Key: []byte("x"), Value: []byte("{not json"), Topic: "payment-status"}
	if err := p.ProcessRecords(context.Background(), []models.Record{bad}); err != nil {
		t.Fatalf("ProcessRecords: %v", err)
	}
	if len(dlq.records) != 1 {
		t.Fatalf("malformed event must be dead-lettered, got %d", len(dlq.records))
	}
	if repo.updateCalls != 0 {
		t.Errorf("no update may happen for malformed events")
	}
}
