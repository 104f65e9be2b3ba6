package status

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"

	// Local Packages
	errors "quick-sale/errors"
	models "quick-sale/models"

	// External Packages
	"go.uber.org/zap"
)

type TxRepository interface {
	GetByCheckoutID(ctx context.Context, checkoutID string) (*models.Transaction, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) error
}

type DeadLetterQueue interface {
	Send(ctx context.Context, records []models.Record) error
}

// StatusProcessor applies gateway payment-status events to the stored
// transaction records. Events that cannot be applied are dead-lettered
// rather than dropped.
type StatusProcessor struct {
	Logger *zap.Logger
	TxRepo TxRepository
	DLQ    DeadLetterQueue
}

func NewStatusProcessor(logger *zap.Logger, txRepo TxRepository, dlq DeadLetterQueue) *StatusProcessor {
	return &StatusProcessor{Logger: logger, TxRepo: txRepo, DLQ: dlq}
}

func (p *StatusProcessor) ProcessRecords(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	var failed []models.Record
	for _, record := range records {
		if err := p.processRecord(ctx, record); err != nil {
			p.Logger.Error("failed to apply status event",
				zap.ByteString("key", record.Key), zap.Error(err))
			failed = append(failed, record)
		}
	}

	if len(failed) > 0 {
		if err := p.DLQ.Send(ctx, failed); err != nil {
			return fmt.Errorf("failed to dead-letter %d records: %v", len(failed), err)
		}
	}
	return nil
}

func (p *StatusProcessor) processRecord(ctx context.Context, record models.Record) error {
	var event models.PaymentStatusEvent
	if err := json.Unmarshal(record.Value, &event); err != nil {
		return errors.E(errors.Invalid, "malformed status event", err)
	}
	if event.CheckoutID == "" {
		return errors.EmptyParamErr("checkout_id")
	}
	if !event.Status.Valid() {
		return errors.E(errors.Invalid, fmt.Sprintf("unknown status %q", event.Status))
	}

	txn, err := p.TxRepo.GetByCheckoutID(ctx, event.CheckoutID)
	if err != nil {
		return err
	}

	// Redelivered events for a status the record already holds are
	// no-ops by repository contract.
	if err := p.TxRepo.UpdateStatus(ctx, txn.ID, event.Status); err != nil {
		return err
	}

	p.Logger.Info("transaction status updated",
		zap.String("transaction_id", txn.ID),
		zap.String("checkout_id", event.CheckoutID),
		zap.String("status", string(event.Status)))
	return nil
}
