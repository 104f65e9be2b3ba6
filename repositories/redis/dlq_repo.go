package redis

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"

	// Local Packages
	models "quick-sale/models"

	// External Packages
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DeadLetterQueue stores status events that could not be applied to a
// transaction record so they can be replayed or inspected later. Events
// are appended to one list per consumer, so repeated failures for the
// same checkout are all retained in arrival order.
type DeadLetterQueue struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

func NewDeadLetterQueue(client *redis.Client, consumerName string, logger *zap.Logger) *DeadLetterQueue {
	return &DeadLetterQueue{
		client: client,
		key:    fmt.Sprintf("status-dlq:%s", consumerName),
		logger: logger,
	}
}

// Send appends all failed records to the consumer's dead-letter list.
func (r *DeadLetterQueue) Send(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	successCount := 0
	for _, record := range records {
		jsonData, err := json.Marshal(record)
		if err != nil {
			r.logger.Error("failed to marshal record", zap.Error(err))
			continue
		}

		err = r.client.RPush(ctx, r.key, jsonData).Err()
		if err != nil {
			r.logger.Error("failed to store record", zap.String("key", r.key), zap.Error(err))
			continue
		}
		successCount++
	}

	if successCount > 0 {
		r.logger.Info("dead-lettered status events", zap.Int("count", successCount))
	}

	return nil
}
