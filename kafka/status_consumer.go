package kafka

import (
	// Go Internal Packages
	"context"
	"errors"
	"fmt"

	// Local Packages
	models "quick-sale/models"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

type ConsumerConfig struct {
	Brokers        []string
	Name           string
	Topic          string
	RecordsPerPoll int
}

type Consumer struct {
	Client    *kgo.Client
	Config    *ConsumerConfig
	Processor StatusProcessor
	Logger    *zap.Logger
}

type StatusProcessor interface {
	ProcessRecords(ctx context.Context, records []models.Record) error
}

// NewStatusConsumer creates a consumer for the payment-status topic
// (PS: Must call Poll to start consuming the records)
func NewStatusConsumer(conf *ConsumerConfig, logger *zap.Logger, processor StatusProcessor, metrics *kprom.Metrics) (*Consumer, error) {
	c := &Consumer{Config: conf, Processor: processor, Logger: logger}

	opts := []kgo.Opt{
		kgo.SeedBrokers(conf.Brokers...), // Connects to Kafka brokers
		kgo.ConsumerGroup(conf.Name),     // Specifies the consumer group
		kgo.ConsumeTopics(conf.Topic),    // Specifies a single topic to consume
		kgo.WithHooks(metrics),           // Attaches monitoring hooks
		kgo.DisableAutoCommit(),          // Disables auto-commit
		kgo.BlockRebalanceOnPoll(),       // Blocks rebalancing until the poll loop is running
	}

	client, err := kgo.NewClient(opts...)
	if err != nil || client == nil {
		return nil, err
	}

	c.Client = client
	return c, nil
}

// Poll polls for records from the Kafka broker.
func (c *Consumer) Poll(ctx context.Context) error {
	defer c.Client.Close()

	consumerName := c.Config.Name
	recordsPerPoll := c.Config.RecordsPerPoll

	for {
		// Check if the context is canceled before polling
		if ctx.Err() != nil {
			c.Logger.Warn("Polling stopped: context canceled")
			return ctx.Err()
		}

		c.Logger.Info(fmt.Sprintf("%s: polling for records", consumerName))
		fetches := c.Client.PollRecords(ctx, recordsPerPoll)

		if fetches.IsClientClosed() {
			return errors.New("kafka client closed")
		}

		if errors.Is(fetches.Err0(), context.Canceled) {
			return errors.New("context got canceled")
		}

		records := make([]models.Record, len(fetches.Records()))
		for idx, record := range fetches.Records() {
			records[idx] = models.Record{
				Key:   record.Key,
				Value: record.Value,
				Topic: record.Topic,
			}
		}

		// Process records; a single bad batch must not stop the loop
		if err := c.Processor.ProcessRecords(ctx, records); err != nil {
			c.Logger.Error("Failed to process records", zap.Error(err))
			continue
		}

		// Commit processed records
		_ = c.Client.CommitRecords(ctx, fetches.Records()...)
	}
}
