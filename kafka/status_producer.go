package kafka

import (
	// Go Internal Packages
	"context"
	"encoding/json"

	// Local Packages
	models "quick-sale/models"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

// Producer publishes payment-status events keyed by checkout id, so all
// events for one checkout land on the same partition in order.
type Producer struct {
	client *kgo.Client
	topic  string
	logger *zap.Logger
}

func NewStatusProducer(brokers []string, topic string, metrics *kprom.Metrics, logger *zap.Logger) (*Producer, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.WithHooks(metrics),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}
	return &Producer{client: client, topic: topic, logger: logger}, nil
}

func (p *Producer) PublishStatus(ctx context.Context, event models.PaymentStatusEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.CheckoutID),
		Value: value,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return err
	}

	p.logger.Info("status event published",
		zap.String("checkout_id", event.CheckoutID),
		zap.String("status", string(event.Status)))
	return nil
}

func (p *Producer) Close() {
	p.client.Close()
}
