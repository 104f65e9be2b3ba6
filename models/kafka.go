package models

import (
	// Go Internal Packages
	"time"
)

type Record struct {
	Key   []byte
	Value []byte
	Topic string
}

// PaymentStatusEvent is the message the webhook handlers publish and the
// status worker consumes. Keyed by checkout id on the topic.
type PaymentStatusEvent struct {
	CheckoutID string    `json:"checkout_id"`
	Gateway    Gateway   `json:"gateway"`
	Status     Status    `json:"status"`
	Reference  string    `json:"reference,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
