package models

import (
	// Go Internal Packages
	"time"
)

// Gateway is one of the supported payment processors.
type Gateway string

const (
	GatewayYoco   Gateway = "yoco"
	GatewayStripe Gateway = "stripe"
	GatewayMpesa  Gateway = "mpesa"
)

// GatewayPriority is the fixed order used when auto-selecting the
// default gateway among the enabled ones.
var GatewayPriority = []Gateway{GatewayYoco, GatewayStripe, GatewayMpesa}

func (g Gateway) Valid() bool {
	switch g {
	case GatewayYoco, GatewayStripe, GatewayMpesa:
		return true
	}
	return false
}

// SendMethod is the delivery channel for the payment link.
type SendMethod string

const (
	SendWhatsApp SendMethod = "whatsapp"
	SendSMS      SendMethod = "sms"
	SendEmail    SendMethod = "email"
	SendQR       SendMethod = "qr"
)

func (m SendMethod) Valid() bool {
	switch m {
	case SendWhatsApp, SendSMS, SendEmail, SendQR:
		return true
	}
	return false
}

// RequiresContact reports whether the channel needs a destination
// contact. QR renders the raw link on screen instead.
func (m SendMethod) RequiresContact() bool {
	return m != SendQR
}

// Status is the lifecycle state of a transaction record. A record is
// created pending and moves to exactly one terminal status.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
	StatusExpired Status = "expired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed, StatusExpired:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusPaid || s == StatusFailed || s == StatusExpired
}

// CanTransition reports whether a record may move from one status to
// another. Re-applying the current status is allowed (idempotent no-op);
// moving between two different terminal statuses is not.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	return !from.Terminal()
}

// Transaction is the durable record of one quick-sale submission. Field
// names are a stable contract consumed by history views and status
// polling outside this service.
type Transaction struct {
	ID             string     `json:"id" bson:"_id"`
	TenantID       string     `json:"tenantId" bson:"tenantId"`
	Amount         float64    `json:"amount" bson:"amount"`
	AmountCents    int64      `json:"amountCents" bson:"amountCents"`
	Description    string     `json:"description" bson:"description"`
	Gateway        Gateway    `json:"gateway" bson:"gateway"`
	CheckoutID     string     `json:"checkoutId" bson:"checkoutId"`
	PaymentURL     string     `json:"paymentUrl" bson:"paymentUrl"`
	SendMethod     SendMethod `json:"sendMethod" bson:"sendMethod"`
	SendTo         string     `json:"sendTo" bson:"sendTo"`
	SignatureImage []byte     `json:"-" bson:"signatureImage,omitempty"`
	VATAmount      float64    `json:"vatAmount" bson:"vatAmount"`
	VATRate        float64    `json:"vatRate" bson:"vatRate"`
	Status         Status     `json:"status" bson:"status"`
	CreatedAt      time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt" bson:"updatedAt"`
}
