package models

// CheckoutRequest is the normalized input every gateway adapter accepts.
// CustomerPhone is only consulted by push-based gateways.
type CheckoutRequest struct {
	AmountCents   int64
	Currency      string
	Description   string
	CustomerPhone string
}

// Checkout is the normalized result of creating a gateway-side payment
// request, whatever the processor calls these fields natively.
type Checkout struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
