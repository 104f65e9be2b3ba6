package server

import (
	// Go Internal Packages
	"encoding/json"
	"io"
	"net/http"
	"time"

	// Local Packages
	models "quick-sale/models"

	// External Packages
	stripe "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/webhook"
	"go.uber.org/zap"
)

// Webhook handlers normalize each processor's event into a
// PaymentStatusEvent and hand it to the status topic. The worker applies
// it to the record; the handlers themselves never touch the store.

type yocoWebhookEvent struct {
	Type    string `json:"type"`
	Payload struct {
		ID       string `json:"id"`
		Metadata struct {
			CheckoutID string `json:"checkoutId"`
		} `json:"metadata"`
	} `json:"payload"`
}

func (s *Server) handleYocoWebhook(w http.ResponseWriter, r *http.Request) {
	var event yocoWebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var status models.Status
	switch event.Type {
	case "payment.succeeded":
		status = models.StatusPaid
	case "payment.failed":
		status = models.StatusFailed
	default:
		// Event types outside the lifecycle are acknowledged and ignored.
		w.WriteHeader(http.StatusOK)
		return
	}

	// Only metadata.checkoutId resolves to a record; an event without it
	// would just be dead-lettered by the worker, so reject it here.
	s.publishStatus(w, r, models.PaymentStatusEvent{
		CheckoutID: event.Payload.Metadata.CheckoutID,
		Gateway:    models.GatewayYoco,
		Status:     status,
		Reference:  event.Payload.ID,
		OccurredAt: time.Now().UTC(),
	})
}

func (s *Server) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	const maxBodyBytes = int64(65536)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"),
		s.tenant.Gateways.Stripe.WebhookSecret)
	if err != nil {
		s.logger.Warn("stripe webhook signature verification failed", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var status models.Status
	switch event.Type {
	case "checkout.session.completed":
		status = models.StatusPaid
	case "checkout.session.expired":
		status = models.StatusExpired
	default:
		w.WriteHeader(http.StatusOK)
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		s.logger.Warn("stripe webhook payload malformed", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.publishStatus(w, r, models.PaymentStatusEvent{
		CheckoutID: session.ID,
		Gateway:    models.GatewayStripe,
		Status:     status,
		Reference:  event.ID,
		OccurredAt: time.Now().UTC(),
	})
}

type mpesaCallback struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

func (s *Server) handleMpesaWebhook(w http.ResponseWriter, r *http.Request) {
	var callback mpesaCallback
	if err := json.NewDecoder(r.Body).Decode(&callback); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	stk := callback.Body.StkCallback
	status := models.StatusPaid
	if stk.ResultCode != 0 {
		status = models.StatusFailed
	}

	s.publishStatus(w, r, models.PaymentStatusEvent{
		CheckoutID: stk.CheckoutRequestID,
		Gateway:    models.GatewayMpesa,
		Status:     status,
		Reference:  stk.MerchantRequestID,
		OccurredAt: time.Now().UTC(),
	})
}

func (s *Server) publishStatus(w http.ResponseWriter, r *http.Request, event models.PaymentStatusEvent) {
	if event.CheckoutID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := s.publisher.PublishStatus(r.Context(), event); err != nil {
		s.logger.Error("failed to publish status event",
			zap.String("checkout_id", event.CheckoutID), zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}
