package gateways

import (
	// Go Internal Packages
	"context"
	"net/http"
	"time"

	// Local Packages
	config "quick-sale/config"
	errors "quick-sale/errors"
	models "quick-sale/models"

	// External Packages
	"go.uber.org/zap"
)

// Adapter creates a payment checkout against one external processor and
// normalizes the result to the {id, url} shape the orchestrator expects.
type Adapter interface {
	Name() models.Gateway
	CreateCheckout(ctx context.Context, req models.CheckoutRequest) (*models.Checkout, error)
}

// Registry holds the adapters for the tenant's enabled gateways. Built
// once at startup from the read-only tenant configuration.
type Registry struct {
	adapters map[models.Gateway]Adapter
	logger   *zap.Logger
}

func NewRegistry(cfg config.Gateways, logger *zap.Logger) *Registry {
	httpc := &http.Client{Timeout: 20 * time.Second}
	adapters := make(map[models.Gateway]Adapter)

	if cfg.Yoco.Enabled {
		adapters[models.GatewayYoco] = NewYocoAdapter(cfg.Yoco, httpc, logger)
	}
	if cfg.Stripe.Enabled {
		adapters[models.GatewayStripe] = NewStripeAdapter(cfg.Stripe, logger)
	}
	if cfg.Mpesa.Enabled {
		adapters[models.GatewayMpesa] = NewMpesaAdapter(cfg.Mpesa, httpc, logger)
	}

	return &Registry{adapters: adapters, logger: logger}
}

// Enabled lists the usable gateways in fixed priority order.
func (r *Registry) Enabled() []models.Gateway {
	enabled := make([]models.Gateway, 0, len(r.adapters))
	for _, g := range models.GatewayPriority {
		if _, ok := r.adapters[g]; ok {
			enabled = append(enabled, g)
		}
	}
	return enabled
}

// Default picks the first enabled gateway in priority order.
func (r *Registry) Default() (models.Gateway, bool) {
	for _, g := range models.GatewayPriority {
		if _, ok := r.adapters[g]; ok {
			return g, true
		}
	}
	return "", false
}

// CreateCheckout delegates to the adapter for the selected gateway.
func (r *Registry) CreateCheckout(ctx context.Context, gateway models.Gateway, req models.CheckoutRequest) (*models.Checkout, error) {
	adapter, ok := r.adapters[gateway]
	if !ok {
		return nil, errors.UnconfiguredGatewayErr(string(gateway))
	}
	if req.AmountCents <= 0 {
		return nil, errors.E(errors.Invalid, "checkout amount must be a positive number of cents")
	}

	checkout, err := adapter.CreateCheckout(ctx, req)
	if err != nil {
		return nil, err
	}
	r.logger.Info("checkout created",
		zap.String("gateway", string(gateway)),
		zap.String("checkout_id", checkout.ID))
	return checkout, nil
}
