package gateways

import (
	// Go Internal Packages
	"context"
	"strings"

	// Local Packages
	config "quick-sale/config"
	errors "quick-sale/errors"
	models "quick-sale/models"

	// External Packages
	stripe "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/client"
	"go.uber.org/zap"
)

// StripeAdapter creates hosted Checkout Sessions. The stripe-go client
// is constructed per adapter instead of through the package-level key so
// credentials stay inside the tenant configuration.
type StripeAdapter struct {
	api        *client.API
	secretKey  string
	successURL string
	logger     *zap.Logger
}

func NewStripeAdapter(cfg config.Stripe, logger *zap.Logger) *StripeAdapter {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &StripeAdapter{
		api:        api,
		secretKey:  cfg.SecretKey,
		successURL: cfg.SuccessURL,
		logger:     logger,
	}
}

func (a *StripeAdapter) Name() models.Gateway {
	return models.GatewayStripe
}

func (a *StripeAdapter) CreateCheckout(ctx context.Context, req models.CheckoutRequest) (*models.Checkout, error) {
	if a.secretKey == "" {
		return nil, errors.UnconfiguredGatewayErr("stripe")
	}

	description := req.Description
	if description == "" {
		description = "Payment"
	}

	params := &stripe.CheckoutSessionParams{
		Params:     stripe.Params{Context: ctx},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(a.successURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(strings.ToLower(req.Currency)),
				UnitAmount: stripe.Int64(req.AmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(description),
				},
			},
			Quantity: stripe.Int64(1),
		}},
	}

	session, err := a.api.CheckoutSessions.New(params)
	if err != nil {
		if stripeErr, ok := err.(*stripe.Error); ok {
			return nil, errors.GatewayRejectedErr("stripe", stripeErr.Msg)
		}
		return nil, errors.GatewayUnavailableErr("stripe", err)
	}

	return &models.Checkout{ID: session.ID, URL: session.URL}, nil
}
