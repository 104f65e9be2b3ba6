package gateways

import (
	// Go Internal Packages
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	// Local Packages
	config "quick-sale/config"
	errors "quick-sale/errors"
	models "quick-sale/models"

	// External Packages
	"go.uber.org/zap"
)

// YocoAdapter creates checkouts against the Yoco payment links API.
type YocoAdapter struct {
	secretKey   string
	checkoutURL string
	httpc       *http.Client
	logger      *zap.Logger
}

func NewYocoAdapter(cfg config.Yoco, httpc *http.Client, logger *zap.Logger) *YocoAdapter {
	return &YocoAdapter{
		secretKey:   cfg.SecretKey,
		checkoutURL: cfg.CheckoutURL,
		httpc:       httpc,
		logger:      logger,
	}
}

func (a *YocoAdapter) Name() models.Gateway {
	return models.GatewayYoco
}

type yocoCheckoutRequest struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

type yocoCheckoutResponse struct {
	ID             string `json:"id"`
	URL            string `json:"url"`
	RedirectURL    string `json:"redirectUrl"`
	CheckoutURL    string `json:"checkoutUrl"`
	Status         string `json:"status"`
	DisplayMessage string `json:"displayMessage"`
	Message        string `json:"message"`
}

func (a *YocoAdapter) CreateCheckout(ctx context.Context, req models.CheckoutRequest) (*models.Checkout, error) {
	if a.secretKey == "" {
		return nil, errors.UnconfiguredGatewayErr("yoco")
	}

	body, err := json.Marshal(yocoCheckoutRequest{
		Amount:      req.AmountCents,
		Currency:    req.Currency,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.checkoutURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.secretKey)

	resp, err := a.httpc.Do(httpReq)
	if err != nil {
		return nil, errors.GatewayUnavailableErr("yoco", err)
	}
	defer resp.Body.Close()

	var payload yocoCheckoutResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := payload.DisplayMessage
		if detail == "" {
			detail = payload.Message
		}
		if detail == "" {
			detail = fmt.Sprintf("checkout request failed with status %d", resp.StatusCode)
		}
		return nil, errors.GatewayRejectedErr("yoco", detail)
	}
	if decodeErr != nil {
		return nil, errors.GatewayUnavailableErr("yoco", decodeErr)
	}

	// Yoco has returned the payment URL under more than one field name
	// across API revisions.
	url := payload.URL
	if url == "" {
		url = payload.RedirectURL
	}
	if url == "" {
		url = payload.CheckoutURL
	}
	if payload.ID == "" || url == "" {
		return nil, errors.GatewayRejectedErr("yoco", "response is missing checkout id or payment url")
	}

	return &models.Checkout{ID: payload.ID, URL: url}, nil
}
