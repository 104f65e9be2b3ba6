package gateways

import (
	// Go Internal Packages
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	// Local Packages
	config "quick-sale/config"
	errors "quick-sale/errors"
	models "quick-sale/models"
	utils "quick-sale/utils"

	// External Packages
	"go.uber.org/zap"
)

// MpesaAdapter initiates a Daraja STK push. M-Pesa has no hosted
// checkout page; the push reaches the customer's phone directly, so the
// returned URL points at the tenant's status page for the push and the
// checkout id is Daraja's CheckoutRequestID.
type MpesaAdapter struct {
	cfg    config.Mpesa
	httpc  *http.Client
	logger *zap.Logger
}

func NewMpesaAdapter(cfg config.Mpesa, httpc *http.Client, logger *zap.Logger) *MpesaAdapter {
	return &MpesaAdapter{cfg: cfg, httpc: httpc, logger: logger}
}

func (a *MpesaAdapter) Name() models.Gateway {
	return models.GatewayMpesa
}

type mpesaTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

type mpesaPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type mpesaPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	ErrorMessage        string `json:"errorMessage"`
}

func (a *MpesaAdapter) CreateCheckout(ctx context.Context, req models.CheckoutRequest) (*models.Checkout, error) {
	if a.cfg.ConsumerKey == "" || a.cfg.ConsumerSecret == "" || a.cfg.ShortCode == "" || a.cfg.Passkey == "" {
		return nil, errors.UnconfiguredGatewayErr("mpesa")
	}

	phone := utils.DigitsOnly(req.CustomerPhone)
	if phone == "" {
		return nil, errors.E(errors.Invalid, "m-pesa requires the customer's phone number")
	}

	token, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := time.Now().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString([]byte(a.cfg.ShortCode + a.cfg.Passkey + timestamp))

	description := req.Description
	if description == "" {
		description = "Payment"
	}

	// Daraja amounts are whole currency units.
	amount := req.AmountCents / 100
	if amount < 1 {
		amount = 1
	}

	body, err := json.Marshal(mpesaPushRequest{
		BusinessShortCode: a.cfg.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            amount,
		PartyA:            phone,
		PartyB:            a.cfg.ShortCode,
		PhoneNumber:       phone,
		CallBackURL:       a.cfg.CallbackURL,
		AccountReference:  "QuickSale",
		TransactionDesc:   description,
	})
	if err != nil {
		return nil, err
	}

	pushURL := a.cfg.BaseURL + "/mpesa/stkpush/v1/processrequest"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, pushURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.httpc.Do(httpReq)
	if err != nil {
		return nil, errors.GatewayUnavailableErr("mpesa", err)
	}
	defer resp.Body.Close()

	var payload mpesaPushResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.GatewayUnavailableErr("mpesa", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || payload.ResponseCode != "0" {
		detail := payload.ResponseDescription
		if detail == "" {
			detail = payload.ErrorMessage
		}
		return nil, errors.GatewayRejectedErr("mpesa", detail)
	}

	return &models.Checkout{
		ID:  payload.CheckoutRequestID,
		URL: fmt.Sprintf("%s/%s", a.cfg.StatusPageURL, payload.CheckoutRequestID),
	}, nil
}

func (a *MpesaAdapter) accessToken(ctx context.Context) (string, error) {
	tokenURL := a.cfg.BaseURL + "/oauth/v1/generate?grant_type=client_credentials"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, tokenURL, nil)
	if err != nil {
		return "", err
	}
	httpReq.SetBasicAuth(a.cfg.ConsumerKey, a.cfg.ConsumerSecret)

	resp, err := a.httpc.Do(httpReq)
	if err != nil {
		return "", errors.GatewayUnavailableErr("mpesa", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.GatewayRejectedErr("mpesa", fmt.Sprintf("auth failed with status %d", resp.StatusCode))
	}

	var payload mpesaTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", errors.GatewayUnavailableErr("mpesa", err)
	}
	if payload.AccessToken == "" {
		return "", errors.GatewayRejectedErr("mpesa", "auth response is missing an access token")
	}
	return payload.AccessToken, nil
}
