package gateways_test

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	// Local Packages
	config "quick-sale/config"
	errors "quick-sale/errors"
	gateways "quick-sale/gateways"
	models "quick-sale/models"

	// External Packages
	"go.uber.org/zap"
)

func yocoAdapter(cfg config.Yoco) *gateways.YocoAdapter {
	return gateways.NewYocoAdapter(cfg, &http.Client{}, zap.NewNop())
}

func TestYocoCreateCheckout(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "ch_123",
			"url":    "https://pay.yoco.com/ch_123",
			"status": "created",
		})
	}))
	defer srv.Close()

	adapter := yocoAdapter(config.Yoco{SecretKey: "sk_test", CheckoutURL: srv.URL})
	checkout, err := adapter.CreateCheckout(context.Background(), models.CheckoutRequest{
		AmountCents: 15000,
		Currency:    "ZAR",
		Description: "Haircut",
	})
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}

	if checkout.ID != "ch_123" || checkout.URL != "https://pay.yoco.com/ch_123" {
		t.Errorf("checkout = %+v", checkout)
	}
	if gotAuth != "Bearer sk_test" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody["amount"] != float64(15000) || gotBody["currency"] != "ZAR" {
		t.Errorf("request body = %v", gotBody)
	}
}

func TestYocoCreateCheckoutAlternateURLField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":          "ch_9",
			"redirectUrl": "https://pay.yoco.com/r/ch_9",
		})
	}))
	defer srv.Close()

	adapter := yocoAdapter(config.Yoco{SecretKey: "sk_test", CheckoutURL: srv.URL})
	checkout, err := adapter.CreateCheckout(context.Background(), models.CheckoutRequest{AmountCents: 100, Currency: "ZAR"})
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}
	if checkout.URL != "https://pay.yoco.com/r/ch_9" {
		t.Errorf("url = %q", checkout.URL)
	}
}

func TestYocoRejectionCarriesProcessorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"displayMessage": "Amount below minimum",
		})
	}))
	defer srv.Close()

	adapter := yocoAdapter(config.Yoco{SecretKey: "sk_test", CheckoutURL: srv.URL})
	_, err := adapter.CreateCheckout(context.Background(), models.CheckoutRequest{AmountCents: 1, Currency: "ZAR"})
	if !errors.Is(errors.Rejected, err) {
		t.Fatalf("want Rejected, got %v", err)
	}
	if msg := errors.MessageOf(err); msg != "yoco: Amount below minimum" {
		t.Errorf("message = %q", msg)
	}
}

func TestYocoNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	adapter := yocoAdapter(config.Yoco{SecretKey: "sk_test", CheckoutURL: srv.URL})
	_, err := adapter.CreateCheckout(context.Background(), models.CheckoutRequest{AmountCents: 100, Currency: "ZAR"})
	if !errors.Is(errors.Unavailable, err) {
		t.Fatalf("want Unavailable, got %v", err)
	}
}

func TestYocoUnconfigured(t *testing.T) {
	adapter := yocoAdapter(config.Yoco{SecretKey: ""})
	_, err := adapter.CreateCheckout(context.Background(), models.CheckoutRequest{AmountCents: 100, Currency: "ZAR"})
	if !errors.Is(errors.Unconfigured, err) {
		t.Fatalf("want Unconfigured, got %v", err)
	}
}

func TestRegistryPriorityOrder(t *testing.T) {
	cfg := config.Gateways{
		Yoco:   config.Yoco{Enabled: false},
		Stripe: config.Stripe{Enabled: true, SecretKey: "sk"},
		Mpesa:  config.Mpesa{Enabled: true, ConsumerKey: "k", ConsumerSecret: "s", ShortCode: "1", Passkey: "p"},
	}
	registry := gateways.NewRegistry(cfg, zap.NewNop())

	enabled := registry.Enabled()
	if len(enabled) != 2 || enabled[0] != models.GatewayStripe || enabled[1] != models.GatewayMpesa {
		t.Errorf("enabled = %v", enabled)
	}

	def, ok := registry.Default()
	if !ok || def != models.GatewayStripe {
		t.Errorf("default = %v (%v)", def, ok)
	}

	if _, err := registry.CreateCheckout(context.Background(), models.GatewayYoco,
		models.CheckoutRequest{AmountCents: 100, Currency: "ZAR"}); !errors.Is(errors.Unconfigured, err) {
		t.Errorf("disabled gateway must report Unconfigured, got %v", err)
	}
}

func TestRegistryRejectsNonPositiveAmount(t *testing.T) {
	cfg := config.Gateways{Yoco: config.Yoco{Enabled: true, SecretKey: "sk", CheckoutURL: "http://localhost"}}
	registry := gateways.NewRegistry(cfg, zap.NewNop())

	_, err := registry.CreateCheckout(context.Background(), models.GatewayYoco,
		models.CheckoutRequest{AmountCents: 0, Currency: "ZAR"})
	if !errors.Is(errors.Invalid, err) {
		t.Fatalf("want Invalid, got %v", err)
	}
}
