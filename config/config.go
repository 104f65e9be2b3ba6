package config

import (
	// Local Packages
	errors "quick-sale/errors"
)

var DefaultConfig = []byte(`
application: "quick-sale"

logger:
  level: "debug"

is_prod_mode: false

server:
  port: 8080

mongo:
  uri: "mongodb://localhost:27017"
  database: "quicksale"

redis:
  uri: "localhost:6379"
  password: ""

kafka:
  brokers:
    - "localhost:9092"
  topic: "payment-status"
  consumer_name: "status-worker"
  records_per_poll: 500

dispatch:
  submit_timeout_seconds: 30

tenant:
  id: "tenant-local"
  branding:
    business_name: "NEXUS POS"
    currency: "R"
    currency_code: "ZAR"
    vat_rate: 15
    vat_enabled: true
    tc_text: "I accept the terms and conditions of this sale."
  gateways:
    yoco:
      enabled: false
      secret_key: ""
      checkout_url: "https://payments.yoco.com/api/checkouts"
    stripe:
      enabled: false
      secret_key: ""
      webhook_secret: ""
      success_url: "https://pay.example.com/thanks"
    mpesa:
      enabled: false
      consumer_key: ""
      consumer_secret: ""
      short_code: ""
      passkey: ""
      base_url: "https://sandbox.safaricom.co.ke"
      callback_url: ""
      status_page_url: "https://pay.example.com/mpesa"
`)

type Config struct {
	Application string   `koanf:"application"`
	Logger      Logger   `koanf:"logger"`
	IsProdMode  bool     `koanf:"is_prod_mode"`
	Server      Server   `koanf:"server"`
	Mongo       Mongo    `koanf:"mongo"`
	Redis       Redis    `koanf:"redis"`
	Kafka       Kafka    `koanf:"kafka"`
	Dispatch    Dispatch `koanf:"dispatch"`
	Tenant      Tenant   `koanf:"tenant"`
}

type Logger struct {
	Level string `koanf:"level"`
}

type Server struct {
	Port int `koanf:"port"`
}

type Mongo struct {
	URI      string `koanf:"uri"`
	Database string `koanf:"database"`
}

type Redis struct {
	URI      string `koanf:"uri"`
	Password string `koanf:"password"`
}

type Kafka struct {
	Brokers        []string `koanf:"brokers"`
	Topic          string   `koanf:"topic"`
	ConsumerName   string   `koanf:"consumer_name"`
	RecordsPerPoll int      `koanf:"records_per_poll"`
}

type Dispatch struct {
	SubmitTimeoutSeconds int `koanf:"submit_timeout_seconds"`
}

// Tenant is the merchant configuration the orchestrator consumes as
// read-only input. It is never mutated by the flow.
type Tenant struct {
	ID       string   `koanf:"id"`
	Branding Branding `koanf:"branding"`
	Gateways Gateways `koanf:"gateways"`
}

type Branding struct {
	BusinessName string  `koanf:"business_name"`
	Currency     string  `koanf:"currency"`
	CurrencyCode string  `koanf:"currency_code"`
	VATRate      float64 `koanf:"vat_rate"`
	VATEnabled   bool    `koanf:"vat_enabled"`
	TCText       string  `koanf:"tc_text"`
}

type Gateways struct {
	Yoco   Yoco   `koanf:"yoco"`
	Stripe Stripe `koanf:"stripe"`
	Mpesa  Mpesa  `koanf:"mpesa"`
}

type Yoco struct {
	Enabled     bool   `koanf:"enabled"`
	SecretKey   string `koanf:"secret_key"`
	CheckoutURL string `koanf:"checkout_url"`
}

type Stripe struct {
	Enabled       bool   `koanf:"enabled"`
	SecretKey     string `koanf:"secret_key"`
	WebhookSecret string `koanf:"webhook_secret"`
	SuccessURL    string `koanf:"success_url"`
}

type Mpesa struct {
	Enabled        bool   `koanf:"enabled"`
	ConsumerKey    string `koanf:"consumer_key"`
	ConsumerSecret string `koanf:"consumer_secret"`
	ShortCode      string `koanf:"short_code"`
	Passkey        string `koanf:"passkey"`
	BaseURL        string `koanf:"base_url"`
	CallbackURL    string `koanf:"callback_url"`
	StatusPageURL  string `koanf:"status_page_url"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	ve := errors.ValidationErrs()

	if c.Application == "" {
		ve.Add("application", "cannot be empty")
	}
	if c.Logger.Level == "" {
		ve.Add("logger.level", "cannot be empty")
	}
	if c.Server.Port <= 0 {
		ve.Add("server.port", "must be a positive port number")
	}
	if c.Mongo.URI == "" {
		ve.Add("mongo.uri", "cannot be empty")
	}
	if c.Mongo.Database == "" {
		ve.Add("mongo.database", "cannot be empty")
	}
	if c.Redis.URI == "" {
		ve.Add("redis.uri", "cannot be empty")
	}
	if len(c.Kafka.Brokers) == 0 {
		ve.Add("kafka.brokers", "cannot be empty")
	}
	if c.Kafka.Topic == "" {
		ve.Add("kafka.topic", "cannot be empty")
	}
	if c.Tenant.ID == "" {
		ve.Add("tenant.id", "cannot be empty")
	}
	if c.Tenant.Branding.BusinessName == "" {
		ve.Add("tenant.branding.business_name", "cannot be empty")
	}
	if c.Dispatch.SubmitTimeoutSeconds <= 0 {
		ve.Add("dispatch.submit_timeout_seconds", "must be positive")
	}

	return ve.Err()
}
