package main

import (
	// Go Internal Packages
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Local Packages
	config "quick-sale/config"
	gateways "quick-sale/gateways"
	kafka "quick-sale/kafka"
	mongodb "quick-sale/repositories/mongodb"
	redis "quick-sale/repositories/redis"
	server "quick-sale/server"
	flow "quick-sale/services/flow"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	_ "github.com/jsternberg/zap-logfmt"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

// LoadSecrets loads the secret variables and overrides the config
func LoadSecrets(c config.Config) config.Config {
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		c.Mongo.URI = uri
	}
	if key := os.Getenv("YOCO_SECRET_KEY"); key != "" {
		c.Tenant.Gateways.Yoco.SecretKey = key
	}
	if key := os.Getenv("STRIPE_SECRET_KEY"); key != "" {
		c.Tenant.Gateways.Stripe.SecretKey = key
	}
	if key := os.Getenv("STRIPE_WEBHOOK_SECRET"); key != "" {
		c.Tenant.Gateways.Stripe.WebhookSecret = key
	}
	if key := os.Getenv("MPESA_CONSUMER_KEY"); key != "" {
		c.Tenant.Gateways.Mpesa.ConsumerKey = key
	}
	if key := os.Getenv("MPESA_CONSUMER_SECRET"); key != "" {
		c.Tenant.Gateways.Mpesa.ConsumerSecret = key
	}
	c.IsProdMode = os.Getenv("IS_PROD_MODE") == "true"
	return c
}

// LoadConfig loads the default configuration and overrides it with the config file
// specified by the path defined in the config flag
func LoadConfig() *koanf.Koanf {
	configPathMsg := "Path to the application config file"
	configPath := kingpin.Flag("config", configPathMsg).Short('c').Default("config.yml").String()

	kingpin.Parse()
	k := koanf.New(".")
	_ = k.Load(rawbytes.Provider(config.DefaultConfig), yaml.Parser())
	if *configPath != "" {
		_ = k.Load(file.Provider(*configPath), yaml.Parser())
	}
	return k
}

func main() {
	k := LoadConfig()
	appKonf := config.Config{}

	// Unmarshalling config into struct
	err := k.Unmarshal("", &appKonf)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	appKonf = LoadSecrets(appKonf)

	// Validate the config loaded
	if err = appKonf.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if !appKonf.IsProdMode {
		k.Print()
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "logfmt"
	_ = cfg.Level.UnmarshalText([]byte(k.String("logger.level")))
	cfg.InitialFields = make(map[string]any)
	cfg.InitialFields["host"], _ = os.Hostname()
	cfg.InitialFields["service"] = appKonf.Application
	cfg.OutputPaths = []string{"stdout"}
	logger, _ := cfg.Build()
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Mongo Connection
	mongoClient, err := mongodb.Connect(ctx, appKonf.Mongo.URI)
	if err != nil {
		logger.Fatal("cannot create mongo client", zap.Error(err))
	}

	// Redis Connection
	redisClient, err := redis.Connect(ctx, appKonf.Redis.URI, appKonf.Redis.Password)
	if err != nil {
		logger.Fatal("cannot create redis client", zap.Error(err))
	}

	txRepo := mongodb.NewTxRepository(mongoClient, appKonf.Mongo.Database)
	checkoutIndex := redis.NewCheckoutIndex(redisClient)
	registry := gateways.NewRegistry(appKonf.Tenant.Gateways, logger)

	metrics := kprom.NewMetrics("qs")
	producer, err := kafka.NewStatusProducer(appKonf.Kafka.Brokers, appKonf.Kafka.Topic, metrics, logger)
	if err != nil {
		logger.Fatal("cannot create status producer", zap.Error(err))
	}
	defer producer.Close()

	submitTimeout := time.Duration(appKonf.Dispatch.SubmitTimeoutSeconds) * time.Second
	orchestrator := flow.NewOrchestrator(logger, registry, txRepo, checkoutIndex, appKonf.Tenant, submitTimeout)

	srv := server.New(logger, orchestrator, txRepo, producer, appKonf.Tenant, appKonf.Server.Port)
	if err := srv.Run(ctx); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}
