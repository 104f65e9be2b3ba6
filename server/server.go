package server

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	// Local Packages
	config "quick-sale/config"
	errors "quick-sale/errors"
	models "quick-sale/models"
	flow "quick-sale/services/flow"

	// External Packages
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// StatusPublisher forwards normalized webhook events onto the
// payment-status topic for the worker to apply.
type StatusPublisher interface {
	PublishStatus(ctx context.Context, event models.PaymentStatusEvent) error
}

// TransactionReader serves the read endpoints the surrounding app's
// history view consumes.
type TransactionReader interface {
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	List(ctx context.Context, tenantID string, status models.Status, limit int64) ([]models.Transaction, error)
}

type Server struct {
	logger       *zap.Logger
	orchestrator *flow.Orchestrator
	txRepo       TransactionReader
	publisher    StatusPublisher
	tenant       config.Tenant
	port         int
	router       chi.Router
}

func New(logger *zap.Logger, orchestrator *flow.Orchestrator, txRepo TransactionReader,
	publisher StatusPublisher, tenant config.Tenant, port int) *Server {
	s := &Server{
		logger:       logger,
		orchestrator: orchestrator,
		txRepo:       txRepo,
		publisher:    publisher,
		tenant:       tenant,
		port:         port,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)

	r.Route("/quicksale/sessions", func(r chi.Router) {
		r.Post("/", s.handleStartSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Post("/amount", s.handleSubmitAmount)
			r.Post("/channel", s.handleSubmitChannel)
			r.Post("/consent", s.handleRecordConsent)
			r.Post("/back", s.handleBack)
			r.Post("/cancel", s.handleCancel)
			r.Post("/reset", s.handleReset)
			r.Post("/submit", s.handleSubmit)
		})
	})

	r.Route("/transactions", func(r chi.Router) {
		r.Get("/", s.handleListTransactions)
		r.Get("/{transactionID}", s.handleGetTransaction)
	})

	r.Route("/webhooks", func(r chi.Router) {
		r.Post("/yoco", s.handleYocoWebhook)
		r.Post("/stripe", s.handleStripeWebhook)
		r.Post("/mpesa", s.handleMpesaWebhook)
	})

	return r
}

// Handler exposes the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is canceled, then drains in-flight
// requests before returning.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.Int("port", s.port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// actorID is the opaque identity of the acting user, supplied by the
// excluded auth collaborator.
func actorID(r *http.Request) string {
	if id := r.Header.Get("X-Actor-ID"); id != "" {
		return id
	}
	return "anonymous"
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, errors.HTTPStatus(err), map[string]string{
		"error": errors.MessageOf(err),
		"kind":  errors.KindOf(err).String(),
	})
}
