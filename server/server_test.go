package server_test

import (
	// Go Internal Packages
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	// Local Packages
	config "quick-sale/config"
	errors "quick-sale/errors"
	gateways "quick-sale/gateways"
	models "quick-sale/models"
	server "quick-sale/server"
	flow "quick-sale/services/flow"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePublisher struct {
	events []models.PaymentStatusEvent
	err    error
}

func (f *fakePublisher) PublishStatus(_ context.Context, event models.PaymentStatusEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type fakeReader struct {
	txns map[string]*models.Transaction
}

func (f *fakeReader) GetByID(_ context.Context, id string) (*models.Transaction, error) {
	if txn, ok := f.txns[id]; ok {
		return txn, nil
	}
	return nil, errors.TxNotFoundErr(id)
}

func (f *fakeReader) List(_ context.Context, tenantID string, status models.Status, _ int64) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0)
	for _, txn := range f.txns {
		if txn.TenantID != tenantID {
			continue
		}
		if status != "" && txn.Status != status {
			continue
		}
		out = append(out, *txn)
	}
	return out, nil
}

type nullRepo struct{}

func (nullRepo) Save(_ context.Context, txn *models.Transaction) (string, error) {
	return "txn-1", nil
}

type nullIndex struct{}

func (nullIndex) Remember(context.Context, string, models.Checkout) error { return nil }
func (nullIndex) Recall(context.Context, string) (*models.Checkout, error) {
	return nil, nil
}
func (nullIndex) Forget(context.Context, string) error { return nil }

func testServer(publisher *fakePublisher, reader *fakeReader) *server.Server {
	tenant := config.Tenant{
		ID:       "tenant-1",
		Branding: config.Branding{BusinessName: "NEXUS POS", Currency: "R", CurrencyCode: "ZAR"},
	}
	registry := gateways.NewRegistry(config.Gateways{}, zap.NewNop())
	orchestrator := flow.NewOrchestrator(zap.NewNop(), registry, nullRepo{}, nullIndex{}, tenant, time.Second)
	return server.New(zap.NewNop(), orchestrator, reader, publisher, tenant, 0)
}

func postJSON(t *testing.T, handler http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestYocoWebhookPublishesPaid(t *testing.T) {
	publisher := &fakePublisher{}
	srv := testServer(publisher, &fakeReader{})

	rec := postJSON(t, srv.Handler(), "/webhooks/yoco", map[string]any{
		"type": "payment.succeeded",
		"payload": map[string]any{
			"id":       "p_1",
			"metadata": map[string]any{"checkoutId": "ch_1"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, "ch_1", event.CheckoutID)
	assert.Equal(t, models.GatewayYoco, event.Gateway)
	assert.Equal(t, models.StatusPaid, event.Status)
}

func TestYocoWebhookIgnoresUnknownEventTypes(t *testing.T) {
	publisher := &fakePublisher{}
	srv := testServer(publisher, &fakeReader{})

	rec := postJSON(t, srv.Handler(), "/webhooks/yoco", map[string]any{
		"type":    "payment.created",
		"payload": map[string]any{"id": "p_1"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, publisher.events)
}

func TestMpesaWebhookMapsResultCode(t *testing.T) {
	tests := []struct {
		name       string
		resultCode int
		want       models.Status
	}{
		{"success", 0, models.StatusPaid},
		{"cancelled by user", 1032, models.StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher := &fakePublisher{}
			srv := testServer(publisher, &fakeReader{})

			rec := postJSON(t, srv.Handler(), "/webhooks/mpesa", map[string]any{
				"Body": map[string]any{
					"stkCallback": map[string]any{
						"MerchantRequestID": "m_1",
						"CheckoutRequestID": "ws_CO_1",
						"ResultCode":        tt.resultCode,
					},
				},
			})

			require.Equal(t, http.StatusOK, rec.Code)
			require.Len(t, publisher.events, 1)
			assert.Equal(t, tt.want, publisher.events[0].Status)
			assert.Equal(t, "ws_CO_1", publisher.events[0].CheckoutID)
		})
	}
}

func TestWebhookWithoutCheckoutIDIsRejected(t *testing.T) {
	publisher := &fakePublisher{}
	srv := testServer(publisher, &fakeReader{})

	rec := postJSON(t, srv.Handler(), "/webhooks/yoco", map[string]any{
		"type":    "payment.succeeded",
		"payload": map[string]any{},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, publisher.events)
}

func TestYocoWebhookWithoutCheckoutMetadataIsRejected(t *testing.T) {
	publisher := &fakePublisher{}
	srv := testServer(publisher, &fakeReader{})

	// A payment id alone cannot resolve to a record, so the event must
	// not be published under it.
	rec := postJSON(t, srv.Handler(), "/webhooks/yoco", map[string]any{
		"type":    "payment.succeeded",
		"payload": map[string]any{"id": "p_1"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, publisher.events)
}

func TestListTransactions(t *testing.T) {
	reader := &fakeReader{txns: map[string]*models.Transaction{
		"txn-1": {ID: "txn-1", TenantID: "tenant-1", Status: models.StatusPending, Amount: 150},
		"txn-2": {ID: "txn-2", TenantID: "tenant-1", Status: models.StatusPaid, Amount: 99.99},
	}}
	srv := testServer(&fakePublisher{}, reader)

	req := httptest.NewRequest(http.MethodGet, "/transactions?status=paid", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, "txn-2", resp.Transactions[0].ID)
}

func TestGetTransactionNotFound(t *testing.T) {
	srv := testServer(&fakePublisher{}, &fakeReader{txns: map[string]*models.Transaction{}})

	req := httptest.NewRequest(http.MethodGet, "/transactions/missing", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionFlowOverHTTP(t *testing.T) {
	srv := testServer(&fakePublisher{}, &fakeReader{})
	handler := srv.Handler()

	rec := postJSON(t, handler, "/quicksale/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var session struct {
		ID   string      `json:"id"`
		Step models.Step `json:"step"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, models.StepAmount, session.Step)

	// Amount step validation failures surface as 400s.
	rec = postJSON(t, handler, "/quicksale/sessions/"+session.ID+"/amount", map[string]string{"amount": "0"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, handler, "/quicksale/sessions/"+session.ID+"/amount", map[string]string{"amount": "150.00"})
	require.Equal(t, http.StatusOK, rec.Code)

	// No gateways are enabled in this server, so the channel step can
	// never validate.
	rec = postJSON(t, handler, "/quicksale/sessions/"+session.ID+"/channel", map[string]string{
		"gateway": "yoco", "sendMethod": "whatsapp", "contact": "0820000000",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
