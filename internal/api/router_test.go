package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	_ "github.com/AlexZinkM/warthog-wallet/docs"
	"github.com/AlexZinkM/warthog-wallet/internal/client"
	"github.com/AlexZinkM/warthog-wallet/internal/crypto"
	"github.com/AlexZinkM/warthog-wallet/internal/handler"
	"github.com/AlexZinkM/warthog-wallet/internal/metrics"
	"github.com/AlexZinkM/warthog-wallet/internal/storage"
	"github.com/AlexZinkM/warthog-wallet/warthog"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store, err := storage.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	session := warthog.NewSession(warthog.Options{
		Node:    client.NewWarthogClient("http://127.0.0.1:1", client.Options{Metrics: m}),
		Store:   store,
		Params:  crypto.Params{N: 1 << 10, R: 8, P: 1},
		Metrics: m,
	})
	h, err := handler.NewWarthogHandler(session, client.DefaultNodes, nil)
	if err != nil {
		t.Fatal(err)
	}
	return SetupRouter(h, reg, nil)
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/warthog/nodes", "", http.StatusOK},
		{http.MethodGet, "/warthog/wallet", "", http.StatusNotFound},
		{http.MethodPost, "/warthog/wallet", `{"action":"create"}`, http.StatusOK},
		{http.MethodPost, "/warthog/address/validate", `{"address":"x"}`, http.StatusOK},
		{http.MethodGet, "/warthog/send", "", http.StatusMethodNotAllowed},
		{http.MethodPut, "/warthog/wallet", "", http.StatusMethodNotAllowed},
		{http.MethodPost, "/warthog/balance", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/warthog/node", "", http.StatusMethodNotAllowed},
		{http.MethodPost, "/warthog/wallet", `not json`, http.StatusBadRequest},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
	}
}

func TestRouterMetrics(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/warthog/wallet", strings.NewReader(`{"action":"create"}`))
	router.ServeHTTP(httptest.NewRecorder(), req)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `warthog_wallet_wallet_actions_total{action="create",result="ok"} 1`) {
		t.Fatalf("wallet action not counted:\n%s", rec.Body)
	}
}

func TestRouterSwagger(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/warthog/send") {
		t.Fatalf("swagger doc not served: %d", rec.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}
