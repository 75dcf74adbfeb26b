package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AlexZinkM/warthog-wallet/internal/metrics"
	"github.com/AlexZinkM/warthog-wallet/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestNode(t *testing.T, handler http.HandlerFunc) (*WarthogClient, *prometheus.Registry) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	reg := prometheus.NewRegistry()
	return NewWarthogClient(srv.URL+"/", Options{Timeout: 2 * time.Second, Metrics: metrics.New(reg)}), reg
}

func TestChainHeadWrapped(t *testing.T) {
	c, reg := newTestNode(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chain/head" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"code":0,"data":{"pinHeight":1234,"pinHash":"` + strings.Repeat("ab", 32) + `","height":1300}}`))
	})

	head, err := c.ChainHead(context.Background())
	if err != nil {
		t.Fatalf("ChainHead failed: %v", err)
	}
	if head.PinHeight != 1234 || head.PinHash != strings.Repeat("ab", 32) {
		t.Fatalf("unexpected head: %+v", head)
	}

	n, err := testutil.GatherAndCount(reg, "warthog_wallet_node_requests_total")
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected one node request series, got %d", n)
	}
}

func TestBalanceUnwrapped(t *testing.T) {
	c, _ := newTestNode(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/account/abc/balance" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"balance":"12.5","balanceE8":1250000000,"nonceId":7}`))
	})

	bal, err := c.Balance(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if bal.Balance.String() != "12.5" || bal.BalanceE8 == nil || *bal.BalanceE8 != 1250000000 || bal.NonceID == nil || *bal.NonceID != 7 {
		t.Fatalf("unexpected balance: %+v", bal)
	}
}

func TestBalanceFreshAccount(t *testing.T) {
	c, _ := newTestNode(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"data":{"balance":0}}`))
	})
	bal, err := c.Balance(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Balance failed: %v", err)
	}
	if bal.NonceID != nil {
		t.Fatalf("expected no nonce, got %d", *bal.NonceID)
	}
}

func TestRoundFee(t *testing.T) {
	c, _ := newTestNode(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tools/encode16bit/from_string/0.0001" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"code":0,"data":{"roundedE8":9992,"16bit":1234}}`))
	})
	fee, err := c.RoundFee(context.Background(), " 0.0001 ")
	if err != nil {
		t.Fatalf("RoundFee failed: %v", err)
	}
	if fee != 9992 {
		t.Fatalf("fee = %d, want 9992", fee)
	}
}

func TestSubmitTransaction(t *testing.T) {
	c, _ := newTestNode(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/transaction/add" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		var tx map[string]any
		if err := json.Unmarshal(body, &tx); err != nil {
			t.Errorf("body is not JSON: %v", err)
		}
		for _, k := range []string{"pinHeight", "nonceId", "toAddr", "amountE8", "feeE8", "signature65"} {
			if _, ok := tx[k]; !ok {
				t.Errorf("body missing %s", k)
			}
		}
		w.Write([]byte(`{"code":0,"data":{"txHash":"ff"}}`))
	})

	raw, err := c.SubmitTransaction(context.Background(), &model.SignedTransaction{PinHeight: 1, ToAddr: "aa", Signature65: "00"})
	if err != nil {
		t.Fatalf("SubmitTransaction failed: %v", err)
	}
	if string(raw) != `{"code":0,"data":{"txHash":"ff"}}` {
		t.Fatalf("node reply not passed through: %s", raw)
	}
}

func TestNodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"code with error", 200, `{"code":3,"error":"nonce already used"}`, "nonce already used"},
		{"code with message", 200, `{"code":1,"message":"bad signature"}`, "bad signature"},
		{"code only", 200, `{"code":5}`, "node error code 5"},
		{"status with error", 400, `{"error":"insufficient balance"}`, "insufficient balance"},
		{"status without body", 502, ``, "Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestNode(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := c.SubmitTransaction(context.Background(), &model.SignedTransaction{})
			var relayErr *model.RelayError
			if !errors.As(err, &relayErr) {
				t.Fatalf("expected RelayError, got %v", err)
			}
			if relayErr.Message != tt.want {
				t.Fatalf("message = %q, want %q", relayErr.Message, tt.want)
			}
			if relayErr.Status != tt.status {
				t.Fatalf("status = %d, want %d", relayErr.Status, tt.status)
			}
		})
	}
}

func TestDecodeFailure(t *testing.T) {
	c, _ := newTestNode(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"data":{"roundedE8":"lots"}}`))
	})
	var relayErr *model.RelayError
	if _, err := c.RoundFee(context.Background(), "1"); !errors.As(err, &relayErr) {
		t.Fatalf("expected RelayError, got %v", err)
	}
}

func TestUnreachableNode(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewWarthogClient(url, Options{Timeout: time.Second})
	var relayErr *model.RelayError
	if _, err := c.ChainHead(context.Background()); !errors.As(err, &relayErr) {
		t.Fatalf("expected RelayError, got %v", err)
	}
	if relayErr.Status != 0 {
		t.Fatalf("status = %d, want 0", relayErr.Status)
	}
}

func TestTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	c := NewWarthogClient(srv.URL, Options{Timeout: 50 * time.Millisecond})
	start := time.Now()
	if _, err := c.ChainHead(context.Background()); err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("timeout not applied")
	}
}

func TestRateLimitHonoursContext(t *testing.T) {
	c, _ := newTestNode(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"roundedE8":1}`))
	})
	c.limiter.SetLimit(0.001)
	c.limiter.SetBurst(1)

	if _, err := c.RoundFee(context.Background(), "1"); err != nil {
		t.Fatalf("first request failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.RoundFee(ctx, "1"); err == nil {
		t.Fatal("expected second request to be rate limited")
	}
}

func TestSetBaseURL(t *testing.T) {
	c := NewWarthogClient("", Options{})
	if c.BaseURL() != DefaultNodeURL {
		t.Fatalf("BaseURL = %q, want default", c.BaseURL())
	}
	c.SetBaseURL(" http://51.75.21.134:3001/ ")
	if c.BaseURL() != "http://51.75.21.134:3001" {
		t.Fatalf("BaseURL = %q", c.BaseURL())
	}
}
