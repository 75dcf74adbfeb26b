package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveNodeRequest("chain_head", nil)
	m.ObserveWalletAction("create", errors.New("x"))
	m.ObserveSend(nil)
}

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveSend(nil)
	m.ObserveSend(errors.New("rejected"))
	m.ObserveSend(errors.New("rejected"))

	if got := testutil.ToFloat64(m.sends.WithLabelValues("ok")); got != 1 {
		t.Fatalf("ok sends = %v", got)
	}
	if got := testutil.ToFloat64(m.sends.WithLabelValues("error")); got != 2 {
		t.Fatalf("failed sends = %v", got)
	}
}
