package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "warthog_wallet"

// Metrics holds the wallet service collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	nodeRequests  *prometheus.CounterVec
	walletActions *prometheus.CounterVec
	sends         *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		nodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_requests_total",
			Help:      "Requests sent to the Warthog node, by endpoint and result.",
		}, []string{"endpoint", "result"}),
		walletActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_actions_total",
			Help:      "Wallet create/derive/import/login/save/clear actions, by result.",
		}, []string{"action", "result"}),
		sends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Transaction send attempts, by result.",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.nodeRequests, m.walletActions, m.sends)
	}
	return m
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveNodeRequest counts one node request
func (m *Metrics) ObserveNodeRequest(endpoint string, err error) {
	if m == nil {
		return
	}
	m.nodeRequests.WithLabelValues(endpoint, result(err)).Inc()
}

// ObserveWalletAction counts one wallet action
func (m *Metrics) ObserveWalletAction(action string, err error) {
	if m == nil {
		return
	}
	m.walletActions.WithLabelValues(action, result(err)).Inc()
}

// ObserveSend counts one send attempt
func (m *Metrics) ObserveSend(err error) {
	if m == nil {
		return
	}
	m.sends.WithLabelValues(result(err)).Inc()
}
