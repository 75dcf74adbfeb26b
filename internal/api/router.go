package api

import (
	"net/http"

	"github.com/AlexZinkM/warthog-wallet/internal/handler"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// SetupRouter sets up router with handlers
func SetupRouter(warthogHandler *handler.WarthogHandler, gatherer prometheus.Gatherer, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	r := mux.NewRouter()
	r.Use(recoveryMiddleware(log))
	r.Use(loggingMiddleware(log))

	// Swagger UI
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Metrics
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	// Wallet endpoints. Full paths on the root router so a wrong method gets 405.
	r.HandleFunc("/warthog/wallet", warthogHandler.WalletAction).Methods(http.MethodPost)
	r.HandleFunc("/warthog/wallet", warthogHandler.GetWallet).Methods(http.MethodGet)
	r.HandleFunc("/warthog/wallet", warthogHandler.ClearWallet).Methods(http.MethodDelete)
	r.HandleFunc("/warthog/wallet/save", warthogHandler.SaveWallet).Methods(http.MethodPost)
	r.HandleFunc("/warthog/wallet/download", warthogHandler.DownloadWallet).Methods(http.MethodPost)
	r.HandleFunc("/warthog/wallet/unlock", warthogHandler.UnlockWallet).Methods(http.MethodPost)

	// Chain endpoints
	r.HandleFunc("/warthog/balance", warthogHandler.GetBalance).Methods(http.MethodGet)
	r.HandleFunc("/warthog/send", warthogHandler.Send).Methods(http.MethodPost)
	r.HandleFunc("/warthog/address/validate", warthogHandler.ValidateAddress).Methods(http.MethodPost)

	// Node selection
	r.HandleFunc("/warthog/nodes", warthogHandler.GetNodes).Methods(http.MethodGet)
	r.HandleFunc("/warthog/node", warthogHandler.SelectNode).Methods(http.MethodPut)

	return r
}
