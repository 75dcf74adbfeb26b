// wartwallet is a local Warthog wallet: an HTTP service plus one-shot commands.
// Usage: go run ./cmd/wartwallet serve
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AlexZinkM/warthog-wallet/internal/client"
	"github.com/AlexZinkM/warthog-wallet/internal/config"
	"github.com/AlexZinkM/warthog-wallet/internal/crypto"
	"github.com/AlexZinkM/warthog-wallet/internal/logger"
	"github.com/AlexZinkM/warthog-wallet/internal/metrics"
	"github.com/AlexZinkM/warthog-wallet/internal/storage"
	"github.com/AlexZinkM/warthog-wallet/warthog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version info (injected at build time)
var Version = "dev"

var nodeURL string

// @title        Warthog Wallet API
// @version      1.0
// @description  Local Warthog wallet: key derivation, encrypted storage, signing and sending through a Warthog node.
// @BasePath     /
func main() {
	var rootCmd = &cobra.Command{
		Use:           "wartwallet",
		Short:         "Local Warthog wallet",
		Long:          `Creates, restores and encrypts Warthog wallets, and signs and sends WART transfers through a Warthog node.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&nodeURL, "node", "", "Node URL (default WARTHOG_NODE_URL)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(deriveCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(unlockCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(balanceCmd())
	rootCmd.AddCommand(sendCmd())
	rootCmd.AddCommand(rekeyCmd())
	rootCmd.AddCommand(clearCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app wires config, logging, metrics, storage and the node client into one session
type app struct {
	log      *zap.Logger
	registry *prometheus.Registry
	store    *storage.Store
	session  *warthog.Session
}

func newApp() (*app, error) {
	if err := config.Init(); err != nil {
		return nil, err
	}
	cfg := config.Get()

	log, err := logger.New(logger.Options{
		Debug:      cfg.Debug,
		Path:       cfg.LogPath,
		MaxAgeHour: cfg.LogMaxAgeHours,
		RotateHour: cfg.LogRotateHours,
	})
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	store, err := storage.Open(config.GetWalletStorePath())
	if err != nil {
		log.Sync()
		return nil, err
	}

	selected := config.GetNodeURL()
	if nodeURL != "" {
		selected = nodeURL
	}
	node := client.NewWarthogClient(selected, client.Options{
		Timeout:     cfg.NodeTimeout,
		RateLimit:   cfg.NodeRateLimit,
		InsecureTLS: cfg.NodeInsecureTLS,
		Logger:      log.Named("node"),
		Metrics:     m,
	})

	session := warthog.NewSession(warthog.Options{
		Node:    node,
		Store:   store,
		Params:  crypto.Params{N: cfg.ScryptN, R: cfg.ScryptR, P: cfg.ScryptP},
		Logger:  log.Named("session"),
		Metrics: m,
	})

	return &app{
		log:      log,
		registry: registry,
		store:    store,
		session:  session,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("failed to close wallet store", zap.Error(err))
	}
	a.log.Sync()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
