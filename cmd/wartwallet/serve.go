package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/warthog-wallet/internal/api"
	"github.com/AlexZinkM/warthog-wallet/internal/config"
	"github.com/AlexZinkM/warthog-wallet/internal/handler"

	_ "github.com/AlexZinkM/warthog-wallet/docs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the wallet HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			h, err := handler.NewWarthogHandler(a.session, config.GetNodes(), a.log.Named("http"))
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              ":" + config.GetPort(),
				Handler:           api.SetupRouter(h, a.registry, a.log.Named("http")),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("server started", zap.String("addr", srv.Addr), zap.String("node", a.session.NodeURL()))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
