package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/http/api"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/http/swagger"
	"github.com/gilliangoud/gcpv-lynx-generator/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func newServeCmd(c *cli) *cobra.Command {
	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Export on every interval and serve the live view over HTTP",
		Args:  cobra.NoArgs,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides addr)")

	serveCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if addr == "" {
			addr = c.cfg.Addr
		}

		svc, err := c.newService(c.request())
		if err != nil {
			return err
		}
		sched := c.newScheduler(svc)

		mux := http.NewServeMux()
		api.NewServer(svc.Store(), sched).Register(ctx, mux)
		swagger.Register(ctx, mux)

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		srv := &http.Server{
			Handler:           mux,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
		}

		go sched.Run(ctx)

		c.log.Info(ctx, "http server listening", logger.String("addr", ln.Addr().String()))
		serveErr := make(chan error, 1)
		go func() {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		var runErr error
		select {
		case <-ctx.Done():
		case err := <-serveErr:
			if err != nil {
				runErr = fmt.Errorf("http server: %w", err)
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			c.log.Error(shutdownCtx, "http server shutdown failed", logger.Error(err))
		}
		return errors.Join(runErr, c.stopScheduler(sched))
	}
	return serveCmd
}
