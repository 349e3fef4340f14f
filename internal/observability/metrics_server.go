package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsServer exposes the default Prometheus registry over HTTP, the
// same promhttp.Handler-on-a-dedicated-mux shape the platform this
// module's conventions are adapted from uses for its own "/metrics" route.
type MetricsServer struct {
	server   *http.Server
	listener net.Listener
	logger   *slog.Logger
}

// ServeMetrics starts a background HTTP server exposing "/metrics" at addr.
// It returns once the listener is bound; serving continues on a goroutine
// until Shutdown is called.
func ServeMetrics(addr string, logger *slog.Logger) (*MetricsServer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listen: %w", err)
	}

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ms := &MetricsServer{server: server, listener: listener, logger: logger}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()

	logger.Info("serving metrics", "addr", addr)
	return ms, nil
}

// Shutdown stops the metrics server, waiting up to ctx's deadline for
// in-flight scrapes to finish.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	if m == nil || m.server == nil {
		return nil
	}
	return m.server.Shutdown(ctx)
}
