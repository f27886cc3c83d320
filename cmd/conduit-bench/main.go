// Command conduit-bench drives a conduit channel with concurrent producers
// and consumers described by a TOML scenario, optionally exposing the
// channel's prometheus metrics while it runs.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baxromumarov/conduit/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "path to scenario TOML (defaults are used when empty)")
	metricsAddr := flag.String("metrics-addr", "", "serve prometheus metrics on this address")
	flag.Parse()

	sc := DefaultScenario()
	if *configPath != "" {
		loaded, err := loadScenario(*configPath)
		if err != nil {
			boot := initLogger("conduit-bench", zerolog.InfoLevel)
			boot.Fatal().Err(err).Str("path", *configPath).Msg("load scenario")
		}
		sc = loaded
	}
	if *metricsAddr != "" {
		sc.MetricsAddr = *metricsAddr
	}

	logger := initLogger("conduit-bench", sc.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector("bench")
	reg := prometheus.NewRegistry()
	reg.MustRegister(collector, collectors.NewGoCollector())

	var srv *http.Server
	if sc.MetricsAddr != "" {
		srv = serveMetrics(sc.MetricsAddr, reg, logger)
	}

	rep, err := runScenario(ctx, sc, logger, collector.Observe)
	if err != nil {
		logger.Error().Err(err).Msg("scenario failed")
	}
	if want := rep.Expected(sc); err == nil && rep.Received != want {
		logger.Warn().Int64("received", rep.Received).Int64("expected", want).Msg("reception count mismatch")
	}

	if srv != nil {
		if sc.Linger > 0 {
			logger.Info().Dur("linger", sc.Linger).Msg("keeping metrics endpoint up")
			select {
			case <-time.After(sc.Linger):
			case <-ctx.Done():
			}
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}

	if err != nil {
		os.Exit(1)
	}
}

func serveMetrics(addr string, reg *prometheus.Registry, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info().Str("addr", addr).Msg("metrics listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server")
		}
	}()
	return srv
}
