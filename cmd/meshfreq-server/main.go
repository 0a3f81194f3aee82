package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/signalsfoundry/meshfreq/core"
	"github.com/signalsfoundry/meshfreq/internal/announce"
	"github.com/signalsfoundry/meshfreq/internal/api"
	"github.com/signalsfoundry/meshfreq/internal/config"
	"github.com/signalsfoundry/meshfreq/internal/logging"
	"github.com/signalsfoundry/meshfreq/internal/observability"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const version = "1.1.0"

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	listenAddr := flag.String("addr", "", "HTTP address the resolver API listens on (overrides config)")
	metricsAddr := flag.String("metrics-addr", "", "HTTP address for Prometheus /metrics (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "meshfreq-server: %v\n", err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg, *listenAddr, *metricsAddr)

	log := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	ctx := context.Background()

	collector, err := observability.NewResolverCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.Err(err))
		os.Exit(1)
	}
	collector.SetCatalogSize(len(core.Regions()))

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.Err(err))
		os.Exit(1)
	}

	metricsSrv := serveMetrics(cfg.Server.MetricsAddr, collector, log)

	publisher, err := announce.New(cfg.MQTT, log, version)
	if err != nil {
		log.Error(ctx, "failed to initialise MQTT publisher", logging.Err(err))
		os.Exit(1)
	}

	opts := []api.Option{
		api.WithMetricsRecorder(collector),
		api.WithRouteInstrumenter(collector),
	}
	if publisher != nil {
		opts = append(opts, api.WithResolutionSink(publisher))
	}
	server := api.NewServer(log, opts...)

	if publisher != nil {
		if err := publisher.PublishPlans(ctx); err != nil {
			log.Warn(ctx, "failed to announce channel plans", logging.Err(err))
		}
	}

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           otelhttp.NewHandler(server.Routes(), "meshfreq.api"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info(ctx, "starting resolver API server",
		logging.String("addr", cfg.Server.ListenAddr),
		logging.String("version", version),
		logging.Int("regions", len(core.Regions())),
	)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "API server exited", logging.Err(err))
		}
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-stopCtx.Done()

	log.Info(ctx, "shutting down resolver API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	if publisher != nil {
		publisher.Close()
	}
	observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)
}

// applyFlagOverrides lets explicit address flags win over config file values.
func applyFlagOverrides(cfg *config.Config, listenAddr, metricsAddr string) {
	if listenAddr != "" {
		cfg.Server.ListenAddr = listenAddr
	}
	if metricsAddr != "" {
		cfg.Server.MetricsAddr = metricsAddr
	}
}

func serveMetrics(addr string, collector *observability.ResolverCollector, log logging.Logger) *http.Server {
	if collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.Err(err))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
