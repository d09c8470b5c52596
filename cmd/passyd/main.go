// Command passyd serves the password bridge over HTTP on the loopback
// interface for the desktop shell.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrEthical07/passy"
	"github.com/MrEthical07/passy/internal/config"
	"github.com/MrEthical07/passy/internal/rate"
	"github.com/MrEthical07/passy/jwt"
	otelexport "github.com/MrEthical07/passy/metrics/export/otel"
	promexport "github.com/MrEthical07/passy/metrics/export/prometheus"
	"github.com/MrEthical07/passy/server"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config error")
	}
	log := cfg.Logger()

	engineCfg := passy.DefaultConfig()
	engineCfg.Generator.Source = cfg.RandomSource
	engineCfg.Generator.Seed = cfg.Seed
	engineCfg.Metrics.Enabled = cfg.Metrics
	engineCfg.Metrics.EnableLatencyHistograms = cfg.Metrics && cfg.LatencyMetrics
	engineCfg.Audit.Enabled = cfg.Audit

	builder := passy.New().WithConfig(engineCfg)
	if cfg.Audit {
		builder = builder.WithAuditSink(passy.NewJSONWriterSink(os.Stdout))
	}
	engine, err := builder.Build()
	if err != nil {
		log.WithError(err).Fatal("engine error")
	}
	defer engine.Close()

	report := engine.SecurityReport()
	if !report.CryptographicSource {
		log.Warn("seeded random source is deterministic; do not use it for real passwords")
	}

	var opts []server.Option
	opts = append(opts, server.WithLogger(log))

	if cfg.Metrics {
		opts = append(opts, server.WithMetricsHandler(promexport.NewExporter(engine).Handler()))

		if cfg.OTel {
			exporter, err := otelexport.NewOTelExporter(otel.GetMeterProvider().Meter("github.com/MrEthical07/passy"), engine)
			if err != nil {
				log.WithError(err).Fatal("otel exporter error")
			}
			defer func() { _ = exporter.Close() }()
		}
	}

	if cfg.RedisAddr != "" {
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{cfg.RedisAddr},
		})
		defer func() { _ = client.Close() }()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			// The limiter fails open, so an unreachable Redis is not fatal.
			log.WithError(err).WithField("addr", cfg.RedisAddr).Warn("redis unreachable at startup")
		}
		cancel()

		opts = append(opts, server.WithLimiter(rate.New(client, rate.Config{
			Limit:  cfg.RateLimit,
			Window: cfg.RateWindow,
		})))
	}

	if cfg.BridgeSecret != "" {
		manager, err := jwt.NewManager(jwt.Config{
			SigningMethod: jwt.MethodHS256,
			Secret:        []byte(cfg.BridgeSecret),
			TTL:           cfg.TokenTTL,
		})
		if err != nil {
			log.WithError(err).Fatal("bridge token config error")
		}
		opts = append(opts, server.WithTokenVerifier(manager))
	} else {
		log.Warn("PASSY_BRIDGE_SECRET not set; bridge routes are unauthenticated")
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.New(engine, opts...).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		log.WithField("signal", sig.String()).Info("shutting down")

		shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutCancel()

		if err := srv.Shutdown(shutCtx); err != nil {
			log.WithError(err).Error("shutdown error")
		}
	}()

	log.WithFields(logrus.Fields{
		"addr":        cfg.ListenAddr,
		"source":      report.RandomSource,
		"csprng":      report.CryptographicSource,
		"rate_limit":  cfg.RedisAddr != "",
		"bridge_auth": cfg.BridgeSecret != "",
		"metrics":     report.MetricsEnabled,
		"audit":       report.AuditEnabled,
	}).Info("starting passy bridge")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("server error")
		return
	}
	<-done
}
