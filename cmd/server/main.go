package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"vcgate/internal/audit"
	"vcgate/internal/blocklist"
	"vcgate/internal/device"
	"vcgate/internal/idp"
	"vcgate/internal/platform/config"
	"vcgate/internal/platform/database"
	"vcgate/internal/platform/logger"
	"vcgate/internal/platform/metrics"
	"vcgate/internal/platform/redis"
	transport "vcgate/internal/transport/http"
	"vcgate/internal/user"
	"vcgate/internal/vc"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log := logger.New()

	if err := run(log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg := config.FromEnv()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(registry)

	networks := make([]vc.NetworkConfig, 0, len(cfg.Networks))
	for _, n := range cfg.Networks {
		networks = append(networks, vc.NetworkConfig{
			Name:     n.Name,
			RPCURL:   n.RPCURL,
			Registry: n.Registry,
		})
	}
	ethrEngine, err := vc.NewEthrEngine(vc.EthrConfig{
		IssuerDID:     cfg.IssuerDID,
		PrivateKeyHex: cfg.IssuerPrivateKey,
		Networks:      networks,
		Validity:      cfg.CredentialValidity,
	})
	if err != nil {
		return err
	}
	engine := vc.NewTracedEngine(ethrEngine)
	log.Info("credential engine ready", "issuer_did", engine.IssuerDID())

	issuer := vc.NewIssuer(engine)
	verifier := vc.NewVerifier(engine)

	healthChecks := map[string]transport.HealthCheck{}

	// Backing services fall back to in-memory implementations when not
	// configured, so a bare binary still serves the full surface.
	pool, err := database.New(database.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	})
	if err != nil {
		return err
	}

	var (
		userStore      user.Store
		deviceStore    device.Store
		blocklistStore blocklist.Store
	)
	if pool != nil {
		defer pool.Close()
		userStore = user.NewPostgres(pool.DB())
		deviceStore = device.NewPostgres(pool.DB())
		blocklistStore = blocklist.NewPostgres(pool.DB())
		healthChecks["database"] = pool.Health
		log.Info("using postgres stores")
	} else {
		userStore = user.NewInMemoryStore()
		deviceStore = device.NewInMemoryStore()
		blocklistStore = blocklist.NewInMemoryStore()
		log.Warn("no database configured, using in-memory stores")
	}

	var claimsVerifier vc.ClaimsVerifier = verifier
	redisClient, err := redis.New(cfg.RedisAddr)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		claimsVerifier = vc.NewCachedVerifier(verifier, vc.NewRedisCache(redisClient), cfg.VerifyCacheTTL, m)
		healthChecks["redis"] = redisClient.Health
		log.Info("verification cache enabled", "ttl", cfg.VerifyCacheTTL)
	}

	var auditor audit.Publisher
	if cfg.KafkaBrokers != "" {
		auditor, err = audit.NewKafkaPublisher(audit.KafkaConfig{
			Brokers: strings.Split(cfg.KafkaBrokers, ","),
		}, log)
		if err != nil {
			return err
		}
		log.Info("audit events publishing to kafka")
	} else {
		auditor = audit.NewLogPublisher(log)
	}
	defer auditor.Close()

	credentialHandler := transport.NewCredentialHandler(
		idp.NewHTTPClient(cfg.IdPUserInfoURL),
		userStore,
		issuer,
		verifier,
		auditor,
		m,
		log,
	)
	deviceHandler := device.NewHandler(device.NewService(deviceStore, log, m), auditor, log)
	blocklistHandler := blocklist.NewHandler(blocklist.NewService(blocklistStore, log, m), auditor, log)

	router := transport.NewRouter(transport.RouterConfig{
		Credentials:    credentialHandler,
		Devices:        deviceHandler,
		Blocklist:      blocklistHandler,
		Verifier:       vc.NewPrincipalVerifier(claimsVerifier),
		Metrics:        m,
		Gatherer:       registry,
		Logger:         log,
		IssueRateLimit: cfg.IssueRateLimit,
		HealthChecks:   healthChecks,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Operational surface on its own listener so scrapers never compete with
	// the public routes.
	var metricsServer *http.Server
	if cfg.MetricsAddr != "" && cfg.MetricsAddr != cfg.Addr {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

		metricsServer = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			log.Info("metrics listening", "addr", cfg.MetricsAddr)
			if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if metricsServer != nil {
			_ = metricsServer.Shutdown(shutdownCtx)
		}
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
