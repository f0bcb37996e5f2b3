// Package app wires the catalog service together.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/skyshop/internal/domain/basket"
	"github.com/xenking/skyshop/internal/domain/search"
	"github.com/xenking/skyshop/internal/handler"
	"github.com/xenking/skyshop/internal/seed"
	"github.com/xenking/skyshop/internal/storage/memory"
	"github.com/xenking/skyshop/internal/storage/postgres"
	"github.com/xenking/skyshop/pkg/health"
	"github.com/xenking/skyshop/pkg/httpmiddleware"
)

const serviceName = "skyshop-api"

// Server is the assembled HTTP application.
type Server struct {
	Handler http.Handler
	Health  *health.Health
	Catalog *memory.Catalog
}

// NewServer seeds the catalog and builds the HTTP handler chain. The
// returned server is not marked ready.
func NewServer(ctx context.Context, t httpmiddleware.TelemetryProvider, cfg *Config) (*Server, error) {
	store := memory.NewCatalog()
	if err := seedCatalog(ctx, cfg, store); err != nil {
		return nil, errors.Wrap(err, "seed catalog")
	}

	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(cfg.Health.MaxGoroutines))
	healthSvc.AddReadinessCheck("catalog", time.Second, health.CatalogCheck(store, cfg.Health.MinCatalogEntries))

	h, err := handler.New(store,
		search.NewService(store),
		basket.NewService(store, basket.New()),
		t.MeterProvider().Meter(serviceName),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create handler")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("GET /readyz", healthSvc.ReadyEndpoint)
	h.Register(mux)

	routeFinder := httpmiddleware.MakeRouteFinder(mux)
	return &Server{
		Health:  healthSvc,
		Catalog: store,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", httpmiddleware.HeaderRequestID},
				ExposeHeaders:    []string{httpmiddleware.HeaderRequestID},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.Instrument(serviceName, routeFinder, t),
			httpmiddleware.LogRequests(routeFinder),
			httpmiddleware.Labeler(routeFinder),
		),
	}, nil
}

// seedCatalog fills store from the configured source: the database when a
// URL is set, then the seed file, then the embedded catalog.
func seedCatalog(ctx context.Context, cfg *Config, store *memory.Catalog) error {
	lg := zctx.From(ctx)

	switch {
	case cfg.DatabaseURL != "":
		lg.Info("Loading catalog from database")
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return errors.Wrap(err, "create db pool")
		}
		defer pool.Close()

		if err := postgres.RunMigrations(ctx, pool); err != nil {
			return errors.Wrap(err, "run migrations")
		}
		return seed.Load(ctx, postgres.NewCatalogRepository(pool), store)
	case cfg.SeedFile != "":
		lg.Info("Loading catalog from file", zap.String("path", cfg.SeedFile))
		return seed.Load(ctx, seed.FileSource{Path: cfg.SeedFile}, store)
	default:
		lg.Info("Loading embedded catalog")
		return seed.Load(ctx, seed.EmbeddedSource{}, store)
	}
}

// Run builds the server, listens on cfg.Addr and shuts down gracefully when
// ctx is done.
func Run(ctx context.Context, lg *zap.Logger, t httpmiddleware.TelemetryProvider, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))
	ctx = zctx.Base(ctx, lg)

	srv, err := NewServer(ctx, t, cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler:           srv.Handler,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()

		srv.Health.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
	}()

	srv.Health.SetReady(true)
	products, articles := srv.Catalog.Len()
	lg.Info("Server listening",
		zap.String("addr", cfg.Addr),
		zap.Int("products", products),
		zap.Int("articles", articles),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
