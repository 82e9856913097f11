package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/config"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/infra/metrics"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/jobs/catalogsync"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/platform"
	redrepo "github.com/sprintstackagency/airtime-niger-simplicity/internal/repo/redis"
	authsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/auth"
	billingsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/billing"
	catalogsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/catalog"
	ratesvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/rate"
	sessionsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/session"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	redis      *goredis.Client
	syncJob    *catalogsync.Job
	httpRouter http.Handler
}

func New(_ context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	collector := metrics.NewCollector()

	r := chi.NewRouter()
	ApplyMiddlewares(r, log, collector)

	platformClient, err := platform.NewClient(platform.Config{
		BaseURL:    cfg.Platform.BaseURL,
		AnonKey:    cfg.Platform.AnonKey,
		ServiceKey: cfg.Platform.ServiceKey,
		Timeout:    cfg.Platform.Timeout,
		Logger:     log,
		Observer:   collector,
	})
	if err != nil {
		return nil, fmt.Errorf("platform client: %w", err)
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionCache := redrepo.NewSessionCacheRepo(redisClient, cfg.Session.CacheTTL)
	catalogCache := redrepo.NewCatalogCacheRepo(redisClient, cfg.Catalog.CacheTTL)
	rateRepo := redrepo.NewRateRepo(redisClient)

	verifier := authsvc.NewVerifier(cfg.Platform.JWTSecret)
	sessionService := sessionsvc.NewService(platformClient, sessionCache, sessionsvc.Config{
		SoftTimeout: cfg.Session.SoftTimeout,
	}, log)
	catalogService := catalogsvc.NewService(platformClient, catalogCache, log)
	billingService := billingsvc.NewService(billingsvc.Dependencies{
		Platform: platformClient,
		Catalog:  catalogService,
		Metrics:  collector,
		Logger:   log,
	})
	rateLimiter := ratesvc.NewLimiter(rateRepo, cfg.Rate.PurchasePerMinute, cfg.Rate.PurchasePer10Sec)
	syncJob := catalogsync.New(catalogService, cfg.Catalog.SyncInterval, log)

	RegisterRoutes(r, Dependencies{
		Verifier:       verifier,
		SessionService: sessionService,
		CatalogService: catalogService,
		BillingService: billingService,
		RateLimiter:    rateLimiter,
		UserLister:     platformClient,
		Metrics:        collector,
		Logger:         log,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		redis:      redisClient,
		syncJob:    syncJob,
		httpRouter: r,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	go a.syncJob.Start(ctx)

	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
