package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/enums"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/infra/metrics"
	authsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/auth"
	billingsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/billing"
	catalogsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/catalog"
	ratesvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/rate"
	sessionsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/session"
	"github.com/sprintstackagency/airtime-niger-simplicity/internal/transport/http/handlers"
)

type Dependencies struct {
	Verifier       *authsvc.Verifier
	SessionService *sessionsvc.Service
	CatalogService *catalogsvc.Service
	BillingService *billingsvc.Service
	RateLimiter    *ratesvc.Limiter
	UserLister     handlers.UserLister
	Metrics        *metrics.Collector
	Logger         *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.SessionService, deps.Logger)
	meHandler := handlers.NewMeHandler(deps.SessionService, deps.Logger)
	catalogHandler := handlers.NewCatalogHandler(deps.CatalogService, deps.Logger)
	purchaseHandler := handlers.NewPurchaseHandler(deps.BillingService, deps.Logger)
	transactionsHandler := handlers.NewTransactionsHandler(deps.BillingService, deps.Logger)
	eventsHandler := handlers.NewEventsHandler(deps.SessionService, deps.Logger)
	adminHandler := handlers.NewAdminHandler(deps.UserLister, deps.BillingService, deps.Logger)

	authMW := AuthMiddleware(deps.Verifier, deps.Logger)
	adminRoleMW := RequireRole(enums.RoleAdmin)
	purchaseRateMW := PurchaseRateLimit(deps.RateLimiter, deps.Logger)

	r.Get("/healthz", healthHandler.Health)
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)
		r.Post("/refresh", authHandler.Refresh)
		r.With(authMW).Post("/signout", authHandler.SignOut)
		r.With(authMW).Get("/session", authHandler.Session)
		r.With(authMW).Get("/events", eventsHandler.Stream)
	})

	r.Get("/packages", catalogHandler.List)
	r.Get("/packages/{id}", catalogHandler.Get)

	r.With(authMW).Get("/me", meHandler.Me)
	r.With(authMW, purchaseRateMW).Post("/purchase", purchaseHandler.Purchase)
	r.With(authMW).Get("/transactions", transactionsHandler.History)

	r.Route("/admin", func(r chi.Router) {
		r.Use(authMW, adminRoleMW)
		r.Get("/users", adminHandler.Users)
		r.Get("/transactions", adminHandler.Transactions)
	})
}
