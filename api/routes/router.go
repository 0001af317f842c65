package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/stockledger-backend/api/controllers"
	"github.com/angelmondragon/stockledger-backend/api/middleware"
	"github.com/angelmondragon/stockledger-backend/internal/auth"
	"github.com/angelmondragon/stockledger-backend/internal/customers"
	"github.com/angelmondragon/stockledger-backend/internal/inventory"
	"github.com/angelmondragon/stockledger-backend/internal/reports"
	"github.com/angelmondragon/stockledger-backend/internal/sales"
	"github.com/angelmondragon/stockledger-backend/pkg/auth/session"
	"github.com/angelmondragon/stockledger-backend/pkg/config"
	"github.com/angelmondragon/stockledger-backend/pkg/logger"
	"github.com/angelmondragon/stockledger-backend/pkg/metrics"
	"github.com/angelmondragon/stockledger-backend/pkg/redis"
)

// Params collects everything the HTTP surface depends on. Redis is optional:
// without it rate limiting and idempotency are skipped.
type Params struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        controllers.Pinger
	Redis     *redis.Client
	Sessions  session.AccessSessionChecker
	Gatherer  prometheus.Gatherer
	HTTPStats *metrics.HTTPMetrics

	Auth      auth.Service
	Inventory inventory.Service
	Customers customers.Service
	Sales     sales.Service
	Reports   reports.Service
}

func NewRouter(p Params) http.Handler {
	cfg, logg := p.Config, p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPStats),
		middleware.CORS(cfg.CORS),
	)

	deps := map[string]controllers.Pinger{}
	if p.DB != nil {
		deps["db"] = p.DB
	}
	if p.Redis != nil {
		deps["redis"] = p.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, deps, logg))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	withLoginLimit := passthrough
	withRegisterLimit := passthrough
	withIdempotency := passthrough
	if p.Redis != nil {
		withLoginLimit = middleware.AuthRateLimit(middleware.NewAuthRateLimitPolicy(
			"login",
			cfg.AuthRateLimit.LoginWindow,
			cfg.AuthRateLimit.LoginIPLimit,
			cfg.AuthRateLimit.LoginEmailLimit,
		), p.Redis, logg)
		withRegisterLimit = middleware.AuthRateLimit(middleware.NewAuthRateLimitPolicy(
			"register",
			cfg.AuthRateLimit.RegisterWindow,
			cfg.AuthRateLimit.RegisterIPLimit,
			cfg.AuthRateLimit.RegisterEmailLimit,
		), p.Redis, logg)
		withIdempotency = middleware.Idempotency(p.Redis, logg)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))
		r.Use(withIdempotency)

		r.Route("/auth", func(r chi.Router) {
			r.With(withRegisterLimit).Post("/register", controllers.AuthRegister(p.Auth, logg))
			r.With(withLoginLimit).Post("/login", controllers.AuthLogin(p.Auth, logg))
			r.Post("/refresh", controllers.AuthRefresh(p.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(p.Auth, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.ListInventory(p.Inventory, logg))
			r.Post("/", controllers.CreateInventoryItem(p.Inventory, logg))
			r.Get("/{itemId}", controllers.GetInventoryItem(p.Inventory, logg))
			r.Put("/{itemId}", controllers.UpdateInventoryItem(p.Inventory, logg))
			r.Delete("/{itemId}", controllers.DeleteInventoryItem(p.Inventory, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListCustomers(p.Customers, logg))
			r.Post("/", controllers.CreateCustomer(p.Customers, logg))
			r.Get("/{customerId}", controllers.GetCustomer(p.Customers, logg))
			r.Put("/{customerId}", controllers.UpdateCustomer(p.Customers, logg))
			r.Delete("/{customerId}", controllers.DeleteCustomer(p.Customers, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.ListSales(p.Sales, logg))
			r.Post("/", controllers.CreateSale(p.Sales, logg))
			r.Get("/{saleId}", controllers.GetSale(p.Sales, logg))
			r.Put("/{saleId}", controllers.UpdateSale(p.Sales, logg))
			r.Delete("/{saleId}", controllers.DeleteSale(p.Sales, logg))
		})

		r.Get("/reports", controllers.ExportReport(p.Reports, logg))
		r.Get("/reports/preview", controllers.PreviewReport(p.Reports, logg))
		r.Get("/dashboard", controllers.Dashboard(p.Reports, logg))
	})

	return r
}

func passthrough(next http.Handler) http.Handler {
	return next
}
