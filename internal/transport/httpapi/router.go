package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/finbook/finbook/internal/transport/httpapi/handler"
	"github.com/finbook/finbook/internal/transport/httpapi/middleware"
	"github.com/finbook/finbook/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger             *logger.Logger
	AllowedOrigins     []string
	AuthHandler        *handler.AuthHandler
	AccountHandler     *handler.AccountHandler
	CategoryHandler    *handler.CategoryHandler
	TransactionHandler *handler.TransactionHandler
	OverviewHandler    *handler.OverviewHandler
	HealthHandler      *handler.HealthHandler
	JWTMiddleware      func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit()) // 100 req/s with burst of 20

	// Health check endpoints (no authentication required)
	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)
	if cfg.HealthHandler != nil {
		r.Get("/health/ready", cfg.HealthHandler.GetReadiness)
		r.Get("/health/detailed", cfg.HealthHandler.GetHealthDetailed)
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public - no authentication required)
		if cfg.AuthHandler != nil {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		// Protected routes (require JWT authentication)
		if cfg.JWTMiddleware != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.JWTMiddleware)

				if cfg.AccountHandler != nil {
					r.Route("/accounts", func(r chi.Router) {
						r.Post("/", cfg.AccountHandler.CreateAccount)
						r.Get("/", cfg.AccountHandler.GetAccounts)
						r.Put("/order", cfg.AccountHandler.ReorderAccounts)
						r.Get("/{id}", cfg.AccountHandler.GetAccount)
						r.Put("/{id}", cfg.AccountHandler.UpdateAccount)
						r.Put("/{id}/hidden", cfg.AccountHandler.SetAccountHidden)
						r.Delete("/{id}", cfg.AccountHandler.DeleteAccount)
					})
				}

				if cfg.CategoryHandler != nil {
					r.Route("/categories", func(r chi.Router) {
						r.Post("/", cfg.CategoryHandler.CreateCategory)
						r.Get("/", cfg.CategoryHandler.GetCategories)
						r.Put("/order", cfg.CategoryHandler.ReorderCategories)
						r.Put("/{id}", cfg.CategoryHandler.UpdateCategory)
						r.Put("/{id}/hidden", cfg.CategoryHandler.SetCategoryHidden)
						r.Delete("/{id}", cfg.CategoryHandler.DeleteCategory)
					})
				}

				if cfg.TransactionHandler != nil {
					r.Route("/transactions", func(r chi.Router) {
						r.Post("/", cfg.TransactionHandler.CreateTransaction)
						r.Get("/", cfg.TransactionHandler.GetTransactions)
						r.Get("/{id}", cfg.TransactionHandler.GetTransaction)
						r.Put("/{id}", cfg.TransactionHandler.UpdateTransaction)
						r.Post("/{id}/settle", cfg.TransactionHandler.SettleTransaction)
						r.Delete("/{id}", cfg.TransactionHandler.DeleteTransaction)
					})
				}

				if cfg.AuthHandler != nil {
					r.Put("/settings/currency", cfg.AuthHandler.SetDefaultCurrency)
				}

				if cfg.OverviewHandler != nil {
					r.Get("/overview", cfg.OverviewHandler.GetSummary)
					r.Get("/overview/forecast", cfg.OverviewHandler.GetForecast)
				}
			})
		}
	})

	return r
}
