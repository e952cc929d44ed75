package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shoploft/storefront-backend/api/controllers"
	"github.com/shoploft/storefront-backend/api/middleware"
	"github.com/shoploft/storefront-backend/internal/adminproducts"
	"github.com/shoploft/storefront-backend/internal/auth"
	"github.com/shoploft/storefront-backend/internal/cart"
	"github.com/shoploft/storefront-backend/internal/catalog"
	"github.com/shoploft/storefront-backend/pkg/auth/session"
	"github.com/shoploft/storefront-backend/pkg/config"
	"github.com/shoploft/storefront-backend/pkg/logger"
	"github.com/shoploft/storefront-backend/pkg/metrics"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	HTTPMetrics    *metrics.HTTPMetrics
	HealthChecks   map[string]controllers.Pinger
	SessionChecker session.AccessSessionChecker
	AuthService    auth.Service
	CatalogService catalog.Service
	CartManager    *cart.Manager
	AdminProducts  adminproducts.Service
}

// NewRouter builds the HTTP surface: public catalog and cart routes, the
// auth endpoints, and the admin panel behind JWT plus role checks.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.AllowedOrigins()),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.Live())
		r.Get("/ready", controllers.Ready(deps.HealthChecks, logg))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Storefront routes share the cart session cookie; the browse
		// view is keyed by the same token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(deps.CartManager, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ListProducts(deps.CatalogService, logg))
				r.Get("/featured", controllers.FeaturedProducts(deps.CatalogService, logg))
				r.Get("/{productId}", controllers.GetProduct(deps.CatalogService, logg))
			})
			r.Get("/categories", controllers.ListCategories(deps.CatalogService, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(deps.CartManager, logg))
				r.Delete("/", controllers.ClearCart(deps.CartManager, logg))
				r.Post("/items", controllers.AddCartItem(deps.CartManager, deps.CatalogService, logg))
				r.Patch("/items/{productId}", controllers.UpdateCartItem(deps.CartManager, logg))
				r.Delete("/items/{productId}", controllers.RemoveCartItem(deps.CartManager, logg))
			})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.Register(deps.AuthService, cfg.App, logg))
			r.Post("/login", controllers.Login(deps.AuthService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
				r.Post("/logout", controllers.Logout(deps.AuthService, logg))
				r.Get("/user", controllers.CurrentUser(deps.AuthService, logg))
			})
		})

		r.Route("/admin/products", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
			r.Use(middleware.RequireRole("admin", logg))
			r.Get("/", controllers.ListAdminProducts(deps.AdminProducts, logg))
			r.Post("/", controllers.CreateAdminProduct(deps.AdminProducts, logg))
		})
	})

	return r
}
