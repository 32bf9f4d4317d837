// Package storefrontbuilder предоставляет маршруты для основного приложения.
package storefrontbuilder

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/boutiqhq/storefront-builder/internal/http/handlers/account/me"
	accountupdate "github.com/boutiqhq/storefront-builder/internal/http/handlers/account/update"
	adminlist "github.com/boutiqhq/storefront-builder/internal/http/handlers/admin/list"
	"github.com/boutiqhq/storefront-builder/internal/http/handlers/admin/setactive"
	"github.com/boutiqhq/storefront-builder/internal/http/handlers/auth/login"
	"github.com/boutiqhq/storefront-builder/internal/http/handlers/auth/logout"
	"github.com/boutiqhq/storefront-builder/internal/http/handlers/auth/register"
	"github.com/boutiqhq/storefront-builder/internal/http/handlers/product/create"
	productlist "github.com/boutiqhq/storefront-builder/internal/http/handlers/product/list"
	"github.com/boutiqhq/storefront-builder/internal/http/handlers/product/remove"
	productupdate "github.com/boutiqhq/storefront-builder/internal/http/handlers/product/update"
	"github.com/boutiqhq/storefront-builder/internal/http/handlers/store/health"
	"github.com/boutiqhq/storefront-builder/internal/http/handlers/store/view"
	"github.com/boutiqhq/storefront-builder/internal/http/middlewarectx"
	"github.com/boutiqhq/storefront-builder/internal/lib/jwt"
	accountservice "github.com/boutiqhq/storefront-builder/internal/services/account"
	catalogservice "github.com/boutiqhq/storefront-builder/internal/services/catalog"
	storefrontservice "github.com/boutiqhq/storefront-builder/internal/services/storefront"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	tokenMaker jwt.Maker,
	accountService *accountservice.AccountService,
	catalogService *catalogservice.CatalogService,
	storefrontService *storefrontservice.StorefrontService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, accountService, tokenMaker).ServeHTTP)
		r.Post("/login", login.New(logger, accountService, tokenMaker).ServeHTTP)
		r.Post("/logout", logout.New(logger, accountService).ServeHTTP)
		r.Get("/stores/{slug}", view.New(logger, storefrontService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokenMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/me", me.New(logger, accountService).ServeHTTP)
			r.Patch("/me", accountupdate.New(logger, accountService).ServeHTTP)
			r.Post("/products", create.New(logger, catalogService).ServeHTTP)
			r.Get("/products", productlist.New(logger, catalogService).ServeHTTP)
			r.Put("/products/{id}", productupdate.New(logger, catalogService).ServeHTTP)
			r.Delete("/products/{id}", remove.New(logger, catalogService).ServeHTTP)

			// Административная группа
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Get("/admin/users", adminlist.New(logger, accountService).ServeHTTP)
				r.Put("/admin/users/{id}/active", setactive.New(logger, accountService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
