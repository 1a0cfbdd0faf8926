package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/impulse-lab/lab-booking-service/internal/api/http/handlers"
	"github.com/impulse-lab/lab-booking-service/internal/auth"
	"github.com/impulse-lab/lab-booking-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Catalog        *handlers.CatalogHandler
	Bookings       *handlers.BookingsHandler
	Payments       *handlers.PaymentsHandler
	Reports        *handlers.ReportsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Each protected group pairs the bearer
// middleware with a role allow-list; an empty list requires login only.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/google", cfg.Auth.GoogleLogin)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireRole(), cfg.Auth.Me)

	services := app.Group("/services")
	services.Get("/", cfg.Catalog.List)
	services.Post("/", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin), cfg.Catalog.Create)
	services.Put("/:id", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin), cfg.Catalog.Update)
	services.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin), cfg.Catalog.Delete)

	bookings := app.Group("/bookings", cfg.AuthMiddleware.Handle, auth.RequireRole())
	bookings.Post("/", cfg.Bookings.Create)
	bookings.Get("/", cfg.Bookings.List)
	bookings.Get("/:id", cfg.Bookings.Get)
	bookings.Put("/:id", auth.RequireRole(domain.RoleUser, domain.RoleAdmin), cfg.Bookings.Update)
	bookings.Delete("/:id", auth.RequireRole(domain.RoleUser, domain.RoleAdmin), cfg.Bookings.Cancel)

	payments := app.Group("/payments")
	payments.Post("/stripe/checkout", cfg.AuthMiddleware.Handle, auth.RequireRole(), cfg.Payments.StripeCheckout)
	payments.Post("/razorpay/order", cfg.AuthMiddleware.Handle, auth.RequireRole(), cfg.Payments.RazorpayOrder)
	// Webhook is authenticated by its signature header, not a bearer token.
	payments.Post("/webhook", cfg.Payments.Webhook)

	reports := app.Group("/reports", cfg.AuthMiddleware.Handle)
	reports.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Reports.Upload)
	reports.Get("/", auth.RequireRole(), cfg.Reports.List)
	reports.Post("/presign/upload", auth.RequireRole(domain.RoleAdmin), cfg.Reports.PresignUpload)
	reports.Get("/:id/download-url", auth.RequireRole(), cfg.Reports.PresignDownload)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/stats", cfg.Admin.Stats)
}
