package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/impulse-lab/lab-booking-service/internal/api/http"
	"github.com/impulse-lab/lab-booking-service/internal/api/http/handlers"
	"github.com/impulse-lab/lab-booking-service/internal/auth"
	"github.com/impulse-lab/lab-booking-service/internal/config"
	"github.com/impulse-lab/lab-booking-service/internal/events"
	"github.com/impulse-lab/lab-booking-service/internal/observability"
	"github.com/impulse-lab/lab-booking-service/internal/persistence"
	"github.com/impulse-lab/lab-booking-service/internal/provider"
	"github.com/impulse-lab/lab-booking-service/internal/repository"
	"github.com/impulse-lab/lab-booking-service/internal/service"
	"github.com/impulse-lab/lab-booking-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	objectStore, err := provider.NewS3ObjectStore(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to init object store", zap.Error(err))
	}
	mailer, err := provider.NewSMTPMailer(cfg.Mail)
	if err != nil {
		logger.Fatal("failed to init mailer", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Google:     provider.NewGoogleExchanger(cfg.Auth),
		Dispatcher: dispatcher,
	})
	catalogService := service.NewCatalogService(serviceRepo, redis, logger)
	bookingService := service.NewBookingService(bookingRepo, serviceRepo, dispatcher)
	paymentService := service.NewPaymentService(cfg.Payment.WebhookSecret, service.PaymentDependencies{
		BookingRepo: bookingRepo,
		Stripe:      provider.NewStripeCheckout(cfg.Payment),
		Razorpay:    provider.NewRazorpayOrders(cfg.Payment),
		Dispatcher:  dispatcher,
	})
	reportService := service.NewReportService(service.ReportDependencies{
		ReportRepo:  reportRepo,
		BookingRepo: bookingRepo,
		Store:       objectStore,
		Dispatcher:  dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, mailer, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		Bookings:       handlers.NewBookingsHandler(bookingService),
		Payments:       handlers.NewPaymentsHandler(paymentService),
		Reports:        handlers.NewReportsHandler(reportService),
		Admin:          handlers.NewAdminHandler(bookingService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
