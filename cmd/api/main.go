package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/caterkit/caterkit-api/internal/application/auth"
	"github.com/caterkit/caterkit-api/internal/application/checkout"
	"github.com/caterkit/caterkit-api/internal/application/tenantctx"
	"github.com/caterkit/caterkit-api/internal/application/usecase"
	"github.com/caterkit/caterkit-api/internal/infrastructure/email"
	"github.com/caterkit/caterkit-api/internal/infrastructure/payment"
	infrapdf "github.com/caterkit/caterkit-api/internal/infrastructure/pdf"
	"github.com/caterkit/caterkit-api/internal/infrastructure/postgres"
	"github.com/caterkit/caterkit-api/internal/infrastructure/ratelimit"
	httpRouter "github.com/caterkit/caterkit-api/internal/interfaces/http"
	"github.com/caterkit/caterkit-api/pkg/config"
	"github.com/caterkit/caterkit-api/pkg/logger"
	"github.com/caterkit/caterkit-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("root_domain", cfg.Platform.RootDomain).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	met := metrics.New("caterkit")

	tenantRepo := postgres.NewTenantRepository(pool)
	domainRepo := postgres.NewTenantDomainRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	menuRepo := postgres.NewMenuRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	slotRepo := postgres.NewTimeSlotRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)

	resolver := tenantctx.New(tenantctx.Config{
		RootDomain:        cfg.Platform.RootDomain,
		DefaultTenantSlug: cfg.Platform.DefaultTenantSlug,
		OrderPathPrefix:   cfg.Platform.OrderPathPrefix,
	}, tenantRepo, domainRepo, log)

	jwtCfg := auth.JWTConfig{
		Secret:           cfg.JWT.Secret,
		AccessExpMinutes: cfg.JWT.Expiration,
		Issuer:           cfg.JWT.Issuer,
	}
	authUC := auth.New(userRepo, membershipRepo, tenantRepo, jwtCfg)

	mailer := email.NewResendMailer(cfg.Email.APIKey, cfg.Email.From)
	pdfGenerator := infrapdf.NewMarotoQuoteGenerator()
	gateway := payment.NewStripeGateway(payment.Options{
		APIKey:     cfg.Stripe.SecretKey,
		RootDomain: cfg.Platform.RootDomain,
		SuccessURL: cfg.Stripe.SuccessURL,
		CancelURL:  cfg.Stripe.CancelURL,
	})

	menuUC := usecase.NewMenuUseCase(menuRepo)
	orderUC := usecase.NewOrderUseCase(orderRepo)
	quoteUC := usecase.NewQuoteUseCase(quoteRepo, tenantRepo, settingsRepo, pdfGenerator, mailer)
	slotUC := usecase.NewTimeSlotUseCase(slotRepo)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo, tenantRepo)
	memberUC := usecase.NewMemberUseCase(membershipRepo, userRepo)
	checkoutUC := checkout.New(orderRepo, menuRepo, slotRepo, settingsRepo, tenantRepo, domainRepo, gateway, mailer)

	// Login rate limiting: 10 attempts per IP per minute. Redis shares the
	// window across replicas; without it the window is per instance.
	var loginLimiter ratelimit.Store = ratelimit.NewMemoryStore(10, time.Minute)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		loginLimiter = ratelimit.NewRedisStore(rdb, 10, time.Minute)
	}

	secure := cfg.App.Env == "production"
	sessions := httpRouter.NewSessionStore([]byte(cfg.Session.HashKey), []byte(cfg.Session.BlockKey), secure)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Resolver:        resolver,
		AuthUC:          authUC,
		MenuUC:          menuUC,
		OrderUC:         orderUC,
		QuoteUC:         quoteUC,
		TimeSlotUC:      slotUC,
		SettingsUC:      settingsUC,
		MemberUC:        memberUC,
		CheckoutUC:      checkoutUC,
		Sessions:        sessions,
		LoginLimiter:    loginLimiter,
		JWTCfg:          jwtCfg,
		OrderPathPrefix: cfg.Platform.OrderPathPrefix,
		AppName:         cfg.App.Name,
		Secure:          secure,
		Metrics:         met,
		Log:             log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
