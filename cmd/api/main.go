package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/shop-admin-api/internal/application/auth"
	"github.com/jhoicas/shop-admin-api/internal/application/customers"
	"github.com/jhoicas/shop-admin-api/internal/application/orders"
	"github.com/jhoicas/shop-admin-api/internal/application/usecase"
	"github.com/jhoicas/shop-admin-api/internal/application/webhooks"
	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
	"github.com/jhoicas/shop-admin-api/internal/infrastructure/cache"
	"github.com/jhoicas/shop-admin-api/internal/infrastructure/mailer"
	"github.com/jhoicas/shop-admin-api/internal/infrastructure/postgres"
	"github.com/jhoicas/shop-admin-api/internal/infrastructure/shopify"
	httpRouter "github.com/jhoicas/shop-admin-api/internal/interfaces/http"
	"github.com/jhoicas/shop-admin-api/pkg/config"
	"github.com/jhoicas/shop-admin-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.RunMigrations(cfg.DB.ConnectionString(), "migrations"); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	discountRepo := postgres.NewDiscountRepository(pool)
	shopRepo := postgres.NewShopRepository(pool)
	mirrorRepo := postgres.NewMirrorRepository(pool)

	// Cache Redis opcional: sin REDIS_ADDR la resolución va siempre a la DB.
	var ruleCache usecase.ResolutionCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		ruleCache = cache.NewRedisRuleCache(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de descuentos habilitado")
	}

	shopifyClient := shopify.NewClient(cfg.Shopify.APIVersion)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)

	authUC := auth.NewAuthUseCase(userRepo, smtpMailer, auth.JWTConfig{
		Secret:          cfg.JWT.Secret,
		ExpMinutes:      cfg.JWT.Expiration,
		ResetExpMinutes: cfg.JWT.ResetExpiration,
		Issuer:          cfg.JWT.Issuer,
	})
	discountUC := usecase.NewDiscountUseCase(discountRepo, ruleCache)
	userUC := usecase.NewUserUseCase(userRepo)
	shopUC := usecase.NewShopUseCase(shopRepo, entity.ShopCredentials{
		ShopDomain:  cfg.Shopify.ShopDomain,
		AccessToken: cfg.Shopify.AccessToken,
	})
	customerUC := customers.NewUseCase(shopifyClient)
	orderUC := orders.NewUseCase(shopifyClient, discountUC)
	webhookUC := webhooks.NewUseCase(mirrorRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Shop Admin API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CustomerUC:    customerUC,
		OrderUC:       orderUC,
		DiscountUC:    discountUC,
		UserUC:        userUC,
		ShopUC:        shopUC,
		WebhookUC:     webhookUC,
		UserRepo:      userRepo,
		JWTSecret:     cfg.JWT.Secret,
		WebhookSecret: cfg.Shopify.WebhookSecret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
