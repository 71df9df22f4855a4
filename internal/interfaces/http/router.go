package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-admin-api/internal/application/auth"
	"github.com/jhoicas/shop-admin-api/internal/application/customers"
	"github.com/jhoicas/shop-admin-api/internal/application/orders"
	"github.com/jhoicas/shop-admin-api/internal/application/usecase"
	"github.com/jhoicas/shop-admin-api/internal/application/webhooks"
	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
	"github.com/jhoicas/shop-admin-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CustomerUC    *customers.UseCase
	OrderUC       *orders.UseCase
	DiscountUC    *usecase.DiscountUseCase
	UserUC        *usecase.UserUseCase
	ShopUC        *usecase.ShopUseCase
	WebhookUC     *webhooks.UseCase
	UserRepo      repository.UserRepository
	JWTSecret     string
	WebhookSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Webhooks (sin sesión; la firma HMAC es la autenticación)
	webhookHandler := NewWebhookHandler(deps.WebhookUC)
	app.Post("/webhook/:kind/create", VerifyShopifyHMAC(deps.WebhookSecret), webhookHandler.Receive)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.UserRepo))

	// Customers (protegido)
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.ShopUC)
	protected.Get("/customers", customerHandler.List)

	// Orders (protegido)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ShopUC)
	protected.Get("/orders/fetch-orders-direct", orderHandler.List)
	protected.Post("/orders", orderHandler.Create)
	protected.Put("/orders/:id", orderHandler.Update)

	// Discounts (protegido; el caso de uso verifica el rol en la escritura)
	discountHandler := NewDiscountHandler(deps.DiscountUC)
	protected.Get("/discounts", discountHandler.List)
	protected.Post("/save-discount", discountHandler.Save)
	protected.Get("/discounts-by-tag", discountHandler.ByTag)

	// Users (protegido, solo admin y super-admin)
	userHandler := NewUserHandler(deps.UserUC)
	adminOnly := RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin)
	users := protected.Group("/users", adminOnly)
	users.Get("/", userHandler.List)
	users.Post("/add", userHandler.Add)
	users.Put("/update/:id", userHandler.Update)
	users.Delete("/delete/:id", userHandler.Delete)
	protected.Get("/tags", userHandler.Tags)

	// Shop connection (protegido; la escritura exige admin+)
	shopHandler := NewShopHandler(deps.ShopUC)
	protected.Get("/shop", shopHandler.Get)
	protected.Put("/shop", adminOnly, shopHandler.Save)
}
