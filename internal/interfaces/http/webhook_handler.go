package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/application/webhooks"
)

// WebhookHandler recepción de webhooks de Shopify hacia las tablas espejo.
type WebhookHandler struct {
	uc *webhooks.UseCase
}

// NewWebhookHandler construye el handler de webhooks.
func NewWebhookHandler(uc *webhooks.UseCase) *WebhookHandler {
	return &WebhookHandler{uc: uc}
}

// VerifyShopifyHMAC valida x-shopify-hmac-sha256 contra el HMAC-SHA256 en
// base64 del cuerpo crudo. Debe correr antes de cualquier parseo del body.
func VerifyShopifyHMAC(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provided := c.Get("x-shopify-hmac-sha256")
		if provided == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_HMAC", Message: "header x-shopify-hmac-sha256 requerido"})
		}
		mac := hmac.New(sha256.New, []byte(secret))
		_, _ = mac.Write(c.Body())
		expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
		if !hmac.Equal([]byte(expected), []byte(provided)) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_HMAC", Message: "firma HMAC inválida"})
		}
		return c.Next()
	}
}

// Receive godoc
// @Summary      Recibir webhook {orders|customers|products}/create
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        kind  path  string  true  "orders | customers | products"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /webhook/{kind}/create [post]
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	out, err := h.uc.Receive(c.Params("kind"), c.Body())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
