package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/application/usecase"
)

// ShopHandler conexión de tienda Shopify por usuario.
type ShopHandler struct {
	uc *usecase.ShopUseCase
}

// NewShopHandler construye el handler de conexión de tienda.
func NewShopHandler(uc *usecase.ShopUseCase) *ShopHandler {
	return &ShopHandler{uc: uc}
}

// Get godoc
// @Summary      Conexión de tienda vigente (el token nunca se expone)
// @Tags         shop
// @Produce      json
// @Success      200  {object}  dto.ShopResponse
// @Router       /api/shop [get]
func (h *ShopHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Crear o reemplazar la conexión de tienda del usuario
// @Tags         shop
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveShopRequest  true  "shopDomain, accessToken"
// @Success      200  {object}  dto.ShopResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/shop [put]
func (h *ShopHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveShopRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Save(GetRole(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
