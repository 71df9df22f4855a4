package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/application/usecase"
)

// DiscountHandler reglas de descuento por tags.
type DiscountHandler struct {
	uc *usecase.DiscountUseCase
}

// NewDiscountHandler construye el handler de descuentos.
func NewDiscountHandler(uc *usecase.DiscountUseCase) *DiscountHandler {
	return &DiscountHandler{uc: uc}
}

// List godoc
// @Summary      Listar reglas de descuento
// @Tags         discounts
// @Produce      json
// @Success      200  {array}  dto.DiscountResponse
// @Router       /api/discounts [get]
func (h *DiscountHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Crear regla de descuento (un tag pertenece a una sola regla)
// @Tags         discounts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveDiscountRequest  true  "type, discountType, discountValue, selectedTags"
// @Success      201  {object}  dto.DiscountResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/save-discount [post]
func (h *DiscountHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveDiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetRole(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ByTag godoc
// @Summary      Resolver el descuento de un tag (0 si no tiene)
// @Tags         discounts
// @Produce      json
// @Param        tag  query  string  true  "tag a resolver"
// @Success      200  {object}  dto.DiscountByTagResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/discounts-by-tag [get]
func (h *DiscountHandler) ByTag(c *fiber.Ctx) error {
	out, err := h.uc.ResolveByTag(c.UserContext(), c.Query("tag"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
