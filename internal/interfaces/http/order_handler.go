package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/application/orders"
	"github.com/jhoicas/shop-admin-api/internal/application/usecase"
)

// OrderHandler pedidos: listado directo del upstream, creación con descuento
// y actualización de tags/nota.
type OrderHandler struct {
	uc     *orders.UseCase
	shopUC *usecase.ShopUseCase
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(uc *orders.UseCase, shopUC *usecase.ShopUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, shopUC: shopUC}
}

// List godoc
// @Summary      Listar pedidos (filtro de sales-rep empujado a la query upstream)
// @Tags         orders
// @Produce      json
// @Param        limit   query  int     false  "tamaño de página (default 10)"
// @Param        cursor  query  string  false  "cursor upstream"
// @Success      200  {object}  dto.OrderListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/orders/fetch-orders-direct [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var q dto.OrderListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	creds, err := h.shopUC.Resolve(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), creds, GetRole(c), GetTags(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear draft order con el descuento por tags aplicado
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "customerId, tags, lineItems"
// @Success      201  {object}  dto.CreateOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	creds, err := h.shopUC.Resolve(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), creds, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar tags y nota de un pedido
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "id del pedido (gid)"
// @Param        body  body  dto.UpdateOrderRequest true  "tags, note"
// @Success      200  {object}  dto.MessageResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	creds, err := h.shopUC.Resolve(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Update(c.UserContext(), creds, c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "pedido actualizado"})
}
