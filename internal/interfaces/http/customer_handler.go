package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-admin-api/internal/application/customers"
	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/application/usecase"
)

// CustomerHandler listado de clientes de Shopify con filtro por rol.
type CustomerHandler struct {
	uc     *customers.UseCase
	shopUC *usecase.ShopUseCase
}

// NewCustomerHandler construye el handler de clientes.
func NewCustomerHandler(uc *customers.UseCase, shopUC *usecase.ShopUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc, shopUC: shopUC}
}

// List godoc
// @Summary      Listar clientes (paginación local sobre página upstream filtrada)
// @Tags         customers
// @Produce      json
// @Param        limit   query  int     false  "tamaño de página local (default 10)"
// @Param        cursor  query  string  false  "cursor upstream para reanudar"
// @Param        page    query  int     false  "página local sobre el resultado filtrado"
// @Success      200  {object}  dto.CustomerListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var q dto.CustomerListQuery
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
