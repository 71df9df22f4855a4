package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderView modelo local de un pedido de Shopify ya normalizado.
type OrderView struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CustomerName string          `json:"customer_name"`
	Tags         []string        `json:"tags"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
	Cursor       string          `json:"cursor"`
}

// OrderListQuery parámetros de GET /orders/fetch-orders-direct.
type OrderListQuery struct {
	Limit  int    `query:"limit"`
	Cursor string `query:"cursor"`
}

// Defaults aplica valores por defecto.
func (q *OrderListQuery) Defaults() {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 10
	}
}

// OrderListResponse página de pedidos; el filtro de sales-rep viaja en la
// query upstream, así que el cursor devuelto es directamente el de Shopify.
type OrderListResponse struct {
	Orders      []OrderView `json:"orders"`
	NextCursor  string      `json:"nextCursor"`
	HasNextPage bool        `json:"hasNextPage"`
}

// LineItemInput línea de un pedido a crear.
type LineItemInput struct {
	Title    string          `json:"title" validate:"required"`
	Quantity int             `json:"quantity" validate:"required,min=1"`
	Price    decimal.Decimal `json:"price" validate:"required"`
}

// CreateOrderRequest entrada de creación de pedido. Tags alimenta la
// resolución de descuento antes de llamar al upstream.
type CreateOrderRequest struct {
	CustomerID string          `json:"customerId"`
	Tags       []string        `json:"tags"`
	LineItems  []LineItemInput `json:"lineItems" validate:"required,min=1"`
}

// CreateOrderResponse pedido creado con el desglose del descuento aplicado.
type CreateOrderResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// UpdateOrderRequest actualización de tags/nota de un pedido existente.
type UpdateOrderRequest struct {
	Tags []string `json:"tags"`
	Note string   `json:"note"`
}
