package dto

import "github.com/shopspring/decimal"

// CustomerView modelo local de un cliente de Shopify ya normalizado.
// TotalSpent se deriva sumando los totales de los pedidos embebidos del
// registro remoto; Location es "ciudad, país" de la dirección por defecto o
// "Unknown". Cursor es el cursor upstream del propio registro, necesario para
// reanudar la paginación desde el último elemento visible.
type CustomerView struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Tags       []string        `json:"tags"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	Location   string          `json:"location"`
	Cursor     string          `json:"cursor"`
}

// CustomerListQuery parámetros de GET /customers.
// Cursor pagina el upstream; Page/Limit paginan localmente el resultado filtrado.
type CustomerListQuery struct {
	Limit  int    `query:"limit"`
	Cursor string `query:"cursor"`
	Page   int    `query:"page"`
}

// Defaults aplica valores por defecto.
func (q *CustomerListQuery) Defaults() {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 10
	}
	if q.Page <= 0 {
		q.Page = 1
	}
}

// CustomerListResponse página local de clientes.
type CustomerListResponse struct {
	Customers       []CustomerView `json:"customers"`
	HasNextPage     bool           `json:"hasNextPage"`
	HasPreviousPage bool           `json:"hasPreviousPage"`
	NextCursor      string         `json:"nextCursor"`
}
