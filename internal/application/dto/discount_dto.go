package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaveDiscountRequest entrada de POST /save-discount.
type SaveDiscountRequest struct {
	Type          string          `json:"type" validate:"required"`
	DiscountType  string          `json:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountValue decimal.Decimal `json:"discountValue" validate:"required"`
	SelectedTags  []string        `json:"selectedTags" validate:"required,min=1"`
}

// DiscountResponse salida de una regla de descuento.
type DiscountResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	DiscountType  string          `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	SelectedTags  []string        `json:"selectedTags"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DiscountByTagResponse salida de GET /discounts-by-tag. DiscountPercent es 0
// cuando el tag no pertenece a ninguna regla (centinela "sin descuento").
type DiscountByTagResponse struct {
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountType    string          `json:"discountType,omitempty"`
}
