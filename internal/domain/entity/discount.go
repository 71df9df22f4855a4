package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de valor de una regla de descuento.
const (
	ValueKindPercentage = "percentage"
	ValueKindFixed      = "fixed"
)

// DiscountRule regla de descuento dirigida por tags.
// Invariante: un tag pertenece a lo sumo a una regla (índice único por tag en
// la capa de almacenamiento). Las reglas son append-only: se crean y se
// consultan, nunca se editan parcialmente.
type DiscountRule struct {
	ID        string
	Kind      string // etiqueta libre del tipo de descuento (ej. "wholesale")
	ValueKind string // percentage | fixed
	Value     decimal.Decimal
	Tags      []string
	CreatedAt time.Time
}

// Apply calcula el descuento sobre un subtotal. Porcentaje = subtotal*value/100;
// fijo = value directo. El resultado se recorta para no exceder el subtotal,
// de modo que el total nunca quede negativo antes de impuestos y envío.
func (r *DiscountRule) Apply(subtotal decimal.Decimal) decimal.Decimal {
	if r == nil {
		return decimal.Zero
	}
	var discount decimal.Decimal
	switch r.ValueKind {
	case ValueKindPercentage:
		discount = subtotal.Mul(r.Value).Div(decimal.NewFromInt(100))
	case ValueKindFixed:
		discount = r.Value
	default:
		return decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount
}
