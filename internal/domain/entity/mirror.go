package entity

import "time"

// Tipos de registro espejo alimentados por webhooks.
const (
	MirrorOrders    = "orders"
	MirrorCustomers = "customers"
	MirrorProducts  = "products"
)

// MirrorRecord copia pasiva de una entidad de Shopify, llaveada por el ID del
// sistema externo y actualizada solo por eventos webhook (upsert). No es fuente
// de verdad para las lecturas del dashboard, que van en vivo contra Shopify;
// puede quedar desfasada sin que eso sea un error.
type MirrorRecord struct {
	Kind       string // orders | customers | products
	ExternalID int64
	Payload    []byte // JSON crudo del webhook
	ReceivedAt time.Time
	UpdatedAt  time.Time
}
