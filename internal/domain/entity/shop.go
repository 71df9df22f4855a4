package entity

import "time"

// ShopConnection vincula un usuario con su tienda Shopify (1:1 por usuario).
// Si un usuario no tiene conexión propia se usan las credenciales globales
// de configuración.
type ShopConnection struct {
	ID          string
	UserID      string
	ShopDomain  string
	AccessToken string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ShopCredentials credenciales efectivas para llamar a la Admin API.
type ShopCredentials struct {
	ShopDomain  string
	AccessToken string
}
