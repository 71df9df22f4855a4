package dto

import "time"

// SaveShopRequest alta/reemplazo de la conexión de tienda del usuario.
type SaveShopRequest struct {
	ShopDomain  string `json:"shopDomain" validate:"required"`
	AccessToken string `json:"accessToken" validate:"required"`
}

// ShopResponse conexión vigente del usuario. El access token nunca se expone.
type ShopResponse struct {
	ShopDomain string    `json:"shopDomain"`
	Connected  bool      `json:"connected"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}
