package repository

import "github.com/jhoicas/shop-admin-api/internal/domain/entity"

// ShopRepository puerto de persistencia de conexiones de tienda (1:1 por usuario).
type ShopRepository interface {
	// Upsert crea o reemplaza la conexión del usuario.
	Upsert(conn *entity.ShopConnection) error
	// GetByUser devuelve la conexión del usuario o (nil, nil) si no tiene.
	GetByUser(userID string) (*entity.ShopConnection, error)
}
