package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
	"github.com/jhoicas/shop-admin-api/internal/domain/repository"
)

var _ repository.ShopRepository = (*ShopRepo)(nil)

// ShopRepo implementación del puerto ShopRepository sobre PostgreSQL.
// Una conexión por usuario (user_id único).
type ShopRepo struct {
	pool *pgxpool.Pool
}

// NewShopRepository construye el adaptador de persistencia para conexiones de tienda.
func NewShopRepository(pool *pgxpool.Pool) *ShopRepo {
	return &ShopRepo{pool: pool}
}

// Upsert crea o reemplaza la conexión de tienda del usuario.
func (r *ShopRepo) Upsert(conn *entity.ShopConnection) error {
	query := `
		INSERT INTO shop_connections (id, user_id, shop_domain, access_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			shop_domain = EXCLUDED.shop_domain,
			access_token = EXCLUDED.access_token,
			updated_at = EXCLUDED.updated_at`
	_, err := r.pool.Exec(context.Background(), query,
		conn.ID, conn.UserID, conn.ShopDomain, conn.AccessToken, conn.CreatedAt, conn.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert shop connection: %w", err)
	}
	return nil
}

// GetByUser devuelve la conexión del usuario, o (nil, nil) si no tiene.
func (r *ShopRepo) GetByUser(userID string) (*entity.ShopConnection, error) {
	query := `
		SELECT id, user_id, shop_domain, access_token, created_at, updated_at
		FROM shop_connections WHERE user_id = $1`
	var conn entity.ShopConnection
	err := r.pool.QueryRow(context.Background(), query, userID).Scan(
		&conn.ID, &conn.UserID, &conn.ShopDomain, &conn.AccessToken, &conn.CreatedAt, &conn.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shop connection: %w", err)
	}
	return &conn, nil
}
