package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
	"github.com/jhoicas/shop-admin-api/internal/domain/repository"
)

var _ repository.MirrorRepository = (*MirrorRepo)(nil)

// MirrorRepo implementación del puerto MirrorRepository sobre PostgreSQL.
// El payload crudo del webhook se guarda como JSONB, llaveado por (kind, external_id).
type MirrorRepo struct {
	pool *pgxpool.Pool
}

// NewMirrorRepository construye el adaptador de persistencia para espejos de webhooks.
func NewMirrorRepository(pool *pgxpool.Pool) *MirrorRepo {
	return &MirrorRepo{pool: pool}
}

// Upsert inserta o reemplaza el registro espejo. Reenvíos del mismo evento
// actualizan el payload en lugar de duplicar filas.
func (r *MirrorRepo) Upsert(record *entity.MirrorRecord) error {
	query := `
		INSERT INTO mirrors (kind, external_id, payload, received_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (kind, external_id) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at`
	_, err := r.pool.Exec(context.Background(), query,
		record.Kind, record.ExternalID, record.Payload, record.ReceivedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert mirror %s/%d: %w", record.Kind, record.ExternalID, err)
	}
	return nil
}
