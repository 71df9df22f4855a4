package repository

import "github.com/jhoicas/shop-admin-api/internal/domain/entity"

// MirrorRepository puerto de persistencia de registros espejo de webhooks.
// Solo upsert por (kind, external id); no hay lecturas de negocio sobre espejos.
type MirrorRepository interface {
	Upsert(record *entity.MirrorRecord) error
}
