package repository

import "github.com/jhoicas/shop-admin-api/internal/domain/entity"

// DiscountRepository puerto de persistencia de reglas de descuento.
type DiscountRepository interface {
	// Create persiste la regla y sus tags. Debe devolver domain.ErrTagAlreadyClaimed
	// si algún tag ya pertenece a otra regla (respaldo: índice único por tag,
	// atómico con el insert).
	Create(rule *entity.DiscountRule) error
	List() ([]*entity.DiscountRule, error)
	// FindByTag devuelve la regla dueña del tag (case-insensitive) o (nil, nil).
	FindByTag(tag string) (*entity.DiscountRule, error)
	// ClaimedTags devuelve los tags solicitados que ya pertenecen a alguna regla.
	ClaimedTags(tags []string) ([]string, error)
}
