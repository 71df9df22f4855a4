package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/domain"
	"github.com/jhoicas/shop-admin-api/internal/domain/authz"
	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
	"github.com/jhoicas/shop-admin-api/internal/domain/repository"
)

// ResolutionCache cache de lectura para la resolución descuento-por-tag.
// Lo implementa el adaptador Redis; puede ser nil (cache deshabilitado).
type ResolutionCache interface {
	// GetRule devuelve la regla cacheada para el tag, o (nil, false, nil) en miss.
	GetRule(ctx context.Context, tag string) (*entity.DiscountRule, bool, error)
	SetRule(ctx context.Context, tag string, rule *entity.DiscountRule) error
	// Invalidate borra las entradas de los tags dados (tras crear una regla).
	Invalidate(ctx context.Context, tags []string) error
}

// DiscountUseCase motor de resolución de descuentos dirigido por tags.
type DiscountUseCase struct {
	repo  repository.DiscountRepository
	cache ResolutionCache
}

// NewDiscountUseCase construye el caso de uso; cache puede ser nil.
func NewDiscountUseCase(repo repository.DiscountRepository, cache ResolutionCache) *DiscountUseCase {
	return &DiscountUseCase{repo: repo, cache: cache}
}

// Create persiste una regla nueva. Rechaza con ErrTagAlreadyClaimed si algún
// tag solicitado ya pertenece a otra regla. El pre-chequeo da un 409 amable;
// el índice único por tag en la DB cierra la carrera check-then-insert.
func (uc *DiscountUseCase) Create(ctx context.Context, actorRole string, in dto.SaveDiscountRequest) (*dto.DiscountResponse, error) {
	if d := authz.Decide(actorRole, nil, authz.OpSaveDiscount); !d.Allowed() {
		return nil, domain.ErrForbidden
	}
	if in.Type == "" || len(in.SelectedTags) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.DiscountType != entity.ValueKindPercentage && in.DiscountType != entity.ValueKindFixed {
		return nil, domain.ErrInvalidInput
	}
	if in.DiscountValue.IsNegative() || in.DiscountValue.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	claimed, err := uc.repo.ClaimedTags(in.SelectedTags)
	if err != nil {
		return nil, err
	}
	if len(claimed) > 0 {
		return nil, domain.ErrTagAlreadyClaimed
	}

	rule := &entity.DiscountRule{
		ID:        uuid.New().String(),
		Kind:      in.Type,
		ValueKind: in.DiscountType,
		Value:     in.DiscountValue,
		Tags:      in.SelectedTags,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(rule); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		_ = uc.cache.Invalidate(ctx, rule.Tags)
	}
	return toDiscountResponse(rule), nil
}

// List devuelve todas las reglas (append-only, el orden es el de creación).
func (uc *DiscountUseCase) List() ([]*dto.DiscountResponse, error) {
	rules, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DiscountResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, toDiscountResponse(r))
	}
	return out, nil
}

// ResolveByTag devuelve la regla dueña del tag o el centinela "sin descuento"
// (valor 0). Un tag desconocido no es un error; un tag vacío sí.
func (uc *DiscountUseCase) ResolveByTag(ctx context.Context, tag string) (*dto.DiscountByTagResponse, error) {
	rule, err := uc.resolve(ctx, tag)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return &dto.DiscountByTagResponse{DiscountPercent: decimal.Zero}, nil
	}
	return &dto.DiscountByTagResponse{
		DiscountPercent: rule.Value,
		DiscountType:    rule.ValueKind,
	}, nil
}

// ResolveForTags devuelve la primera regla que reclame alguno de los tags
// dados, en el orden recibido, o nil si ninguno tiene descuento.
func (uc *DiscountUseCase) ResolveForTags(ctx context.Context, tags []string) (*entity.DiscountRule, error) {
	for _, tag := range tags {
		rule, err := uc.resolve(ctx, tag)
		if err != nil {
			return nil, err
		}
		if rule != nil {
			return rule, nil
		}
	}
	return nil, nil
}

func (uc *DiscountUseCase) resolve(ctx context.Context, tag string) (*entity.DiscountRule, error) {
	if tag == "" {
		return nil, domain.ErrInvalidInput
	}
	if uc.cache != nil {
		if rule, ok, err := uc.cache.GetRule(ctx, tag); err == nil && ok {
			return rule, nil
		}
		// Un fallo del cache no bloquea la resolución: se cae a la DB.
	}
	rule, err := uc.repo.FindByTag(tag)
	if err != nil {
		return nil, err
	}
	if rule != nil && uc.cache != nil {
		_ = uc.cache.SetRule(ctx, tag, rule)
	}
	return rule, nil
}

func toDiscountResponse(r *entity.DiscountRule) *dto.DiscountResponse {
	return &dto.DiscountResponse{
		ID:            r.ID,
		Type:          r.Kind,
		DiscountType:  r.ValueKind,
		DiscountValue: r.Value,
		SelectedTags:  r.Tags,
		CreatedAt:     r.CreatedAt,
	}
}
