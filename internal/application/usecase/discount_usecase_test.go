package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/application/usecase"
	"github.com/jhoicas/shop-admin-api/internal/domain"
	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
)

// fakeDiscountRepo repositorio en memoria que imita el índice único por tag.
type fakeDiscountRepo struct {
	rules    []*entity.DiscountRule
	findCall int
}

func (r *fakeDiscountRepo) Create(rule *entity.DiscountRule) error {
	for _, existing := range r.rules {
		for _, t := range existing.Tags {
			for _, nt := range rule.Tags {
				if strings.EqualFold(t, nt) {
					return domain.ErrTagAlreadyClaimed
				}
			}
		}
	}
	r.rules = append(r.rules, rule)
	return nil
}

func (r *fakeDiscountRepo) List() ([]*entity.DiscountRule, error) {
	return r.rules, nil
}

func (r *fakeDiscountRepo) FindByTag(tag string) (*entity.DiscountRule, error) {
	r.findCall++
	for _, rule := range r.rules {
		for _, t := range rule.Tags {
			if strings.EqualFold(t, tag) {
				return rule, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeDiscountRepo) ClaimedTags(tags []string) ([]string, error) {
	var claimed []string
	for _, rule := range r.rules {
		for _, t := range rule.Tags {
			for _, nt := range tags {
				if strings.EqualFold(t, nt) {
					claimed = append(claimed, nt)
				}
			}
		}
	}
	return claimed, nil
}

// fakeCache cache en memoria con contadores.
type fakeCache struct {
	entries map[string]*entity.DiscountRule
	hits    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*entity.DiscountRule{}}
}

func (c *fakeCache) GetRule(_ context.Context, tag string) (*entity.DiscountRule, bool, error) {
	rule, ok := c.entries[strings.ToLower(tag)]
	if ok {
		c.hits++
	}
	return rule, ok, nil
}

func (c *fakeCache) SetRule(_ context.Context, tag string, rule *entity.DiscountRule) error {
	c.entries[strings.ToLower(tag)] = rule
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, tags []string) error {
	for _, t := range tags {
		delete(c.entries, strings.ToLower(t))
	}
	return nil
}

func saveReq(kind string, value int64, tags ...string) dto.SaveDiscountRequest {
	return dto.SaveDiscountRequest{
		Type:          "wholesale",
		DiscountType:  kind,
		DiscountValue: decimal.NewFromInt(value),
		SelectedTags:  tags,
	}
}

func TestCreate_Regla(t *testing.T) {
	uc := usecase.NewDiscountUseCase(&fakeDiscountRepo{}, nil)

	out, err := uc.Create(context.Background(), entity.RoleAdmin, saveReq(entity.ValueKindPercentage, 10, "vip"))
	require.NoError(t, err)
	assert.Equal(t, entity.ValueKindPercentage, out.DiscountType)
	assert.Equal(t, []string{"vip"}, out.SelectedTags)
}

// Propiedad central: dos reglas no pueden compartir un tag. El segundo intento
// falla con conflicto y no persiste nada.
func TestCreate_TagYaReclamado(t *testing.T) {
	repo := &fakeDiscountRepo{}
	uc := usecase.NewDiscountUseCase(repo, nil)

	_, err := uc.Create(context.Background(), entity.RoleAdmin, saveReq(entity.ValueKindPercentage, 10, "vip", "wholesale"))
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), entity.RoleAdmin, saveReq(entity.ValueKindFixed, 5, "retail", "VIP"))
	assert.ErrorIs(t, err, domain.ErrTagAlreadyClaimed)
	assert.Len(t, repo.rules, 1, "la regla en conflicto no debe persistirse")
}

func TestCreate_Validaciones(t *testing.T) {
	uc := usecase.NewDiscountUseCase(&fakeDiscountRepo{}, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, entity.RoleAdmin, saveReq(entity.ValueKindPercentage, 10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tags vacíos")

	_, err = uc.Create(ctx, entity.RoleAdmin, saveReq("mitad", 10, "vip"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo de valor desconocido")

	_, err = uc.Create(ctx, entity.RoleAdmin, saveReq(entity.ValueKindFixed, 0, "vip"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "valor cero")
}

func TestCreate_SalesRepRechazado(t *testing.T) {
	repo := &fakeDiscountRepo{}
	uc := usecase.NewDiscountUseCase(repo, nil)

	_, err := uc.Create(context.Background(), entity.RoleSalesRep, saveReq(entity.ValueKindPercentage, 10, "vip"))
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, repo.rules)
}

func TestResolveByTag_Centinela(t *testing.T) {
	uc := usecase.NewDiscountUseCase(&fakeDiscountRepo{}, nil)

	out, err := uc.ResolveByTag(context.Background(), "desconocido")
	require.NoError(t, err, "tag desconocido no es un error")
	assert.True(t, out.DiscountPercent.IsZero())

	_, err = uc.ResolveByTag(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tag faltante sí es un error")
}

// Idempotencia: resolver dos veces sin escrituras intermedias da lo mismo.
func TestResolveByTag_Idempotente(t *testing.T) {
	repo := &fakeDiscountRepo{}
	uc := usecase.NewDiscountUseCase(repo, nil)
	_, err := uc.Create(context.Background(), entity.RoleAdmin, saveReq(entity.ValueKindPercentage, 15, "vip"))
	require.NoError(t, err)

	first, err := uc.ResolveByTag(context.Background(), "vip")
	require.NoError(t, err)
	second, err := uc.ResolveByTag(context.Background(), "vip")
	require.NoError(t, err)
	assert.True(t, first.DiscountPercent.Equal(second.DiscountPercent))
}

func TestResolveByTag_CacheDeLectura(t *testing.T) {
	repo := &fakeDiscountRepo{}
	cache := newFakeCache()
	uc := usecase.NewDiscountUseCase(repo, cache)
	_, err := uc.Create(context.Background(), entity.RoleAdmin, saveReq(entity.ValueKindPercentage, 15, "vip"))
	require.NoError(t, err)

	_, err = uc.ResolveByTag(context.Background(), "vip")
	require.NoError(t, err)
	_, err = uc.ResolveByTag(context.Background(), "vip")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.findCall, "la segunda resolución debe salir del cache")
	assert.Equal(t, 1, cache.hits)
}

func TestResolveForTags_PrimeraCoincidencia(t *testing.T) {
	repo := &fakeDiscountRepo{}
	uc := usecase.NewDiscountUseCase(repo, nil)
	ctx := context.Background()
	_, err := uc.Create(ctx, entity.RoleAdmin, saveReq(entity.ValueKindPercentage, 15, "vip"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, entity.RoleAdmin, saveReq(entity.ValueKindFixed, 5, "wholesale"))
	require.NoError(t, err)

	rule, err := uc.ResolveForTags(ctx, []string{"retail", "wholesale", "vip"})
	require.NoError(t, err)
	require.NotNil(t, rule)
	assert.Equal(t, entity.ValueKindFixed, rule.ValueKind, "gana el primer tag con regla, en orden de entrada")

	rule, err = uc.ResolveForTags(ctx, []string{"retail"})
	require.NoError(t, err)
	assert.Nil(t, rule)
}
