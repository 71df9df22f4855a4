package orders

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/domain"
	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
)

// fakeGateway registra las llamadas y permite guionar fallos.
type fakeGateway struct {
	lastQuery   string
	updateCalls int
	updateErrs  []error // errores a devolver por llamada, en orden
}

func (g *fakeGateway) OrdersPage(_ context.Context, _ entity.ShopCredentials, first int, after, query string) ([]dto.OrderView, bool, string, error) {
	g.lastQuery = query
	return []dto.OrderView{{ID: "gid://shopify/Order/1", Name: "#1001"}}, false, "", nil
}

func (g *fakeGateway) CreateDraftOrder(_ context.Context, _ entity.ShopCredentials, in DraftOrderInput) (string, string, error) {
	return "gid://shopify/DraftOrder/9", "#D9", nil
}

func (g *fakeGateway) UpdateOrder(_ context.Context, _ entity.ShopCredentials, orderID string, tags []string, note string) error {
	g.updateCalls++
	if len(g.updateErrs) > 0 {
		err := g.updateErrs[0]
		g.updateErrs = g.updateErrs[1:]
		return err
	}
	return nil
}

// fakeResolver devuelve siempre la misma regla.
type fakeResolver struct {
	rule *entity.DiscountRule
}

func (r *fakeResolver) ResolveForTags(_ context.Context, tags []string) (*entity.DiscountRule, error) {
	return r.rule, nil
}

func newOrdersUC(gw *fakeGateway, rule *entity.DiscountRule) *UseCase {
	uc := NewUseCase(gw, &fakeResolver{rule: rule})
	uc.retryDelay = time.Millisecond
	return uc
}

func TestList_SalesRepInyectaFiltroUpstream(t *testing.T) {
	gw := &fakeGateway{}
	uc := newOrdersUC(gw, nil)

	_, err := uc.List(context.Background(), entity.ShopCredentials{}, entity.RoleSalesRep,
		[]string{"wholesale", "vip"}, dto.OrderListQuery{Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, "tag:'wholesale' OR tag:'vip'", gw.lastQuery,
		"el filtro de sales-rep debe viajar en la query upstream")
}

func TestList_AdminSinFiltroUpstream(t *testing.T) {
	gw := &fakeGateway{}
	uc := newOrdersUC(gw, nil)

	_, err := uc.List(context.Background(), entity.ShopCredentials{}, entity.RoleAdmin, nil, dto.OrderListQuery{})
	require.NoError(t, err)
	assert.Empty(t, gw.lastQuery)
}

func TestCreate_DescuentoPorcentual(t *testing.T) {
	rule := &entity.DiscountRule{
		ValueKind: entity.ValueKindPercentage,
		Value:     decimal.NewFromInt(10),
		Tags:      []string{"vip"},
	}
	uc := newOrdersUC(&fakeGateway{}, rule)

	out, err := uc.Create(context.Background(), entity.ShopCredentials{}, dto.CreateOrderRequest{
		Tags: []string{"vip"},
		LineItems: []dto.LineItemInput{
			{Title: "Camisa", Quantity: 2, Price: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	assert.True(t, out.Subtotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.Discount.Equal(decimal.NewFromInt(10)), "10%% de 100")
	assert.True(t, out.Total.Equal(decimal.NewFromInt(90)))
}

// Descuento fijo mayor que el subtotal: se recorta al subtotal, el total
// nunca queda negativo.
func TestCreate_DescuentoFijoRecortado(t *testing.T) {
	rule := &entity.DiscountRule{
		ValueKind: entity.ValueKindFixed,
		Value:     decimal.NewFromInt(50),
		Tags:      []string{"vip"},
	}
	uc := newOrdersUC(&fakeGateway{}, rule)

	out, err := uc.Create(context.Background(), entity.ShopCredentials{}, dto.CreateOrderRequest{
		Tags: []string{"vip"},
		LineItems: []dto.LineItemInput{
			{Title: "Gorra", Quantity: 1, Price: decimal.NewFromInt(40)},
		},
	})
	require.NoError(t, err)

	assert.True(t, out.Discount.Equal(decimal.NewFromInt(40)), "min(50, 40) = 40")
	assert.True(t, out.Total.IsZero())
}

func TestCreate_SinReglaSinDescuento(t *testing.T) {
	uc := newOrdersUC(&fakeGateway{}, nil)

	out, err := uc.Create(context.Background(), entity.ShopCredentials{}, dto.CreateOrderRequest{
		Tags: []string{"retail"},
		LineItems: []dto.LineItemInput{
			{Title: "Medias", Quantity: 3, Price: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.Discount.IsZero())
	assert.True(t, out.Total.Equal(decimal.NewFromInt(15)))
}

func TestUpdate_ReintentaUnaVezAnteThrottling(t *testing.T) {
	gw := &fakeGateway{updateErrs: []error{domain.NewUpstreamError("Throttled: too many requests", 429)}}
	uc := newOrdersUC(gw, nil)

	err := uc.Update(context.Background(), entity.ShopCredentials{}, "gid://shopify/Order/1", dto.UpdateOrderRequest{Tags: []string{"vip"}})
	require.NoError(t, err, "el segundo intento debe prosperar")
	assert.Equal(t, 2, gw.updateCalls)
}

func TestUpdate_NoReintentaDosVeces(t *testing.T) {
	gw := &fakeGateway{updateErrs: []error{
		domain.NewUpstreamError("Throttled", 429),
		domain.NewUpstreamError("Throttled", 429),
	}}
	uc := newOrdersUC(gw, nil)

	err := uc.Update(context.Background(), entity.ShopCredentials{}, "gid://shopify/Order/1", dto.UpdateOrderRequest{})
	assert.Error(t, err, "un solo reintento: el segundo throttle se propaga")
	assert.Equal(t, 2, gw.updateCalls)
}

func TestUpdate_ErrorNoThrottleSinReintento(t *testing.T) {
	gw := &fakeGateway{updateErrs: []error{domain.NewUpstreamError("order not found", 404)}}
	uc := newOrdersUC(gw, nil)

	err := uc.Update(context.Background(), entity.ShopCredentials{}, "gid://shopify/Order/1", dto.UpdateOrderRequest{})
	assert.Error(t, err)
	assert.Equal(t, 1, gw.updateCalls)
}
