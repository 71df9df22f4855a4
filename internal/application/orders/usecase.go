package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/domain"
	"github.com/jhoicas/shop-admin-api/internal/domain/authz"
	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
)

// DraftOrderInput pedido a crear en el upstream, con el descuento ya resuelto.
type DraftOrderInput struct {
	CustomerID    string
	LineItems     []dto.LineItemInput
	DiscountValue decimal.Decimal
	DiscountKind  string // percentage | fixed | "" (sin descuento)
}

// Gateway contrato mínimo contra la Admin API de pedidos. Lo implementa
// *shopify.Client.
type Gateway interface {
	// OrdersPage trae una página upstream; query es el filtro de búsqueda de
	// Shopify ("" = sin filtro). Devuelve vistas, hasNextPage y endCursor.
	OrdersPage(ctx context.Context, creds entity.ShopCredentials, first int, after, query string) ([]dto.OrderView, bool, string, error)
	CreateDraftOrder(ctx context.Context, creds entity.ShopCredentials, in DraftOrderInput) (id, name string, err error)
	UpdateOrder(ctx context.Context, creds entity.ShopCredentials, orderID string, tags []string, note string) error
}

// DiscountResolver lo implementa *usecase.DiscountUseCase.
type DiscountResolver interface {
	ResolveForTags(ctx context.Context, tags []string) (*entity.DiscountRule, error)
}

// UseCase pedidos: listado con filtro empujado al upstream, creación con
// descuento por tags y actualización con un único reintento ante rate limit.
//
// A diferencia del listado de clientes, aquí el filtro de sales-rep viaja en
// la query de búsqueda de Shopify (OR de tag:'x'), así que la página llega ya
// filtrada y los cursores upstream siguen siendo válidos para el cliente.
// Ambos patrones conviven a propósito, uno por endpoint.
type UseCase struct {
	gw         Gateway
	discounts  DiscountResolver
	retryDelay time.Duration
}

// NewUseCase construye el caso de uso de pedidos.
func NewUseCase(gw Gateway, discounts DiscountResolver) *UseCase {
	return &UseCase{gw: gw, discounts: discounts, retryDelay: time.Second}
}

// List trae una página de pedidos. Para sales-rep inyecta el filtro por tags
// en la query upstream antes de llamar.
func (uc *UseCase) List(ctx context.Context, creds entity.ShopCredentials, role string, userTags []string, q dto.OrderListQuery) (*dto.OrderListResponse, error) {
	decision := authz.Decide(role, userTags, authz.OpListOrders)
	if !decision.Allowed() {
		return nil, domain.ErrForbidden
	}
	q.Defaults()

	query := ""
	if decision.Filtered() {
		query = tagQuery(decision.Tags())
	}
	views, hasNext, endCursor, err := uc.gw.OrdersPage(ctx, creds, q.Limit, q.Cursor, query)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []dto.OrderView{}
	}
	return &dto.OrderListResponse{Orders: views, NextCursor: endCursor, HasNextPage: hasNext}, nil
}

// tagQuery arma el filtro de búsqueda upstream: tag:'a' OR tag:'b'.
func tagQuery(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("tag:'%s'", t))
	}
	return strings.Join(parts, " OR ")
}

// Create resuelve el descuento aplicable a los tags del pedido y crea el
// draft order en el upstream con el desglose calculado.
func (uc *UseCase) Create(ctx context.Context, creds entity.ShopCredentials, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if len(in.LineItems) == 0 {
		return nil, domain.ErrInvalidInput
	}
	subtotal := decimal.Zero
	for _, li := range in.LineItems {
		if li.Quantity <= 0 || li.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		subtotal = subtotal.Add(li.Price.Mul(decimal.NewFromInt(int64(li.Quantity))))
	}

	rule, err := uc.discounts.ResolveForTags(ctx, in.Tags)
	if err != nil {
		return nil, err
	}
	discount := rule.Apply(subtotal) // rule nil => cero

	draft := DraftOrderInput{CustomerID: in.CustomerID, LineItems: in.LineItems}
	if rule != nil {
		draft.DiscountValue = rule.Value
		draft.DiscountKind = rule.ValueKind
	}
	id, name, err := uc.gw.CreateDraftOrder(ctx, creds, draft)
	if err != nil {
		return nil, err
	}
	return &dto.CreateOrderResponse{
		ID:       id,
		Name:     name,
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
	}, nil
}

// Update actualiza tags/nota de un pedido. Si el upstream responde con un
// mensaje de rate limit se espera retryDelay y se reintenta UNA vez; cualquier
// otro error se devuelve de inmediato. No hay framework de reintentos.
func (uc *UseCase) Update(ctx context.Context, creds entity.ShopCredentials, orderID string, in dto.UpdateOrderRequest) error {
	if orderID == "" {
		return domain.ErrInvalidInput
	}
	err := uc.gw.UpdateOrder(ctx, creds, orderID, in.Tags, in.Note)
	if err == nil || !isRateLimited(err) {
		return err
	}
	select {
	case <-time.After(uc.retryDelay):
	case <-ctx.Done():
		return ctx.Err()
	}
	return uc.gw.UpdateOrder(ctx, creds, orderID, in.Tags, in.Note)
}

// isRateLimited detecta el mensaje de throttling de la Admin API.
func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Throttled") || strings.Contains(msg, "Exceeded")
}
