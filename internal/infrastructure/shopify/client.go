package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/shop-admin-api/internal/application/customers"
	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/application/orders"
	"github.com/jhoicas/shop-admin-api/internal/domain"
	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
)

// Client adaptador contra la Admin API GraphQL de Shopify. Implementa los
// puertos Gateway de clientes y de pedidos. Las credenciales viajan por
// llamada, no en el cliente: cada usuario puede tener su propia tienda.
type Client struct {
	http       *http.Client
	apiVersion string
	baseURL    string // solo tests; vacío = https://{shop}/admin/api/{version}
}

var (
	_ customers.Gateway = (*Client)(nil)
	_ orders.Gateway    = (*Client)(nil)
)

// NewClient construye el cliente con la versión de API configurada.
func NewClient(apiVersion string) *Client {
	return &Client{
		http:       &http.Client{Timeout: 30 * time.Second},
		apiVersion: apiVersion,
	}
}

func (c *Client) endpoint(shopDomain string) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shopDomain, c.apiVersion)
}

// postGraphQL ejecuta una operación y decodifica data en out. Cualquier status
// no-2xx o array errors[] se devuelve como *domain.UpstreamError con el payload
// original intacto.
func (c *Client) postGraphQL(ctx context.Context, creds entity.ShopCredentials, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshal graphql request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(creds.ShopDomain), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", creds.AccessToken)

	res, err := c.http.Do(req)
	if err != nil {
		return &domain.UpstreamError{Message: err.Error()}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return &domain.UpstreamError{Message: "leer respuesta upstream: " + err.Error(), StatusCode: res.StatusCode}
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &domain.UpstreamError{
			Message:    fmt.Sprintf("status %d del upstream", res.StatusCode),
			StatusCode: res.StatusCode,
			Payload:    raw,
		}
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &domain.UpstreamError{Message: "respuesta upstream no es JSON válido", StatusCode: res.StatusCode, Payload: raw}
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			if e.Extensions.Code != "" {
				msgs = append(msgs, e.Message+" ("+e.Extensions.Code+")")
			} else {
				msgs = append(msgs, e.Message)
			}
		}
		return &domain.UpstreamError{
			Message:    strings.Join(msgs, "; "),
			StatusCode: res.StatusCode,
			Payload:    raw,
		}
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &domain.UpstreamError{Message: "forma inesperada en data del upstream", StatusCode: res.StatusCode, Payload: raw}
	}
	return nil
}

const customersQuery = `
query Customers($first: Int!, $after: String) {
  customers(first: $first, after: $after) {
    edges {
      cursor
      node {
        id
        displayName
        email
        tags
        defaultAddress { city country }
        orders(first: 25) {
          edges { node { totalPriceSet { shopMoney { amount currencyCode } } } }
        }
      }
    }
    pageInfo { hasNextPage endCursor }
  }
}`

// CustomersPage trae una página de clientes y la normaliza al modelo local.
// TotalSpent es la suma de los pedidos embebidos; Location es "ciudad, país"
// de la dirección por defecto o "Unknown" si no hay.
func (c *Client) CustomersPage(ctx context.Context, creds entity.ShopCredentials, first int, after string) ([]dto.CustomerView, bool, error) {
	vars := map[string]any{"first": first}
	if after != "" {
		vars["after"] = after
	}
	var page customersPage
	if err := c.postGraphQL(ctx, creds, customersQuery, vars, &page); err != nil {
		return nil, false, err
	}

	views := make([]dto.CustomerView, 0, len(page.Customers.Edges))
	for _, edge := range page.Customers.Edges {
		node := edge.Node
		total := decimal.Zero
		for _, oe := range node.Orders.Edges {
			amount, err := decimal.NewFromString(oe.Node.TotalPriceSet.ShopMoney.Amount)
			if err != nil {
				return nil, false, &domain.UpstreamError{Message: "monto de pedido ilegible en cliente " + node.ID}
			}
			total = total.Add(amount)
		}
		tags := node.Tags
		if tags == nil {
			tags = []string{}
		}
		views = append(views, dto.CustomerView{
			ID:         node.ID,
			Name:       node.DisplayName,
			Email:      node.Email,
			Tags:       tags,
			TotalSpent: total,
			Location:   formatLocation(node),
			Cursor:     edge.Cursor,
		})
	}
	return views, page.Customers.PageInfo.HasNextPage, nil
}

func formatLocation(node customerNode) string {
	if node.DefaultAddress == nil {
		return "Unknown"
	}
	city := strings.TrimSpace(node.DefaultAddress.City)
	country := strings.TrimSpace(node.DefaultAddress.Country)
	switch {
	case city != "" && country != "":
		return city + ", " + country
	case city != "":
		return city
	case country != "":
		return country
	default:
		return "Unknown"
	}
}

const ordersQuery = `
query Orders($first: Int!, $after: String, $q: String) {
  orders(first: $first, after: $after, query: $q) {
    edges {
      cursor
      node {
        id
        name
        tags
        createdAt
        customer { displayName }
        totalPriceSet { shopMoney { amount currencyCode } }
      }
    }
    pageInfo { hasNextPage endCursor }
  }
}`

// OrdersPage trae una página de pedidos; query es el filtro de búsqueda de
// Shopify ("" = sin filtro) y viaja tal cual al upstream.
func (c *Client) OrdersPage(ctx context.Context, creds entity.ShopCredentials, first int, after, query string) ([]dto.OrderView, bool, string, error) {
	vars := map[string]any{"first": first}
	if after != "" {
		vars["after"] = after
	}
	if query != "" {
		vars["q"] = query
	}
	var page ordersPage
	if err := c.postGraphQL(ctx, creds, ordersQuery, vars, &page); err != nil {
		return nil, false, "", err
	}

	views := make([]dto.OrderView, 0, len(page.Orders.Edges))
	for _, edge := range page.Orders.Edges {
		node := edge.Node
		total, err := decimal.NewFromString(node.TotalPriceSet.ShopMoney.Amount)
		if err != nil {
			return nil, false, "", &domain.UpstreamError{Message: "monto ilegible en pedido " + node.ID}
		}
		createdAt, _ := time.Parse(time.RFC3339, node.CreatedAt)
		customerName := ""
		if node.Customer != nil {
			customerName = node.Customer.DisplayName
		}
		tags := node.Tags
		if tags == nil {
			tags = []string{}
		}
		views = append(views, dto.OrderView{
			ID:           node.ID,
			Name:         node.Name,
			CustomerName: customerName,
			Tags:         tags,
			Total:        total,
			CreatedAt:    createdAt,
			Cursor:       edge.Cursor,
		})
	}
	return views, page.Orders.PageInfo.HasNextPage, page.Orders.PageInfo.EndCursor, nil
}

const draftOrderCreateMutation = `
mutation DraftOrderCreate($input: DraftOrderInput!) {
  draftOrderCreate(input: $input) {
    draftOrder { id name }
    userErrors { field message }
  }
}`

// CreateDraftOrder crea un draft order con el descuento ya resuelto aplicado
// como appliedDiscount. Los userErrors de la mutación se devuelven como
// *domain.UpstreamError con UserErrors=true.
func (c *Client) CreateDraftOrder(ctx context.Context, creds entity.ShopCredentials, in orders.DraftOrderInput) (string, string, error) {
	lineItems := make([]map[string]any, 0, len(in.LineItems))
	for _, li := range in.LineItems {
		lineItems = append(lineItems, map[string]any{
			"title":             li.Title,
			"quantity":          li.Quantity,
			"originalUnitPrice": li.Price.String(),
		})
	}
	input := map[string]any{"lineItems": lineItems}
	if in.CustomerID != "" {
		input["purchasingEntity"] = map[string]any{"customerId": in.CustomerID}
	}
	if in.DiscountKind != "" {
		valueType := "FIXED_AMOUNT"
		if in.DiscountKind == entity.ValueKindPercentage {
			valueType = "PERCENTAGE"
		}
		input["appliedDiscount"] = map[string]any{
			"value":     in.DiscountValue.InexactFloat64(),
			"valueType": valueType,
		}
	}

	var result draftOrderCreateResult
	if err := c.postGraphQL(ctx, creds, draftOrderCreateMutation, map[string]any{"input": input}, &result); err != nil {
		return "", "", err
	}
	if err := userErrorsToErr(result.DraftOrderCreate.UserErrors); err != nil {
		return "", "", err
	}
	if result.DraftOrderCreate.DraftOrder == nil {
		return "", "", &domain.UpstreamError{Message: "draftOrderCreate sin draftOrder en la respuesta"}
	}
	return result.DraftOrderCreate.DraftOrder.ID, result.DraftOrderCreate.DraftOrder.Name, nil
}

const orderUpdateMutation = `
mutation OrderUpdate($input: OrderInput!) {
  orderUpdate(input: $input) {
    order { id }
    userErrors { field message }
  }
}`

// UpdateOrder reemplaza tags y nota del pedido.
func (c *Client) UpdateOrder(ctx context.Context, creds entity.ShopCredentials, orderID string, tags []string, note string) error {
	input := map[string]any{"id": orderID}
	if tags != nil {
		input["tags"] = tags
	}
	if note != "" {
		input["note"] = note
	}
	var result orderUpdateResult
	if err := c.postGraphQL(ctx, creds, orderUpdateMutation, map[string]any{"input": input}, &result); err != nil {
		return err
	}
	return userErrorsToErr(result.OrderUpdate.UserErrors)
}

// userErrorsToErr convierte el array userErrors de una mutación en un error.
func userErrorsToErr(errs []userError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, ue := range errs {
		if len(ue.Field) > 0 {
			msgs = append(msgs, strings.Join(ue.Field, ".")+": "+ue.Message)
		} else {
			msgs = append(msgs, ue.Message)
		}
	}
	payload, _ := json.Marshal(errs)
	return &domain.UpstreamError{
		Message:    strings.Join(msgs, "; "),
		StatusCode: http.StatusOK,
		UserErrors: true,
		Payload:    payload,
	}
}
