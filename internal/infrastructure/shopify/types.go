package shopify

import "encoding/json"

// graphQLRequest cuerpo POST hacia /admin/api/{version}/graphql.json.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphQLResponse sobre genérico de la Admin API. Data queda cruda para
// decodificarla contra el tipo de cada operación.
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type moneySet struct {
	ShopMoney money `json:"shopMoney"`
}

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// customerNode registro remoto de un cliente, con sus pedidos embebidos para
// derivar el total gastado y la dirección por defecto para la ubicación.
type customerNode struct {
	ID             string   `json:"id"`
	DisplayName    string   `json:"displayName"`
	Email          string   `json:"email"`
	Tags           []string `json:"tags"`
	DefaultAddress *struct {
		City    string `json:"city"`
		Country string `json:"country"`
	} `json:"defaultAddress"`
	Orders struct {
		Edges []struct {
			Node struct {
				TotalPriceSet moneySet `json:"totalPriceSet"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"orders"`
}

type customersPage struct {
	Customers struct {
		Edges []struct {
			Cursor string       `json:"cursor"`
			Node   customerNode `json:"node"`
		} `json:"edges"`
		PageInfo pageInfo `json:"pageInfo"`
	} `json:"customers"`
}

type orderNode struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"createdAt"`
	Customer  *struct {
		DisplayName string `json:"displayName"`
	} `json:"customer"`
	TotalPriceSet moneySet `json:"totalPriceSet"`
}

type ordersPage struct {
	Orders struct {
		Edges []struct {
			Cursor string    `json:"cursor"`
			Node   orderNode `json:"node"`
		} `json:"edges"`
		PageInfo pageInfo `json:"pageInfo"`
	} `json:"orders"`
}

type draftOrderCreateResult struct {
	DraftOrderCreate struct {
		DraftOrder *struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"draftOrder"`
		UserErrors []userError `json:"userErrors"`
	} `json:"draftOrderCreate"`
}

type orderUpdateResult struct {
	OrderUpdate struct {
		Order *struct {
			ID string `json:"id"`
		} `json:"order"`
		UserErrors []userError `json:"userErrors"`
	} `json:"orderUpdate"`
}
