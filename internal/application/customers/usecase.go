package customers

import (
	"context"

	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/domain"
	"github.com/jhoicas/shop-admin-api/internal/domain/authz"
	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
)

// Gateway contrato mínimo contra la fuente paginada de clientes (Shopify).
// Devuelve una página upstream ya mapeada al modelo local, más el hasNextPage
// que reporta el propio upstream. Lo implementa *shopify.Client.
type Gateway interface {
	CustomersPage(ctx context.Context, creds entity.ShopCredentials, first int, after string) ([]dto.CustomerView, bool, error)
}

// upstreamPageSize tamaño de la única página upstream por llamada. Mayor que
// el limit local para que el corte por page/limit tenga material que cortar.
const upstreamPageSize = 50

// UseCase adaptador de paginación con filtro por tags.
//
// El upstream pagina con cursores opacos sobre el conjunto SIN filtrar; el
// filtro de sales-rep se aplica después de traer la página, así que el cursor
// upstream deja de alinearse con los offsets del resultado filtrado. Política:
// se trae UNA página upstream por llamada, se filtra completa, y sobre el
// arreglo filtrado se aplica una segunda paginación local por page/limit.
// hasNextPage se calcula contra el arreglo filtrado en mano, no contra el
// hasNextPage del upstream: un sales-rep con poca coincidencia de tags puede
// recibir páginas cortas o vacías aunque existan más registros coincidentes
// más adelante en la secuencia upstream. Aproximación conocida y aceptada;
// no recorrer el upstream en bucle hasta llenar la página.
type UseCase struct {
	gw Gateway
}

// NewUseCase construye el adaptador.
func NewUseCase(gw Gateway) *UseCase {
	return &UseCase{gw: gw}
}

// List trae una página upstream, filtra según el rol y re-pagina localmente.
func (uc *UseCase) List(ctx context.Context, creds entity.ShopCredentials, role string, userTags []string, q dto.CustomerListQuery) (*dto.CustomerListResponse, error) {
	decision := authz.Decide(role, userTags, authz.OpListCustomers)
	if !decision.Allowed() {
		return nil, domain.ErrForbidden
	}
	q.Defaults()

	page, _, err := uc.gw.CustomersPage(ctx, creds, upstreamPageSize, q.Cursor)
	if err != nil {
		return nil, err
	}

	filtered := page
	if decision.Filtered() {
		filtered = make([]dto.CustomerView, 0, len(page))
		for _, c := range page {
			if authz.TagsIntersect(decision.Tags(), c.Tags) {
				filtered = append(filtered, c)
			}
		}
	}

	start := (q.Page - 1) * q.Limit
	end := start + q.Limit
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}
	visible := filtered[start:end]

	hasNext := start+q.Limit < len(filtered)
	nextCursor := ""
	if hasNext && len(visible) > 0 {
		// Cursor upstream del último elemento visible: permite reanudar el
		// upstream desde ahí en la siguiente llamada.
		nextCursor = visible[len(visible)-1].Cursor
	}

	return &dto.CustomerListResponse{
		Customers:       visible,
		HasNextPage:     hasNext,
		HasPreviousPage: q.Page > 1,
		NextCursor:      nextCursor,
	}, nil
}
