package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/domain"
	"github.com/jhoicas/shop-admin-api/internal/domain/authz"
	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
	"github.com/jhoicas/shop-admin-api/internal/domain/repository"
)

// ShopUseCase conexiones de tienda por usuario con fallback a las credenciales
// globales de configuración.
type ShopUseCase struct {
	repo     repository.ShopRepository
	defaults entity.ShopCredentials
}

// NewShopUseCase construye el caso de uso; defaults viene de la configuración.
func NewShopUseCase(repo repository.ShopRepository, defaults entity.ShopCredentials) *ShopUseCase {
	return &ShopUseCase{repo: repo, defaults: defaults}
}

// Resolve devuelve las credenciales efectivas para el usuario: su conexión
// propia si existe, si no las globales.
func (uc *ShopUseCase) Resolve(userID string) (entity.ShopCredentials, error) {
	conn, err := uc.repo.GetByUser(userID)
	if err != nil {
		return entity.ShopCredentials{}, err
	}
	if conn == nil {
		return uc.defaults, nil
	}
	return entity.ShopCredentials{ShopDomain: conn.ShopDomain, AccessToken: conn.AccessToken}, nil
}

// Get devuelve la conexión vigente del usuario (sin exponer el token).
func (uc *ShopUseCase) Get(userID string) (*dto.ShopResponse, error) {
	conn, err := uc.repo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return &dto.ShopResponse{ShopDomain: uc.defaults.ShopDomain, Connected: false}, nil
	}
	return &dto.ShopResponse{ShopDomain: conn.ShopDomain, Connected: true, UpdatedAt: conn.UpdatedAt}, nil
}

// Save crea o reemplaza la conexión del usuario (solo admin y super-admin).
func (uc *ShopUseCase) Save(actorRole, userID string, in dto.SaveShopRequest) (*dto.ShopResponse, error) {
	if d := authz.Decide(actorRole, nil, authz.OpManageShop); !d.Allowed() {
		return nil, domain.ErrForbidden
	}
	if in.ShopDomain == "" || in.AccessToken == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	conn := &entity.ShopConnection{
		ID:          uuid.New().String(),
		UserID:      userID,
		ShopDomain:  in.ShopDomain,
		AccessToken: in.AccessToken,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Upsert(conn); err != nil {
		return nil, err
	}
	return &dto.ShopResponse{ShopDomain: conn.ShopDomain, Connected: true, UpdatedAt: conn.UpdatedAt}, nil
}
