package repository

import "github.com/jhoicas/shop-admin-api/internal/domain/entity"

// UserRepository puerto de persistencia de usuarios del staff.
// Las implementaciones devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
	// List devuelve usuarios ordenados por fecha de creación; role vacío = todos.
	List(role string) ([]*entity.User, error)
	// AllTags devuelve la lista plana de tags de todos los usuarios, sin duplicados.
	AllTags() ([]string, error)
}
