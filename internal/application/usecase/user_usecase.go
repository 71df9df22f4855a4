package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/domain"
	"github.com/jhoicas/shop-admin-api/internal/domain/authz"
	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
	"github.com/jhoicas/shop-admin-api/internal/domain/repository"
)

// UserUseCase gestión de cuentas del staff desde el panel.
// Los registros super-admin no se crean ni se tocan por esta vía.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista usuarios, opcionalmente filtrados por rol. Solo admin y super-admin.
func (uc *UserUseCase) List(actorRole, roleFilter string) ([]*dto.UserResponse, error) {
	if d := authz.Decide(actorRole, nil, authz.OpManageUsers); !d.Allowed() {
		return nil, domain.ErrForbidden
	}
	users, err := uc.repo.List(roleFilter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Add crea un usuario con el rol indicado. El rol asignable depende del actor:
// un admin solo crea sales-reps; nadie crea super-admins.
func (uc *UserUseCase) Add(actorRole string, in dto.AddUserRequest) (*dto.UserResponse, error) {
	if d := authz.Decide(actorRole, nil, authz.OpManageUsers); !d.Allowed() {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	if !authz.CanAssignRole(actorRole, in.Role) {
		return nil, domain.ErrForbidden
	}
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Tags:         tags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Update modifica nombre, email, rol, tags y opcionalmente la contraseña.
// La unicidad del email se re-verifica cuando cambia.
func (uc *UserUseCase) Update(actorRole, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if d := authz.Decide(actorRole, nil, authz.OpManageUsers); !d.Allowed() {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !authz.CanManageTarget(actorRole, user.Role) {
		return nil, domain.ErrForbidden
	}
	if in.Email != "" && in.Email != user.Email {
		other, err := uc.repo.GetByEmail(in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = in.Email
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Role != "" && in.Role != user.Role {
		if !entity.ValidRole(in.Role) {
			return nil, domain.ErrInvalidInput
		}
		if !authz.CanAssignRole(actorRole, in.Role) {
			return nil, domain.ErrForbidden
		}
		user.Role = in.Role
	}
	if in.Tags != nil {
		user.Tags = in.Tags
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete elimina un usuario. Los super-admin son ineliminables.
func (uc *UserUseCase) Delete(actorRole, id string) error {
	if d := authz.Decide(actorRole, nil, authz.OpManageUsers); !d.Allowed() {
		return domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !authz.CanManageTarget(actorRole, user.Role) {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

// Tags devuelve la lista plana de tags de todos los usuarios, sin duplicados.
func (uc *UserUseCase) Tags() (*dto.TagListResponse, error) {
	tags, err := uc.repo.AllTags()
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return &dto.TagListResponse{Tags: tags}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	tags := u.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Tags:      tags,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
