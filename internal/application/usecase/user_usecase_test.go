package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/application/usecase"
	"github.com/jhoicas/shop-admin-api/internal/domain"
	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
)

// fakeUserRepo repositorio de usuarios en memoria.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) AllTags() ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, u := range r.users {
		for _, t := range u.Tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func addReq(role string, tags ...string) dto.AddUserRequest {
	return dto.AddUserRequest{
		Name:     "Carlos Pérez",
		Email:    "carlos@tienda.co",
		Password: "secreto123",
		Role:     role,
		Tags:     tags,
	}
}

func TestAdd_AdminCreaSalesRep(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Add(entity.RoleAdmin, addReq(entity.RoleSalesRep, "vip"))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSalesRep, out.Role)
	assert.Equal(t, []string{"vip"}, out.Tags)
	assert.Len(t, repo.users, 1)
}

// Nadie puede crear super-admins desde el panel, ni siquiera otro super-admin.
func TestAdd_NadieCreaSuperAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Add(entity.RoleAdmin, addReq(entity.RoleSuperAdmin))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Add(entity.RoleSuperAdmin, addReq(entity.RoleSuperAdmin))
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, repo.users)
}

func TestAdd_AdminNoCreaAdmins(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	_, err := uc.Add(entity.RoleAdmin, addReq(entity.RoleAdmin))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdd_SuperAdminCreaAdmin(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	out, err := uc.Add(entity.RoleSuperAdmin, addReq(entity.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)
}

func TestAdd_SalesRepSinAcceso(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	_, err := uc.Add(entity.RoleSalesRep, addReq(entity.RoleSalesRep))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdd_EmailDuplicado(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	_, err := uc.Add(entity.RoleAdmin, addReq(entity.RoleSalesRep))
	require.NoError(t, err)

	_, err = uc.Add(entity.RoleAdmin, addReq(entity.RoleSalesRep))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUpdate_SuperAdminIntocable(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["root"] = &entity.User{ID: "root", Name: "Root", Email: "root@tienda.co", Role: entity.RoleSuperAdmin}
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Update(entity.RoleAdmin, "root", dto.UpdateUserRequest{Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.Delete(entity.RoleSuperAdmin, "root")
	assert.ErrorIs(t, err, domain.ErrForbidden, "el super-admin tampoco se elimina a sí mismo por esta vía")
	assert.Contains(t, repo.users, "root")
}

func TestUpdate_EmailEnUso(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	a, err := uc.Add(entity.RoleAdmin, addReq(entity.RoleSalesRep))
	require.NoError(t, err)
	req := addReq(entity.RoleSalesRep)
	req.Email = "ana@tienda.co"
	_, err = uc.Add(entity.RoleAdmin, req)
	require.NoError(t, err)

	_, err = uc.Update(entity.RoleAdmin, a.ID, dto.UpdateUserRequest{Email: "ana@tienda.co"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUpdate_ReemplazaTags(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	created, err := uc.Add(entity.RoleAdmin, addReq(entity.RoleSalesRep, "vip", "retail"))
	require.NoError(t, err)

	out, err := uc.Update(entity.RoleAdmin, created.ID, dto.UpdateUserRequest{Tags: []string{"wholesale"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"wholesale"}, out.Tags)

	// Tags nil deja los existentes tal cual.
	out, err = uc.Update(entity.RoleAdmin, created.ID, dto.UpdateUserRequest{Name: "Carlos P."})
	require.NoError(t, err)
	assert.Equal(t, []string{"wholesale"}, out.Tags)
}

func TestDelete_Inexistente(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	err := uc.Delete(entity.RoleAdmin, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestList_FiltraPorRol(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Add(entity.RoleSuperAdmin, addReq(entity.RoleAdmin))
	require.NoError(t, err)
	req := addReq(entity.RoleSalesRep)
	req.Email = "rep@tienda.co"
	_, err = uc.Add(entity.RoleAdmin, req)
	require.NoError(t, err)

	all, err := uc.List(entity.RoleAdmin, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	reps, err := uc.List(entity.RoleAdmin, entity.RoleSalesRep)
	require.NoError(t, err)
	require.Len(t, reps, 1)
	assert.Equal(t, entity.RoleSalesRep, reps[0].Role)

	_, err = uc.List(entity.RoleSalesRep, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTags_SinDuplicados(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["a"] = &entity.User{ID: "a", Role: entity.RoleSalesRep, Tags: []string{"vip", "retail"}}
	repo.users["b"] = &entity.User{ID: "b", Role: entity.RoleSalesRep, Tags: []string{"vip", "wholesale"}}
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Tags()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"vip", "retail", "wholesale"}, out.Tags)
}
