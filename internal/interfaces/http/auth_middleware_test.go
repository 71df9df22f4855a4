package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
	apphttp "github.com/jhoicas/shop-admin-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/shop-admin-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "shop-admin-test"
	testExpMin    = 60
)

// fakeUserRepo repositorio mínimo para el middleware: solo GetByID importa.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error                { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error)    { return r.users[id], nil }
func (r *fakeUserRepo) GetByEmail(string) (*entity.User, error)    { return nil, nil }
func (r *fakeUserRepo) Update(u *entity.User) error                { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) Delete(id string) error                     { delete(r.users, id); return nil }
func (r *fakeUserRepo) List(string) ([]*entity.User, error)        { return nil, nil }
func (r *fakeUserRepo) AllTags() ([]string, error)                 { return nil, nil }

func repoWithUser(role string, tags ...string) *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{
		testUserID: {ID: testUserID, Name: "Usuario Test", Email: "test@tienda.co", Role: role, Tags: tags},
	}}
}

// buildTestApp aplicación Fiber mínima: AuthMiddleware + RequireRole + handler
// dummy que refleja la identidad cargada en locals.
func buildTestApp(repo *fakeUserRepo, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{apphttp.AuthMiddleware(testJWTSecret, repo)}
	if len(allowedRoles) > 0 {
		handlers = append(handlers, apphttp.RequireRole(allowedRoles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
			"tags":    apphttp.GetTags(c),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

func sessionToken(t *testing.T, role string, tags ...string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, pkgjwt.Identity{
		UserID: testUserID,
		Name:   "Usuario Test",
		Email:  "test@tienda.co",
		Role:   role,
		Tags:   tags,
	}, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRole_AdminAccede(t *testing.T) {
	app := buildTestApp(repoWithUser(entity.RoleAdmin), entity.RoleSuperAdmin, entity.RoleAdmin)
	resp := doRequest(t, app, sessionToken(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_SalesRepBloqueado(t *testing.T) {
	app := buildTestApp(repoWithUser(entity.RoleSalesRep), entity.RoleSuperAdmin, entity.RoleAdmin)
	resp := doRequest(t, app, sessionToken(t, entity.RoleSalesRep))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp(repoWithUser(entity.RoleAdmin))
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := buildTestApp(repoWithUser(entity.RoleAdmin))
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Un token de reset de contraseña no abre sesión aunque la firma sea válida.
func TestAuthMiddleware_TokenDeResetRechazado(t *testing.T) {
	app := buildTestApp(repoWithUser(entity.RoleAdmin))
	tok, err := pkgjwt.GenerateReset(testJWTSecret, testIssuer, testUserID, "test@tienda.co", 15)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Usuario eliminado después de emitir el token: el middleware relee la DB y corta.
func TestAuthMiddleware_UsuarioEliminado(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*entity.User{}}
	app := buildTestApp(repo)
	resp := doRequest(t, app, sessionToken(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// El rol y los tags efectivos salen de la fila releída, no del token: un token
// emitido antes de un cambio de rol no conserva los privilegios viejos.
func TestAuthMiddleware_IdentidadDesdeLaDB(t *testing.T) {
	repo := repoWithUser(entity.RoleSalesRep, "vip", "wholesale")
	app := buildTestApp(repo)

	resp := doRequest(t, app, sessionToken(t, entity.RoleAdmin, "retail"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		UserID string   `json:"user_id"`
		Role   string   `json:"role"`
		Tags   []string `json:"tags"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body.UserID)
	assert.Equal(t, entity.RoleSalesRep, body.Role, "manda la fila de la DB, no el claim")
	assert.Equal(t, []string{"vip", "wholesale"}, body.Tags)
}
