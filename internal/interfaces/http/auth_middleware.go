package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/domain/repository"
	"github.com/jhoicas/shop-admin-api/pkg/jwt"
)

// Locals keys para la identidad del usuario autenticado en Fiber.
const (
	LocalUserID = "user_id"
	LocalName   = "name"
	LocalEmail  = "email"
	LocalRole   = "role"
	LocalTags   = "tags"
)

// AuthMiddleware valida el Bearer Token JWT y carga la identidad en c.Locals.
// Tras verificar el token se relee el usuario en la DB: es la única puerta de
// identidad, así que un usuario eliminado deja de entrar aunque su token siga
// vigente. Rol y tags salen de la fila releída, no del token.
func AuthMiddleware(jwtSecret string, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if claims.Purpose != jwt.PurposeSession {
			// Un token de reset de contraseña no abre sesión.
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "el token no es de sesión"})
		}
		user, err := users.GetByID(claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		if user == nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario del token ya no existe"})
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalName, user.Name)
		c.Locals(LocalEmail, user.Email)
		c.Locals(LocalRole, user.Role)
		c.Locals(LocalTags, user.Tags)
		return c.Next()
	}
}

// RequireRole corta con 403 si el rol autenticado no está en la lista.
// Se usa después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetTags devuelve los tags del contexto.
func GetTags(c *fiber.Ctx) []string {
	tags, _ := c.Locals(LocalTags).([]string)
	return tags
}
