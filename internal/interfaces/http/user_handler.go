package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/application/usecase"
)

// UserHandler gestión de cuentas del staff.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios, opcionalmente por rol
// @Tags         users
// @Produce      json
// @Param        role  query  string  false  "admin | sales-rep"
// @Success      200  {array}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetRole(c), c.Query("role"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Crear usuario (un admin solo crea sales-reps)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddUserRequest  true  "name, email, password, role, tags"
// @Success      201  {object}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/add [post]
func (h *UserHandler) Add(c *fiber.Ctx) error {
	var in dto.AddUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Add(GetRole(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "id del usuario"
// @Param        body  body  dto.UpdateUserRequest true  "campos a cambiar"
// @Success      200  {object}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/update/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(GetRole(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario (super-admin ineliminable)
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "id del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/delete/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetRole(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "usuario eliminado"})
}

// Tags godoc
// @Summary      Lista plana de tags de todos los usuarios, sin duplicados
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.TagListResponse
// @Router       /api/tags [get]
func (h *UserHandler) Tags(c *fiber.Ctx) error {
	out, err := h.uc.Tags()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
