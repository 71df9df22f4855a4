package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-admin-api/internal/application/dto"
	"github.com/jhoicas/shop-admin-api/internal/domain"
)

// respondError mapea los errores de dominio a códigos HTTP en un solo lugar.
// Los UpstreamError pasan el mensaje del upstream sin reinterpretarlo: 502 si
// el upstream falló, 400 si la mutación fue rechazada por userErrors.
func respondError(c *fiber.Ctx, err error) error {
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		if ue.UserErrors {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UPSTREAM_REJECTED", Message: ue.Message})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: ue.Message})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrResetTokenInvalid):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()})
	case errors.Is(err, domain.ErrTagAlreadyClaimed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TAG_CLAIMED", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// badBody respuesta estándar para cuerpos que no parsean.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
