package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrTagAlreadyClaimed  = errors.New("uno de los tags ya pertenece a otra regla de descuento")
	ErrResetTokenInvalid  = errors.New("token de reset inválido o expirado")
)

// UpstreamError falla reportada por la API de Shopify. Conserva el payload de error
// tal cual lo devolvió el upstream para pasarlo al cliente sin reinterpretarlo.
// UserErrors marca los "userErrors" de GraphQL: el transporte respondió 200 pero la
// mutación fue rechazada, y se mapea como error de la petición (400), no del servidor.
type UpstreamError struct {
	Message    string
	StatusCode int  // status HTTP del upstream (0 si no hubo respuesta)
	UserErrors bool // true si proviene de un array userErrors de GraphQL
	Payload    []byte
}

// Error implementa error.
func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream: %s (status %d)", e.Message, e.StatusCode)
	}
	return "upstream: " + e.Message
}

// NewUpstreamError construye un UpstreamError simple.
func NewUpstreamError(message string, status int) *UpstreamError {
	return &UpstreamError{Message: message, StatusCode: status}
}
