package dto

import "time"

// AddUserRequest alta de usuario desde el panel de administración.
type AddUserRequest struct {
	Name     string   `json:"name" validate:"required,min=1,max=200"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Role     string   `json:"role" validate:"required,oneof=admin sales-rep"`
	Tags     []string `json:"tags"`
}

// UpdateUserRequest actualización de usuario. Password vacío = sin cambio.
type UpdateUserRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     string   `json:"role"`
	Tags     []string `json:"tags"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagListResponse lista plana de tags sin duplicados (fuente: todos los usuarios).
type TagListResponse struct {
	Tags []string `json:"tags"`
}
