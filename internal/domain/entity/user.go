package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperAdmin = "super-admin"
	RoleAdmin      = "admin"
	RoleSalesRep   = "sales-rep"
)

// ValidRole indica si el string corresponde a un rol conocido.
func ValidRole(role string) bool {
	return role == RoleSuperAdmin || role == RoleAdmin || role == RoleSalesRep
}

// User representa un miembro del staff del dashboard.
// Tags determina qué clientes y pedidos de Shopify puede ver un sales-rep:
// la visibilidad es la intersección (case-insensitive) entre sus tags y los
// del registro remoto.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // super-admin, admin, sales-rep
	Tags         []string
	ResetToken   string     // token de reset vigente; vacío si no hay reset en curso
	ResetExpires *time.Time // expiración del token de reset
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
