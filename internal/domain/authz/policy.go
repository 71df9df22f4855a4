package authz

import (
	"strings"

	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
)

// Operaciones sobre las que decide la política. Las decisiones de listado
// pueden devolver un filtro por tags en lugar de un permiso plano.
type Operation string

const (
	OpListCustomers Operation = "customers.list"
	OpListOrders    Operation = "orders.list"
	OpCreateOrder   Operation = "orders.create"
	OpUpdateOrder   Operation = "orders.update"
	OpListDiscounts Operation = "discounts.list"
	OpSaveDiscount  Operation = "discounts.save"
	OpManageUsers   Operation = "users.manage"
	OpManageShop    Operation = "shop.manage"
)

type decisionKind int

const (
	kindAllow decisionKind = iota
	kindDeny
	kindFilter
)

// Decision resultado etiquetado de la política: Allow, Deny(razón) o
// FilterByTags(tags). Reemplaza los chequeos de rol dispersos en handlers.
type Decision struct {
	kind   decisionKind
	reason string
	tags   []string
}

// Allow permiso sin restricciones.
func Allow() Decision { return Decision{kind: kindAllow} }

// Deny rechazo con razón legible.
func Deny(reason string) Decision { return Decision{kind: kindDeny, reason: reason} }

// FilterByTags permiso de lectura restringido a registros cuyo conjunto de
// tags interseque los dados.
func FilterByTags(tags []string) Decision { return Decision{kind: kindFilter, tags: tags} }

// Allowed indica si la operación procede (con o sin filtro).
func (d Decision) Allowed() bool { return d.kind != kindDeny }

// Filtered indica si el resultado debe filtrarse por tags.
func (d Decision) Filtered() bool { return d.kind == kindFilter }

// Tags tags del filtro (solo con Filtered()==true).
func (d Decision) Tags() []string { return d.tags }

// Reason razón del rechazo (solo con Allowed()==false).
func (d Decision) Reason() string { return d.reason }

// Decide evalúa (rol, tags del usuario, operación) y devuelve la decisión.
// Función pura: no toca DB ni contexto.
func Decide(role string, userTags []string, op Operation) Decision {
	switch role {
	case entity.RoleSuperAdmin, entity.RoleAdmin:
		// Lectura sin restricciones sobre clientes y pedidos; gestión de
		// usuarios y tienda habilitada (los límites por rol objetivo los
		// aplica CanManageTarget / CanAssignRole).
		return Allow()

	case entity.RoleSalesRep:
		switch op {
		case OpListCustomers, OpListOrders:
			return FilterByTags(userTags)
		case OpCreateOrder, OpUpdateOrder, OpListDiscounts:
			// Escrituras sin puerta por tags en el alcance actual (pregunta
			// abierta registrada en DESIGN.md).
			return Allow()
		case OpSaveDiscount, OpManageUsers, OpManageShop:
			return Deny("operación reservada a administradores")
		}
		return Deny("operación no permitida para sales-rep")
	}
	return Deny("rol desconocido")
}

// CanAssignRole indica si un actor puede asignar el rol objetivo al crear o
// actualizar un usuario. Nadie asigna super-admin vía API.
func CanAssignRole(actorRole, targetRole string) bool {
	if targetRole == entity.RoleSuperAdmin {
		return false
	}
	switch actorRole {
	case entity.RoleSuperAdmin:
		return targetRole == entity.RoleAdmin || targetRole == entity.RoleSalesRep
	case entity.RoleAdmin:
		// admin solo gestiona sales-reps: ni super-admins ni otros admins.
		return targetRole == entity.RoleSalesRep
	}
	return false
}

// CanManageTarget indica si un actor puede modificar o eliminar un usuario
// existente con el rol dado. Los registros super-admin son intocables.
func CanManageTarget(actorRole, targetRole string) bool {
	if targetRole == entity.RoleSuperAdmin {
		return false
	}
	switch actorRole {
	case entity.RoleSuperAdmin:
		return true
	case entity.RoleAdmin:
		return targetRole == entity.RoleSalesRep
	}
	return false
}

// TagsIntersect compara dos conjuntos de tags sin distinguir mayúsculas.
// Un sales-rep sin tags no ve ningún registro.
func TagsIntersect(userTags, recordTags []string) bool {
	if len(userTags) == 0 || len(recordTags) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(userTags))
	for _, t := range userTags {
		set[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	for _, t := range recordTags {
		if _, ok := set[strings.ToLower(strings.TrimSpace(t))]; ok {
			return true
		}
	}
	return false
}
