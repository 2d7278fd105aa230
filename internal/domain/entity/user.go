package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
	RoleAlmacen  = "almacen"
	RoleEmpleado = "empleado"
)

// User representa un usuario del sistema, siempre asociado a una organización.
type User struct {
	ID             string
	OrganizationID string
	Email          string
	Username       string
	FullName       string
	PasswordHash   string
	Role           string
	IsActive       bool
	LastLogin      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
