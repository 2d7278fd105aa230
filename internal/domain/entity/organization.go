package entity

import "time"

// Organization representa un tenant del sistema. Todos los registros de negocio
// llevan su OrganizationID como clave de partición lógica.
type Organization struct {
	ID        string
	Name      string
	RNC       string // RNC o cédula fiscal
	Email     string
	Phone     string
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
