package entity

import "time"

// Supplier proveedor de equipos de una organización.
type Supplier struct {
	ID             string
	OrganizationID string
	Name           string
	ContactName    string
	Email          string
	Phone          string
	Address        string
	RNC            string
	PaymentTerms   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
