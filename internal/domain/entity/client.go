package entity

import "time"

// ClientType clasifica al cliente.
type ClientType string

const (
	ClientHospital   ClientType = "hospital"
	ClientMedico     ClientType = "medico"
	ClientEmpresa    ClientType = "empresa"
	ClientParticular ClientType = "particular"
)

// Client representa un cliente (hospital, médico, empresa o particular).
type Client struct {
	ID             string
	OrganizationID string
	Name           string
	Type           ClientType
	RNC            string
	Email          string
	Phone          string
	Address        string
	City           string
	ContactPerson  string
	Notes          string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
