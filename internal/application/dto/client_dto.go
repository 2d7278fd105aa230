package dto

import "time"

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Type          string `json:"type" validate:"required"`
	RNC           string `json:"rnc"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	ContactPerson string `json:"contact_person"`
	Notes         string `json:"notes"`
}

// UpdateClientRequest entrada para actualizar un cliente.
type UpdateClientRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	Type          *string `json:"type"`
	RNC           *string `json:"rnc"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	ContactPerson *string `json:"contact_person"`
	Notes         *string `json:"notes"`
	IsActive      *bool   `json:"is_active"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	RNC            string    `json:"rnc"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	ContactPerson  string    `json:"contact_person"`
	Notes          string    `json:"notes"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
