package repository

import "github.com/jmarte/equimed-api/internal/domain/entity"

// ClientRepository puerto de persistencia para clientes.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Client, error)
	Update(client *entity.Client) error
	Deactivate(id string) error
}
