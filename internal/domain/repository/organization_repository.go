package repository

import "github.com/jmarte/equimed-api/internal/domain/entity"

// OrganizationRepository puerto de persistencia para organizaciones (tenants).
type OrganizationRepository interface {
	Create(org *entity.Organization) error
	GetByID(id string) (*entity.Organization, error)
	List(limit, offset int) ([]*entity.Organization, error)
	Update(org *entity.Organization) error
}
