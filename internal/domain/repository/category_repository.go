package repository

import "github.com/jmarte/equimed-api/internal/domain/entity"

// CategoryRepository puerto de persistencia de categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(organizationID, name string) (*entity.Category, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
}
