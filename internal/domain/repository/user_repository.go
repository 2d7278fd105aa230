package repository

import "github.com/jmarte/equimed-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.User, error)
	Update(user *entity.User) error
}
