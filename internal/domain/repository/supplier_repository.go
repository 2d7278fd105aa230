package repository

import "github.com/jmarte/equimed-api/internal/domain/entity"

// SupplierRepository puerto de persistencia de proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByName(organizationID, name string) (*entity.Supplier, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Delete(id string) error
}
