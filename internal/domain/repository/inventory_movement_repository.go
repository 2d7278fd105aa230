package repository

import "github.com/jmarte/equimed-api/internal/domain/entity"

// InventoryMovementRepository puerto de persistencia del libro de inventario.
// Solo inserta y lista: los movimientos nunca se actualizan ni borran.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.InventoryMovement, error)
}
