package repository

import "github.com/jmarte/equimed-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos.
//
// Los contadores Stock/StockAvailable solo se escriben vía UpdateStock, y toda
// lectura previa a una mutación debe hacerse con GetForUpdate para serializar
// comandos concurrentes sobre el mismo producto.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE) dentro
	// de la transacción en curso.
	GetForUpdate(id string) (*entity.Product, error)
	GetBySKU(organizationID, sku string) (*entity.Product, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Product, error)
	ListLowStock(organizationID string) ([]*entity.Product, error)
	// Update persiste los campos editables; nunca toca los contadores de stock.
	Update(product *entity.Product) error
	UpdateStock(id string, stock, stockAvailable int) error
	// HasReferences reporta si el producto aparece en ventas, alquileres,
	// cotizaciones o movimientos (y por tanto solo puede desactivarse).
	HasReferences(id string) (bool, error)
	Deactivate(id string) error
	Delete(id string) error
}
