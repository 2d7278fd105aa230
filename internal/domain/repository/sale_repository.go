package repository

import "github.com/jmarte/equimed-api/internal/domain/entity"

// SaleRepository puerto de persistencia para ventas y sus pagos.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	// GetByID devuelve la venta con sus items.
	GetByID(id string) (*entity.Sale, error)
	List(organizationID string, status entity.SaleStatus, limit, offset int) ([]*entity.Sale, error)
	Update(sale *entity.Sale) error
	CreatePayment(payment *entity.Payment) error
	ListPayments(saleID string) ([]*entity.Payment, error)
}
