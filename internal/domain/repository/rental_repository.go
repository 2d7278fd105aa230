package repository

import (
	"time"

	"github.com/jmarte/equimed-api/internal/domain/entity"
)

// RentalRepository puerto de persistencia para alquileres y sus pagos.
type RentalRepository interface {
	Create(rental *entity.Rental) error
	CreateItem(item *entity.RentalItem) error
	// GetByID devuelve el alquiler con sus items.
	GetByID(id string) (*entity.Rental, error)
	List(organizationID string, status entity.RentalStatus, limit, offset int) ([]*entity.Rental, error)
	Update(rental *entity.Rental) error
	CreatePayment(payment *entity.RentalPayment) error
	ListPayments(rentalID string) ([]*entity.RentalPayment, error)
	// MarkOverdue pasa a vencido los activos con end_date en el pasado.
	// Devuelve cuántos actualizó; es idempotente.
	MarkOverdue(organizationID string, now time.Time) (int, error)
}
