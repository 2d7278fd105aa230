package repository

import (
	"time"

	"github.com/jmarte/equimed-api/internal/domain/entity"
)

// QuotationRepository puerto de persistencia para cotizaciones.
type QuotationRepository interface {
	Create(quotation *entity.Quotation) error
	CreateItem(item *entity.QuotationItem) error
	// GetByID devuelve la cotización con sus items y las referencias
	// SaleID/RentalID cargadas.
	GetByID(id string) (*entity.Quotation, error)
	List(organizationID string, status entity.QuotationStatus, limit, offset int) ([]*entity.Quotation, error)
	Update(quotation *entity.Quotation) error
	// ReplaceItems elimina los items actuales y persiste los nuevos.
	ReplaceItems(quotationID string, items []*entity.QuotationItem) error
	Delete(id string) error
	// ExpirePending marca como vencidas las pendientes con valid_until en el
	// pasado. Devuelve cuántas actualizó; es idempotente.
	ExpirePending(organizationID string, now time.Time) (int, error)
}
