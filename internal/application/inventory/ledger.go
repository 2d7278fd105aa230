package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmarte/equimed-api/internal/application/ports"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
)

// StockLedger es el único componente autorizado para mutar Stock y
// StockAvailable de un producto. Cada mutación bloquea la fila del producto,
// actualiza los contadores y escribe exactamente una entrada inmutable en el
// libro de inventario con instantáneas antes/después — todo dentro de la
// transacción del caller, para que una operación multi-item que falle a mitad
// no deje filas parciales.
type StockLedger struct{}

// NewStockLedger construye el libro de stock.
func NewStockLedger() *StockLedger {
	return &StockLedger{}
}

// ApplyInput parámetros de una mutación de stock.
// Para ajuste, Quantity es el nuevo stock total absoluto; para el resto, la
// cantidad de unidades del movimiento (siempre > 0).
type ApplyInput struct {
	OrganizationID string
	UserID         string
	ProductID      string
	Type           entity.MovementType
	Quantity       int
	Reason         string
	Reference      entity.MovementRef
	Now            time.Time
}

// Apply ejecuta la mutación sobre los repositorios de la transacción en curso
// y devuelve el movimiento registrado.
//
// Semántica por tipo (q = Quantity, producto tipo venta|alquiler|ambos):
//   - entrada: stock += q; stock_available += q.
//   - salida: stock -= q y stock_available -= q; falla si alguno queda negativo.
//   - ajuste: stock = q preservando las unidades alquiladas
//     (rented = stock − stock_available previos; nuevo available = max(0, q − rented)).
//   - venta: stock -= q; si el producto es "ambos", también stock_available -= q
//     (una unidad vendida sale definitivamente del pool alquilable).
//   - alquiler: stock_available -= q; si es "ambos", también stock -= q.
//   - devolucion / cancelacion_alquiler: inverso de alquiler — salvo cuando la
//     referencia es una cancelación de venta, en cuyo caso es el inverso de venta.
func (l *StockLedger) Apply(r *ports.TxRepos, in ApplyInput) (*entity.InventoryMovement, error) {
	if !in.Type.Valid() {
		return nil, domain.ErrInvalidMovementType
	}
	if in.Quantity < 0 || (in.Quantity == 0 && in.Type != entity.MovementAjuste) {
		return nil, domain.ErrInvalidInput
	}

	// Bloquea la fila del producto para serializar comandos concurrentes.
	product, err := r.Products.GetForUpdate(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.OrganizationID != in.OrganizationID {
		return nil, domain.ErrForbidden
	}

	prevStock := product.Stock
	prevAvailable := product.StockAvailable
	q := in.Quantity

	// previous/new del movimiento siguen al contador que el tipo muta
	// principalmente: stock o stock_available.
	previous, current := prevStock, prevStock

	switch in.Type {
	case entity.MovementEntrada:
		product.Stock = prevStock + q
		product.StockAvailable = prevAvailable + q
		current = product.Stock

	case entity.MovementSalida:
		if prevStock-q < 0 {
			return nil, domain.ErrInsufficientStock
		}
		if prevAvailable-q < 0 {
			return nil, domain.ErrInsufficientAvailable
		}
		product.Stock = prevStock - q
		product.StockAvailable = prevAvailable - q
		current = product.Stock

	case entity.MovementAjuste:
		rented := product.Rented()
		product.Stock = q
		if avail := q - rented; avail > 0 {
			product.StockAvailable = avail
		} else {
			product.StockAvailable = 0
		}
		current = product.Stock

	case entity.MovementVenta:
		if !product.Type.Sellable() {
			return nil, domain.ErrInvalidProductType
		}
		if q > prevStock {
			return nil, domain.ErrInsufficientStock
		}
		product.Stock = prevStock - q
		if product.Type == entity.ProductAmbos {
			product.StockAvailable = prevAvailable - q
		}
		current = product.Stock

	case entity.MovementAlquiler:
		if !product.Type.Rentable() {
			return nil, domain.ErrInvalidProductType
		}
		if q > prevAvailable {
			return nil, domain.ErrInsufficientAvailable
		}
		product.StockAvailable = prevAvailable - q
		if product.Type == entity.ProductAmbos {
			product.Stock = prevStock - q
		}
		previous, current = prevAvailable, product.StockAvailable

	case entity.MovementDevolucion, entity.MovementCancelacionAlquiler:
		if in.Reference.Type == entity.RefSaleCancellation {
			// Devolución de una venta cancelada: inverso de venta.
			product.Stock = prevStock + q
			if product.Type == entity.ProductAmbos {
				product.StockAvailable = prevAvailable + q
			}
			previous, current = prevStock, product.Stock
		} else {
			product.StockAvailable = prevAvailable + q
			if product.Type == entity.ProductAmbos {
				product.Stock = prevStock + q
			}
			previous, current = prevAvailable, product.StockAvailable
		}
	}

	if err := r.Products.UpdateStock(product.ID, product.Stock, product.StockAvailable); err != nil {
		return nil, fmt.Errorf("actualizar stock %s: %w", product.ID, err)
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	movement := &entity.InventoryMovement{
		ID:             uuid.New().String(),
		OrganizationID: in.OrganizationID,
		ProductID:      product.ID,
		UserID:         in.UserID,
		Type:           in.Type,
		Quantity:       q,
		PreviousStock:  previous,
		NewStock:       current,
		ReferenceType:  in.Reference.Type,
		ReferenceID:    in.Reference.ID,
		Reason:         in.Reason,
		CreatedAt:      now,
	}
	if err := r.Movements.Create(movement); err != nil {
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}
	return movement, nil
}
