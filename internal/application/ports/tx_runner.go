package ports

import (
	"context"

	"github.com/jmarte/equimed-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// Todo comando transaccional (venta, alquiler, conversión, pago, ajuste de
// stock) trabaja contra este conjunto para que sus escrituras sean atómicas.
type TxRepos struct {
	Products   repository.ProductRepository
	Movements  repository.InventoryMovementRepository
	Quotations repository.QuotationRepository
	Sales      repository.SaleRepository
	Rentals    repository.RentalRepository
	Counters   repository.DocumentCounterRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Commit si fn retorna nil; Rollback si falla.
// Garantiza que una operación multi-item no deje filas parciales en el libro.
type TxRunner interface {
	Run(ctx context.Context, fn func(r *TxRepos) error) error
}
