package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmarte/equimed-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con los
// repositorios de negocio atados a esa tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el bundle de repos atados a la tx
// y hace Commit si fn retorna nil, Rollback si falla.
func (r *TxRunner) Run(ctx context.Context, fn func(repos *ports.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := &ports.TxRepos{
		Products:   NewProductRepository(tx),
		Movements:  NewInventoryMovementRepository(tx),
		Quotations: NewQuotationRepository(tx),
		Sales:      NewSaleRepository(tx),
		Rentals:    NewRentalRepository(tx),
		Counters:   NewDocumentCounterRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
