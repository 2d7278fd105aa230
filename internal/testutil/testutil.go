// Package testutil provee repositorios en memoria y un TxRunner sin
// transacciones reales para los tests de los casos de uso.
package testutil

import (
	"context"

	"github.com/jmarte/equimed-api/internal/application/ports"
)

// Fixture agrupa todos los fakes cableados como un ports.TxRepos compartido.
type Fixture struct {
	Products   *FakeProductRepo
	Movements  *FakeMovementRepo
	Quotations *FakeQuotationRepo
	Sales      *FakeSaleRepo
	Rentals    *FakeRentalRepo
	Counters   *FakeCounterRepo
	Clients    *FakeClientRepo
	Tx         *FakeTxRunner
}

// NewFixture construye el conjunto completo de fakes.
func NewFixture() *Fixture {
	f := &Fixture{
		Products:   NewFakeProductRepo(),
		Movements:  NewFakeMovementRepo(),
		Quotations: NewFakeQuotationRepo(),
		Sales:      NewFakeSaleRepo(),
		Rentals:    NewFakeRentalRepo(),
		Counters:   NewFakeCounterRepo(),
		Clients:    NewFakeClientRepo(),
	}
	f.Tx = &FakeTxRunner{Repos: &ports.TxRepos{
		Products:   f.Products,
		Movements:  f.Movements,
		Quotations: f.Quotations,
		Sales:      f.Sales,
		Rentals:    f.Rentals,
		Counters:   f.Counters,
	}}
	return f
}

// FakeTxRunner ejecuta la función directamente sobre los fakes, sin
// transacción. No hay rollback: un test que espere fallo a mitad de camino
// debe verificar el estado explícitamente.
type FakeTxRunner struct {
	Repos *ports.TxRepos
}

// Run invoca fn con los repositorios del fixture.
func (t *FakeTxRunner) Run(_ context.Context, fn func(r *ports.TxRepos) error) error {
	return fn(t.Repos)
}
