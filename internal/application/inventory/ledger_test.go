package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmarte/equimed-api/internal/application/inventory"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/testutil"
)

const (
	testOrgID  = "org-1"
	testUserID = "user-1"
)

// seedProduct registra un producto con los contadores indicados.
func seedProduct(f *testutil.Fixture, id string, productType entity.ProductType, stock, available int) {
	f.Products.Seed(&entity.Product{
		ID:             id,
		OrganizationID: testOrgID,
		SKU:            "SKU-" + id,
		Name:           "Equipo " + id,
		Type:           productType,
		Stock:          stock,
		StockAvailable: available,
		IsActive:       true,
	})
}

func apply(t *testing.T, f *testutil.Fixture, in inventory.ApplyInput) (*entity.InventoryMovement, error) {
	t.Helper()
	ledger := inventory.NewStockLedger()
	if in.OrganizationID == "" {
		in.OrganizationID = testOrgID
	}
	if in.UserID == "" {
		in.UserID = testUserID
	}
	return ledger.Apply(f.Tx.Repos, in)
}

func productState(t *testing.T, f *testutil.Fixture, id string) (stock, available int) {
	t.Helper()
	p, err := f.Products.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock, p.StockAvailable
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos manuales: entrada, salida, ajuste
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_Entrada_IncrementaAmbosContadores(t *testing.T) {
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductAmbos, 10, 8)

	m, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementEntrada,
		Quantity:  5,
	})
	require.NoError(t, err)

	stock, available := productState(t, f, "p1")
	assert.Equal(t, 15, stock)
	assert.Equal(t, 13, available)
	assert.Equal(t, 10, m.PreviousStock, "la instantánea previa debe ser el stock antes del movimiento")
	assert.Equal(t, 15, m.NewStock)
}

func TestLedger_Salida_DescuentaAmbosContadores(t *testing.T) {
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductVenta, 10, 10)

	_, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementSalida,
		Quantity:  4,
	})
	require.NoError(t, err)

	stock, available := productState(t, f, "p1")
	assert.Equal(t, 6, stock)
	assert.Equal(t, 6, available)
}

func TestLedger_Salida_StockInsuficiente(t *testing.T) {
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductVenta, 3, 3)

	_, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementSalida,
		Quantity:  4,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stock, _ := productState(t, f, "p1")
	assert.Equal(t, 3, stock, "un movimiento rechazado no debe tocar los contadores")
	assert.Empty(t, f.Movements.Entries, "un movimiento rechazado no debe quedar en el libro")
}

func TestLedger_Salida_DisponibleInsuficiente(t *testing.T) {
	// 10 en stock pero 8 alquiladas: solo 2 disponibles para salir.
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductAmbos, 10, 2)

	_, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementSalida,
		Quantity:  5,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientAvailable)
}

func TestLedger_Ajuste_PreservaUnidadesAlquiladas(t *testing.T) {
	// 10 en stock, 8 disponibles: 2 unidades en préstamo.
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductAmbos, 10, 8)

	_, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementAjuste,
		Quantity:  5,
	})
	require.NoError(t, err)

	stock, available := productState(t, f, "p1")
	assert.Equal(t, 5, stock)
	assert.Equal(t, 3, available, "el ajuste debe descontar las 2 unidades en préstamo")
}

func TestLedger_Ajuste_NuncaDejaDisponibleNegativo(t *testing.T) {
	// 2 unidades en préstamo y ajuste a 1: disponible se pisa a 0.
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductAmbos, 10, 8)

	_, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementAjuste,
		Quantity:  1,
	})
	require.NoError(t, err)

	stock, available := productState(t, f, "p1")
	assert.Equal(t, 1, stock)
	assert.Equal(t, 0, available)
}

func TestLedger_Ajuste_ACeroEsValido(t *testing.T) {
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductVenta, 7, 7)

	_, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementAjuste,
		Quantity:  0,
	})
	require.NoError(t, err)

	stock, available := productState(t, f, "p1")
	assert.Equal(t, 0, stock)
	assert.Equal(t, 0, available)
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta y alquiler
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_Venta_ProductoSoloVenta_NoTocaDisponible(t *testing.T) {
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductVenta, 10, 10)

	_, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementVenta,
		Quantity:  3,
	})
	require.NoError(t, err)

	stock, available := productState(t, f, "p1")
	assert.Equal(t, 7, stock)
	assert.Equal(t, 10, available, "en productos solo-venta el disponible no participa")
}

func TestLedger_Venta_ProductoAmbos_SaleDelPoolAlquilable(t *testing.T) {
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductAmbos, 10, 8)

	_, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementVenta,
		Quantity:  3,
	})
	require.NoError(t, err)

	stock, available := productState(t, f, "p1")
	assert.Equal(t, 7, stock)
	assert.Equal(t, 5, available)
}

func TestLedger_Venta_ProductoSoloAlquiler_Rechazada(t *testing.T) {
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductAlquiler, 10, 10)

	_, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementVenta,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidProductType)
}

func TestLedger_Alquiler_DescuentaDisponible(t *testing.T) {
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductAlquiler, 10, 10)

	m, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementAlquiler,
		Quantity:  4,
	})
	require.NoError(t, err)

	stock, available := productState(t, f, "p1")
	assert.Equal(t, 10, stock, "en productos solo-alquiler el stock total no cambia")
	assert.Equal(t, 6, available)
	assert.Equal(t, 10, m.PreviousStock, "las instantáneas del alquiler siguen al disponible")
	assert.Equal(t, 6, m.NewStock)
}

func TestLedger_Alquiler_ProductoAmbos_DescuentaLosDos(t *testing.T) {
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductAmbos, 10, 8)

	_, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementAlquiler,
		Quantity:  2,
	})
	require.NoError(t, err)

	stock, available := productState(t, f, "p1")
	assert.Equal(t, 8, stock)
	assert.Equal(t, 6, available)
}

func TestLedger_Alquiler_DisponibleInsuficiente(t *testing.T) {
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductAlquiler, 10, 1)

	_, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementAlquiler,
		Quantity:  2,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientAvailable)
}

// ──────────────────────────────────────────────────────────────────────────────
// Devoluciones
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_Devolucion_InversoDeAlquiler(t *testing.T) {
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductAmbos, 8, 6)

	_, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementDevolucion,
		Quantity:  2,
		Reference: entity.MovementRef{Type: entity.RefRental, ID: "rental-1"},
	})
	require.NoError(t, err)

	stock, available := productState(t, f, "p1")
	assert.Equal(t, 10, stock)
	assert.Equal(t, 8, available)
}

func TestLedger_Devolucion_CancelacionDeVenta_InversoDeVenta(t *testing.T) {
	// Producto solo-venta: la devolución de una venta cancelada repone stock
	// sin tocar el disponible.
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductVenta, 7, 10)

	m, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementDevolucion,
		Quantity:  3,
		Reference: entity.MovementRef{Type: entity.RefSaleCancellation, ID: "sale-1"},
	})
	require.NoError(t, err)

	stock, available := productState(t, f, "p1")
	assert.Equal(t, 10, stock)
	assert.Equal(t, 10, available)
	assert.Equal(t, 7, m.PreviousStock)
	assert.Equal(t, 10, m.NewStock)
}

func TestLedger_CancelacionAlquiler_ReponeDisponible(t *testing.T) {
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductAlquiler, 10, 6)

	_, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementCancelacionAlquiler,
		Quantity:  4,
		Reference: entity.MovementRef{Type: entity.RefRental, ID: "rental-1"},
	})
	require.NoError(t, err)

	stock, available := productState(t, f, "p1")
	assert.Equal(t, 10, stock)
	assert.Equal(t, 10, available)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones y libro
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_TipoInvalido(t *testing.T) {
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductVenta, 10, 10)

	_, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementType("prestamo"),
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
}

func TestLedger_CantidadCero_SoloAjuste(t *testing.T) {
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductVenta, 10, 10)

	_, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementEntrada,
		Quantity:  0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_OrganizacionAjena_Denegada(t *testing.T) {
	f := testutil.NewFixture()
	f.Products.Seed(&entity.Product{
		ID:             "p1",
		OrganizationID: "otra-org",
		Type:           entity.ProductVenta,
		Stock:          10,
		StockAvailable: 10,
		IsActive:       true,
	})

	_, err := apply(t, f, inventory.ApplyInput{
		ProductID: "p1",
		Type:      entity.MovementEntrada,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLedger_ProductoInexistente(t *testing.T) {
	f := testutil.NewFixture()

	_, err := apply(t, f, inventory.ApplyInput{
		ProductID: "no-existe",
		Type:      entity.MovementEntrada,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_CadaMutacionDejaUnaEntradaEnElLibro(t *testing.T) {
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductAmbos, 10, 10)

	for _, in := range []inventory.ApplyInput{
		{ProductID: "p1", Type: entity.MovementEntrada, Quantity: 2},
		{ProductID: "p1", Type: entity.MovementAlquiler, Quantity: 1},
		{ProductID: "p1", Type: entity.MovementVenta, Quantity: 3},
	} {
		_, err := apply(t, f, in)
		require.NoError(t, err)
	}

	require.Len(t, f.Movements.Entries, 3)
	last := f.Movements.Last()
	assert.Equal(t, entity.MovementVenta, last.Type)
	assert.Equal(t, testUserID, last.UserID)
	assert.NotEmpty(t, last.ID)
}
