package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmarte/equimed-api/internal/application/inventory"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/testutil"
)

func newMovementUC(f *testutil.Fixture) *inventory.RegisterMovementUseCase {
	return inventory.NewRegisterMovementUseCase(f.Tx, inventory.NewStockLedger(), f.Movements)
}

func TestRegisterMovement_Entrada(t *testing.T) {
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductVenta, 2, 2)
	uc := newMovementUC(f)

	m, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		OrganizationID: testOrgID,
		UserID:         testUserID,
		ProductID:      "p1",
		Type:           entity.MovementEntrada,
		Quantity:       8,
		Reason:         "compra a proveedor",
	})
	require.NoError(t, err)

	assert.Equal(t, "compra a proveedor", m.Reason)
	assert.Equal(t, entity.RefAdjustment, m.ReferenceType)

	stock, _ := productState(t, f, "p1")
	assert.Equal(t, 10, stock)
}

func TestRegisterMovement_RechazaTiposTransaccionales(t *testing.T) {
	// venta/alquiler/devolucion solo nacen de sus propios casos de uso.
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductAmbos, 10, 10)
	uc := newMovementUC(f)

	for _, movType := range []entity.MovementType{
		entity.MovementVenta,
		entity.MovementAlquiler,
		entity.MovementDevolucion,
		entity.MovementCancelacionAlquiler,
	} {
		_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
			OrganizationID: testOrgID,
			UserID:         testUserID,
			ProductID:      "p1",
			Type:           movType,
			Quantity:       1,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidMovementType, "tipo %s", movType)
	}
}

func TestRegisterMovement_HistorialMasRecientePrimero(t *testing.T) {
	f := testutil.NewFixture()
	seedProduct(f, "p1", entity.ProductVenta, 0, 0)
	uc := newMovementUC(f)

	ctx := context.Background()
	for _, quantity := range []int{5, 3} {
		_, err := uc.RegisterMovement(ctx, inventory.MovementInput{
			OrganizationID: testOrgID,
			UserID:         testUserID,
			ProductID:      "p1",
			Type:           entity.MovementEntrada,
			Quantity:       quantity,
		})
		require.NoError(t, err)
	}

	list, err := uc.ListByProduct("p1", 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 3, list[0].Quantity, "el último movimiento debe venir primero")
	assert.Equal(t, 5, list[1].Quantity)
}
