package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmarte/equimed-api/internal/application/dto"
	"github.com/jmarte/equimed-api/internal/application/usecase"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/testutil"
)

func newSupplierUC() *usecase.SupplierUseCase {
	return usecase.NewSupplierUseCase(testutil.NewFakeSupplierRepo())
}

func createSupplierRequest() dto.CreateSupplierRequest {
	return dto.CreateSupplierRequest{
		Name:         "MedEquip Internacional",
		ContactName:  "Rosa Peña",
		Email:        "ventas@medequip.do",
		RNC:          "131-22334-5",
		PaymentTerms: "30 días",
	}
}

func TestSupplierCreate_NombreDuplicadoEnLaOrganizacion(t *testing.T) {
	uc := newSupplierUC()

	_, err := uc.Create(testOrgID, createSupplierRequest())
	require.NoError(t, err)

	_, err = uc.Create(testOrgID, createSupplierRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create("org-2", createSupplierRequest())
	assert.NoError(t, err, "el nombre es único por organización, no global")
}

func TestSupplierCreate_NombreVacio(t *testing.T) {
	uc := newSupplierUC()

	_, err := uc.Create(testOrgID, dto.CreateSupplierRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupplierUpdate_SoloCamposEnviados(t *testing.T) {
	uc := newSupplierUC()
	created, err := uc.Create(testOrgID, createSupplierRequest())
	require.NoError(t, err)

	terms := "45 días"
	updated, err := uc.Update(testOrgID, created.ID, dto.UpdateSupplierRequest{PaymentTerms: &terms})
	require.NoError(t, err)

	assert.Equal(t, "45 días", updated.PaymentTerms)
	assert.Equal(t, "Rosa Peña", updated.ContactName, "el contacto no enviado se conserva")
}

func TestSupplierGetByID_OrganizacionAjena(t *testing.T) {
	uc := newSupplierUC()
	created, err := uc.Create(testOrgID, createSupplierRequest())
	require.NoError(t, err)

	_, err = uc.GetByID("org-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSupplierDelete_Elimina(t *testing.T) {
	uc := newSupplierUC()
	created, err := uc.Create(testOrgID, createSupplierRequest())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(testOrgID, created.ID))

	_, err = uc.GetByID(testOrgID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
