package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmarte/equimed-api/internal/application/dto"
	"github.com/jmarte/equimed-api/internal/application/usecase"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/testutil"
)

const testOrgID = "org-1"

func newProductUC() (*usecase.ProductUseCase, *testutil.FakeProductRepo) {
	repo := testutil.NewFakeProductRepo()
	return usecase.NewProductUseCase(repo), repo
}

func createProductRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:          "MON-VS-01",
		Name:         "Monitor de signos vitales",
		Type:         string(entity.ProductVenta),
		Price:        decimal.NewFromInt(1200),
		InitialStock: 6,
		MinStock:     2,
	}
}

func TestProductCreate_SiembraAmbosContadores(t *testing.T) {
	uc, _ := newProductUC()

	resp, err := uc.Create(testOrgID, createProductRequest())
	require.NoError(t, err)

	assert.Equal(t, 6, resp.Stock)
	assert.Equal(t, 6, resp.StockAvailable, "sin alquileres, disponible arranca igual al físico")
	assert.True(t, resp.IsActive)
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	uc, _ := newProductUC()

	_, err := uc.Create(testOrgID, createProductRequest())
	require.NoError(t, err)

	_, err = uc.Create(testOrgID, createProductRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_MismoSKUEnOtraOrganizacion(t *testing.T) {
	uc, _ := newProductUC()

	_, err := uc.Create(testOrgID, createProductRequest())
	require.NoError(t, err)

	// El SKU es único por organización, no global.
	_, err = uc.Create("org-2", createProductRequest())
	assert.NoError(t, err)
}

func TestProductCreate_TipoInvalido(t *testing.T) {
	uc, _ := newProductUC()

	in := createProductRequest()
	in.Type = "consignacion"
	_, err := uc.Create(testOrgID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidProductType)
}

func TestProductUpdate_NoTocaElStock(t *testing.T) {
	uc, _ := newProductUC()
	created, err := uc.Create(testOrgID, createProductRequest())
	require.NoError(t, err)

	name := "Monitor multiparámetro"
	updated, err := uc.Update(testOrgID, created.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Monitor multiparámetro", updated.Name)
	got, err := uc.GetByID(testOrgID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Stock, "editar el catálogo no mueve inventario")
	assert.Equal(t, 6, got.StockAvailable)
}

func TestProductDelete_SinHistorialBorraFisico(t *testing.T) {
	uc, _ := newProductUC()
	created, err := uc.Create(testOrgID, createProductRequest())
	require.NoError(t, err)

	deleted, err := uc.Delete(testOrgID, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = uc.GetByID(testOrgID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductDelete_ConHistorialSoloDesactiva(t *testing.T) {
	uc, repo := newProductUC()
	created, err := uc.Create(testOrgID, createProductRequest())
	require.NoError(t, err)
	repo.SetReferenced(created.ID)

	deleted, err := uc.Delete(testOrgID, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "un producto referenciado se desactiva, no se borra")

	got, err := uc.GetByID(testOrgID, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestProductDelete_OrganizacionAjena(t *testing.T) {
	uc, _ := newProductUC()
	created, err := uc.Create(testOrgID, createProductRequest())
	require.NoError(t, err)

	_, err = uc.Delete("org-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProductListLowStock(t *testing.T) {
	uc, repo := newProductUC()

	repo.Seed(&entity.Product{
		ID: "bajo", OrganizationID: testOrgID, SKU: "A", Name: "Tensiómetro",
		Type: entity.ProductVenta, Stock: 1, StockAvailable: 1, MinStock: 3, IsActive: true,
	})
	repo.Seed(&entity.Product{
		ID: "sano", OrganizationID: testOrgID, SKU: "B", Name: "Nebulizador",
		Type: entity.ProductVenta, Stock: 9, StockAvailable: 9, MinStock: 3, IsActive: true,
	})
	repo.Seed(&entity.Product{
		ID: "inactivo", OrganizationID: testOrgID, SKU: "C", Name: "Descontinuado",
		Type: entity.ProductVenta, Stock: 0, StockAvailable: 0, MinStock: 3, IsActive: false,
	})

	list, err := uc.ListLowStock(testOrgID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bajo", list[0].ID)
}
