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

func newCategoryUC() *usecase.CategoryUseCase {
	return usecase.NewCategoryUseCase(testutil.NewFakeCategoryRepo())
}

// ── Create ──────────────────────────────────────────────────────────────

func TestCategoryCreate_NombreDuplicadoEnLaOrganizacion(t *testing.T) {
	uc := newCategoryUC()

	_, err := uc.Create(testOrgID, dto.CreateCategoryRequest{Name: "Monitoreo"})
	require.NoError(t, err)

	_, err = uc.Create(testOrgID, dto.CreateCategoryRequest{Name: "Monitoreo"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El nombre es único por organización, no global.
	_, err = uc.Create("org-2", dto.CreateCategoryRequest{Name: "Monitoreo"})
	assert.NoError(t, err)
}

func TestCategoryCreate_NombreVacio(t *testing.T) {
	uc := newCategoryUC()

	_, err := uc.Create(testOrgID, dto.CreateCategoryRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryCreate_ConPadre(t *testing.T) {
	uc := newCategoryUC()

	parent, err := uc.Create(testOrgID, dto.CreateCategoryRequest{Name: "Respiratorio"})
	require.NoError(t, err)

	child, err := uc.Create(testOrgID, dto.CreateCategoryRequest{
		Name:     "Concentradores",
		ParentID: &parent.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)
}

// ── Update / Delete ─────────────────────────────────────────────────────

func TestCategoryUpdate_SoloCamposEnviados(t *testing.T) {
	uc := newCategoryUC()
	created, err := uc.Create(testOrgID, dto.CreateCategoryRequest{
		Name:        "Camas",
		Description: "Camas hospitalarias",
	})
	require.NoError(t, err)

	name := "Camas y colchones"
	updated, err := uc.Update(testOrgID, created.ID, dto.UpdateCategoryRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Camas y colchones", updated.Name)
	assert.Equal(t, "Camas hospitalarias", updated.Description, "la descripción no enviada se conserva")
}

func TestCategoryDelete_OrganizacionAjena(t *testing.T) {
	uc := newCategoryUC()
	created, err := uc.Create(testOrgID, dto.CreateCategoryRequest{Name: "Monitoreo"})
	require.NoError(t, err)

	err = uc.Delete("org-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.Delete(testOrgID, created.ID)
	require.NoError(t, err)

	_, err = uc.GetByID(testOrgID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryList_SoloDeLaOrganizacion(t *testing.T) {
	uc := newCategoryUC()
	_, err := uc.Create(testOrgID, dto.CreateCategoryRequest{Name: "Monitoreo"})
	require.NoError(t, err)
	_, err = uc.Create("org-2", dto.CreateCategoryRequest{Name: "Cirugía"})
	require.NoError(t, err)

	list, err := uc.List(testOrgID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Monitoreo", list.Items[0].Name)
}
