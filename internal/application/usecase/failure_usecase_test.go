package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmarte/equimed-api/internal/application/dto"
	"github.com/jmarte/equimed-api/internal/application/usecase"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/testutil"
)

const testReporterID = "user-1"

func newFailureUC() *usecase.FailureUseCase {
	return usecase.NewFailureUseCase(testutil.NewFakeFailureRepo())
}

func reportFailureRequest() dto.ReportFailureRequest {
	return dto.ReportFailureRequest{
		ErrorType:    "database",
		Severity:     string(entity.SeverityHigh),
		Module:       "sales",
		Endpoint:     "/api/sales",
		Method:       "POST",
		ErrorMessage: "timeout al insertar la venta",
	}
}

// ── Report ──────────────────────────────────────────────────────────────

func TestFailureReport_SeveridadVaciaCaeAMedium(t *testing.T) {
	uc := newFailureUC()

	in := reportFailureRequest()
	in.Severity = ""
	resp, err := uc.Report(testOrgID, testReporterID, in)
	require.NoError(t, err)

	assert.Equal(t, string(entity.SeverityMedium), resp.Severity)
	assert.Equal(t, testReporterID, resp.UserID)
	assert.False(t, resp.IsResolved)
}

func TestFailureReport_SeveridadInvalida(t *testing.T) {
	uc := newFailureUC()

	in := reportFailureRequest()
	in.Severity = "catastrofica"
	_, err := uc.Report(testOrgID, testReporterID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFailureReport_CamposRequeridos(t *testing.T) {
	uc := newFailureUC()

	in := reportFailureRequest()
	in.ErrorMessage = ""
	_, err := uc.Report(testOrgID, testReporterID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Resolve ─────────────────────────────────────────────────────────────

func TestFailureResolve_RegistraQuienYCuando(t *testing.T) {
	uc := newFailureUC()
	reported, err := uc.Report(testOrgID, testReporterID, reportFailureRequest())
	require.NoError(t, err)

	resolved, err := uc.Resolve(testOrgID, "user-2", reported.ID)
	require.NoError(t, err)

	assert.True(t, resolved.IsResolved)
	assert.Equal(t, "user-2", resolved.ResolvedBy)
	require.NotNil(t, resolved.ResolvedAt)
}

func TestFailureResolve_DosVecesFalla(t *testing.T) {
	uc := newFailureUC()
	reported, err := uc.Report(testOrgID, testReporterID, reportFailureRequest())
	require.NoError(t, err)

	_, err = uc.Resolve(testOrgID, "user-2", reported.ID)
	require.NoError(t, err)

	_, err = uc.Resolve(testOrgID, "user-3", reported.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestFailureResolve_OrganizacionAjena(t *testing.T) {
	uc := newFailureUC()
	reported, err := uc.Report(testOrgID, testReporterID, reportFailureRequest())
	require.NoError(t, err)

	_, err = uc.Resolve("org-2", "user-2", reported.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ── List ────────────────────────────────────────────────────────────────

func TestFailureList_FiltraPorSeveridadYNoResueltas(t *testing.T) {
	uc := newFailureUC()

	high, err := uc.Report(testOrgID, testReporterID, reportFailureRequest())
	require.NoError(t, err)

	low := reportFailureRequest()
	low.Severity = string(entity.SeverityLow)
	low.ErrorMessage = "validación de RNC"
	_, err = uc.Report(testOrgID, testReporterID, low)
	require.NoError(t, err)

	list, err := uc.List(testOrgID, string(entity.SeverityHigh), false, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, high.ID, list.Items[0].ID)

	_, err = uc.Resolve(testOrgID, "user-2", high.ID)
	require.NoError(t, err)

	pending, err := uc.List(testOrgID, "", true, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, pending.Items, 1)
	assert.Equal(t, "validación de RNC", pending.Items[0].ErrorMessage)
}

func TestFailureList_SeveridadInvalida(t *testing.T) {
	uc := newFailureUC()

	_, err := uc.List(testOrgID, "urgente", false, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
