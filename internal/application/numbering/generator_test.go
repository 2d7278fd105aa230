package numbering_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmarte/equimed-api/internal/application/numbering"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/testutil"
)

const testOrgID = "org-1"

var testDay = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func TestGenerator_FormatoDelNumero(t *testing.T) {
	counters := testutil.NewFakeCounterRepo()
	gen := numbering.NewGenerator()

	number, err := gen.Next(counters, testOrgID, entity.DocQuotation, testDay)
	require.NoError(t, err)
	assert.Equal(t, "COT-20260315-01", number)
}

func TestGenerator_PrefijosPorTipoDeDocumento(t *testing.T) {
	counters := testutil.NewFakeCounterRepo()
	gen := numbering.NewGenerator()

	for kind, prefix := range map[entity.DocumentKind]string{
		entity.DocQuotation: "COT",
		entity.DocSale:      "VEN",
		entity.DocInvoice:   "FAC",
		entity.DocRental:    "ALQ",
	} {
		number, err := gen.Next(counters, testOrgID, kind, testDay)
		require.NoError(t, err)
		assert.Equal(t, prefix+"-20260315-01", number)
	}
}

func TestGenerator_ConsecutivoNoSeReiniciaPorDia(t *testing.T) {
	counters := testutil.NewFakeCounterRepo()
	gen := numbering.NewGenerator()

	first, err := gen.Next(counters, testOrgID, entity.DocSale, testDay)
	require.NoError(t, err)
	assert.Equal(t, "VEN-20260315-01", first)

	// Al día siguiente cambia la fecha del prefijo pero el consecutivo sigue.
	second, err := gen.Next(counters, testOrgID, entity.DocSale, testDay.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "VEN-20260316-02", second)
}

func TestGenerator_ConsecutivosIndependientesPorOrganizacion(t *testing.T) {
	counters := testutil.NewFakeCounterRepo()
	gen := numbering.NewGenerator()

	a, err := gen.Next(counters, "org-a", entity.DocSale, testDay)
	require.NoError(t, err)
	b, err := gen.Next(counters, "org-b", entity.DocSale, testDay)
	require.NoError(t, err)

	assert.Equal(t, "VEN-20260315-01", a)
	assert.Equal(t, "VEN-20260315-01", b, "cada organización lleva su propio consecutivo")
}

func TestGenerator_SiembraDesdeElHistorico(t *testing.T) {
	// Documentos emitidos antes de existir el contador: el contador arranca
	// desde el máximo consecutivo histórico.
	counters := testutil.NewFakeCounterRepo()
	counters.Issue(testOrgID, entity.DocSale, "VEN-20250101-03")
	counters.Issue(testOrgID, entity.DocSale, "VEN-20250610-07")
	counters.Issue(testOrgID, entity.DocSale, "VEN-LEGACY-ABC") // sufijo no numérico: se ignora

	gen := numbering.NewGenerator()
	number, err := gen.Next(counters, testOrgID, entity.DocSale, testDay)
	require.NoError(t, err)
	assert.Equal(t, "VEN-20260315-08", number)
}

func TestGenerator_SaltaNumerosYaEmitidos(t *testing.T) {
	counters := testutil.NewFakeCounterRepo()
	gen := numbering.NewGenerator()

	// Primer número emitido por el contador.
	first, err := gen.Next(counters, testOrgID, entity.DocSale, testDay)
	require.NoError(t, err)
	counters.Issue(testOrgID, entity.DocSale, first)

	// Un documento insertado por fuera del contador ocupa el siguiente número.
	counters.Issue(testOrgID, entity.DocSale, "VEN-20260315-02")

	second, err := gen.Next(counters, testOrgID, entity.DocSale, testDay)
	require.NoError(t, err)
	assert.Equal(t, "VEN-20260315-03", second, "el generador debe saltar el número ocupado")
}

func TestGenerator_TipoInvalido(t *testing.T) {
	counters := testutil.NewFakeCounterRepo()
	gen := numbering.NewGenerator()

	_, err := gen.Next(counters, testOrgID, entity.DocumentKind("recibo"), testDay)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerator_SinCeroALaIzquierdaTrasNoventaYNueve(t *testing.T) {
	counters := testutil.NewFakeCounterRepo()
	counters.Issue(testOrgID, entity.DocSale, "VEN-20260101-99")

	gen := numbering.NewGenerator()
	number, err := gen.Next(counters, testOrgID, entity.DocSale, testDay)
	require.NoError(t, err)
	assert.Equal(t, "VEN-20260315-100", number, "después de 99 el consecutivo crece sin truncarse")
}

func TestParseSequence(t *testing.T) {
	cases := []struct {
		number string
		want   int
		ok     bool
	}{
		{"VEN-20260315-01", 1, true},
		{"COT-20260315-42", 42, true},
		{"FAC-20260315-100", 100, true},
		{"VEN-LEGACY-ABC", 0, false},
		{"VEN-20260315-", 0, false},
		{"sinGuiones", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q", tc.number), func(t *testing.T) {
			got, ok := numbering.ParseSequence(tc.number)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
