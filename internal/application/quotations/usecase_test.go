package quotations_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmarte/equimed-api/internal/application/inventory"
	"github.com/jmarte/equimed-api/internal/application/numbering"
	"github.com/jmarte/equimed-api/internal/application/quotations"
	"github.com/jmarte/equimed-api/internal/application/rentals"
	"github.com/jmarte/equimed-api/internal/application/sales"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/testutil"
)

const (
	testOrgID    = "org-1"
	testUserID   = "user-1"
	testClientID = "client-1"
)

var (
	quoteStart = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	quoteEnd   = quoteStart.AddDate(0, 0, 10)
)

func newQuotationsUC(f *testutil.Fixture) *quotations.UseCase {
	ledger := inventory.NewStockLedger()
	numbers := numbering.NewGenerator()
	salesUC := sales.NewUseCase(f.Tx, ledger, numbers, f.Sales, f.Clients)
	rentalsUC := rentals.NewUseCase(f.Tx, ledger, numbers, f.Rentals, f.Clients)
	return quotations.NewUseCase(f.Tx, numbers, f.Quotations, f.Clients, f.Products, salesUC, rentalsUC)
}

func seedQuotationsFixture() *testutil.Fixture {
	f := testutil.NewFixture()
	f.Clients.Seed(&entity.Client{
		ID:             testClientID,
		OrganizationID: testOrgID,
		Name:           "Centro Médico Sur",
		Type:           entity.ClientHospital,
		IsActive:       true,
	})
	f.Products.Seed(&entity.Product{
		ID:               "ventilador",
		OrganizationID:   testOrgID,
		SKU:              "VEN-EQ-01",
		Name:             "Ventilador mecánico",
		Type:             entity.ProductAmbos,
		Price:            decimal.NewFromInt(500),
		RentalPriceDaily: decimal.NewFromInt(40),
		Stock:            5,
		StockAvailable:   5,
		IsActive:         true,
	})
	f.Products.Seed(&entity.Product{
		ID:               "cama",
		OrganizationID:   testOrgID,
		SKU:              "CAM-EQ-01",
		Name:             "Cama hospitalaria eléctrica",
		Type:             entity.ProductAlquiler,
		RentalPriceDaily: decimal.NewFromInt(30),
		Stock:            3,
		StockAvailable:   3,
		IsActive:         true,
	})
	return f
}

func saleQuotationInput() quotations.CreateInput {
	return quotations.CreateInput{
		OrganizationID:  testOrgID,
		UserID:          testUserID,
		ClientID:        testClientID,
		Type:            entity.QuotationVenta,
		TaxRate:         decimal.NewFromInt(18),
		DiscountPercent: decimal.NewFromInt(5),
		PaymentMethod:   entity.PaymentCredito,
		Items: []quotations.ItemInput{
			{ProductID: "ventilador", Quantity: 2, UnitPrice: decimal.NewFromInt(500), DiscountPercent: decimal.NewFromInt(10)},
		},
	}
}

func rentalQuotationInput() quotations.CreateInput {
	start, end := quoteStart, quoteEnd
	return quotations.CreateInput{
		OrganizationID: testOrgID,
		UserID:         testUserID,
		ClientID:       testClientID,
		Type:           entity.QuotationAlquiler,
		StartDate:      &start,
		EndDate:        &end,
		Items: []quotations.ItemInput{
			{ProductID: "cama", Quantity: 1, UnitPrice: decimal.NewFromInt(30)},
		},
	}
}

func acceptedQuotation(t *testing.T, uc *quotations.UseCase, in quotations.CreateInput) *entity.Quotation {
	t.Helper()
	ctx := context.Background()
	quotation, err := uc.Create(ctx, in)
	require.NoError(t, err)
	quotation, err = uc.Accept(ctx, testOrgID, quotation.ID)
	require.NoError(t, err)
	return quotation
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestQuotations_Create_TotalesVenta(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)

	quotation, err := uc.Create(context.Background(), saleQuotationInput())
	require.NoError(t, err)

	// 2×500 con 10% de línea = 900; −5% global = 855; ITBIS 18% = 153.9.
	assert.Equal(t, "900", quotation.Subtotal.String())
	assert.Equal(t, "45", quotation.DiscountAmount.String())
	assert.Equal(t, "153.9", quotation.TaxAmount.String())
	assert.Equal(t, "1008.9", quotation.Total.String())

	assert.Equal(t, entity.QuotationPendiente, quotation.Status)
	assert.Regexp(t, `^COT-\d{8}-01$`, quotation.Number)
	require.Len(t, quotation.Items, 1)
	assert.Equal(t, "Ventilador mecánico", quotation.Items[0].ProductName, "el nombre se congela al cotizar")

	// Cotizar no compromete inventario.
	product, _ := f.Products.GetByID("ventilador")
	assert.Equal(t, 5, product.Stock)
	assert.Empty(t, f.Movements.Entries)
}

func TestQuotations_Create_AlquilerMultiplicaPorDias(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)

	quotation, err := uc.Create(context.Background(), rentalQuotationInput())
	require.NoError(t, err)

	// 1 × 30/día × 10 días = 300.
	assert.Equal(t, "300", quotation.Subtotal.String())
	assert.Equal(t, "300", quotation.Total.String())
}

func TestQuotations_Create_AlquilerMismoDiaFacturaUnDia(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)

	in := rentalQuotationInput()
	start := quoteStart
	in.StartDate, in.EndDate = &start, &start

	quotation, err := uc.Create(context.Background(), in)
	require.NoError(t, err, "cotizar el mismo día es válido")
	assert.Equal(t, "30", quotation.Subtotal.String(), "mismo día factura 1 día, nunca cero")
}

func TestQuotations_Create_VentaIgnoraFechas(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)

	in := saleQuotationInput()
	start, end := quoteStart, quoteEnd
	in.StartDate, in.EndDate = &start, &end

	quotation, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "900", quotation.Subtotal.String(), "en cotizaciones de venta los días no multiplican")
}

func TestQuotations_Create_TipoInvalido(t *testing.T) {
	f := seedQuotationsFixture()
	in := saleQuotationInput()
	in.Type = entity.QuotationType("prestamo")

	_, err := newQuotationsUC(f).Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestQuotations_AcceptYReject_SoloDesdePendiente(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)
	ctx := context.Background()

	quotation, err := uc.Create(ctx, saleQuotationInput())
	require.NoError(t, err)

	accepted, err := uc.Accept(ctx, testOrgID, quotation.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationAceptada, accepted.Status)

	_, err = uc.Accept(ctx, testOrgID, quotation.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus, "aceptar dos veces no es válido")
	_, err = uc.Reject(ctx, testOrgID, quotation.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus, "rechazar una aceptada no es válido")
}

func TestQuotations_Update_RecalculaAlCambiarImpuesto(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)
	ctx := context.Background()

	quotation, err := uc.Create(ctx, rentalQuotationInput()) // total 300
	require.NoError(t, err)

	taxRate := decimal.NewFromInt(18)
	updated, err := uc.Update(ctx, quotations.UpdateInput{
		OrganizationID: testOrgID,
		QuotationID:    quotation.ID,
		TaxRate:        &taxRate,
	})
	require.NoError(t, err)

	assert.Equal(t, "300", updated.Subtotal.String())
	assert.Equal(t, "54", updated.TaxAmount.String())
	assert.Equal(t, "354", updated.Total.String())
}

func TestQuotations_Update_ReemplazaLineas(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)
	ctx := context.Background()

	quotation, err := uc.Create(ctx, rentalQuotationInput())
	require.NoError(t, err)

	updated, err := uc.Update(ctx, quotations.UpdateInput{
		OrganizationID: testOrgID,
		QuotationID:    quotation.ID,
		Items: []quotations.ItemInput{
			{ProductID: "cama", Quantity: 2, UnitPrice: decimal.NewFromInt(30)},
		},
	})
	require.NoError(t, err)

	// 2 × 30 × 10 días = 600.
	assert.Equal(t, "600", updated.Total.String())
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 2, updated.Items[0].Quantity)

	stored, err := uc.Get(testOrgID, quotation.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 2, stored.Items[0].Quantity)
}

func TestQuotations_Update_ProductoDeOtraOrganizacion(t *testing.T) {
	f := seedQuotationsFixture()
	f.Products.Seed(&entity.Product{
		ID:               "ajeno",
		OrganizationID:   "org-2",
		Name:             "Equipo de otra organización",
		Type:             entity.ProductAlquiler,
		RentalPriceDaily: decimal.NewFromInt(10),
		Stock:            1,
		StockAvailable:   1,
		IsActive:         true,
	})
	uc := newQuotationsUC(f)
	ctx := context.Background()

	quotation, err := uc.Create(ctx, rentalQuotationInput())
	require.NoError(t, err)

	_, err = uc.Update(ctx, quotations.UpdateInput{
		OrganizationID: testOrgID,
		QuotationID:    quotation.ID,
		Items: []quotations.ItemInput{
			{ProductID: "ajeno", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "no se pueden cotizar productos de otra organización")
}

func TestQuotations_ExpirePending(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)
	ctx := context.Background()

	past := time.Now().AddDate(0, 0, -1)
	in := saleQuotationInput()
	in.ValidUntil = &past
	expired, err := uc.Create(ctx, in)
	require.NoError(t, err)

	future := time.Now().AddDate(0, 0, 30)
	in2 := saleQuotationInput()
	in2.ValidUntil = &future
	vigente, err := uc.Create(ctx, in2)
	require.NoError(t, err)

	updated, err := uc.ExpirePending(ctx, testOrgID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	got, _ := uc.Get(testOrgID, expired.ID)
	assert.Equal(t, entity.QuotationVencida, got.Status)
	got, _ = uc.Get(testOrgID, vigente.ID)
	assert.Equal(t, entity.QuotationPendiente, got.Status)

	// El barrido es idempotente.
	updated, err = uc.ExpirePending(ctx, testOrgID)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversión a venta
// ──────────────────────────────────────────────────────────────────────────────

func TestQuotations_ConvertToSale(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)
	ctx := context.Background()

	quotation := acceptedQuotation(t, uc, saleQuotationInput())

	sale, err := uc.ConvertToSale(ctx, testOrgID, testUserID, quotation.ID, "")
	require.NoError(t, err)

	// La venta nace pendiente de pago con los totales de la cotización.
	assert.Equal(t, entity.SalePendientePago, sale.Status)
	assert.True(t, sale.Total.Equal(quotation.Total), "el total de la venta debe coincidir con el cotizado")
	require.NotNil(t, sale.QuotationID)
	assert.Equal(t, quotation.ID, *sale.QuotationID)
	assert.Equal(t, entity.PaymentCredito, sale.PaymentMethod, "sin método explícito hereda el de la cotización")

	// La cotización queda convertida apuntando a la venta.
	converted, err := uc.Get(testOrgID, quotation.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationConvertida, converted.Status)
	require.NotNil(t, converted.SaleID)
	assert.Equal(t, sale.ID, *converted.SaleID)
	assert.Nil(t, converted.RentalID)

	// El stock se compromete recién aquí.
	product, _ := f.Products.GetByID("ventilador")
	assert.Equal(t, 3, product.Stock)
	assert.Len(t, f.Movements.ByType(entity.MovementVenta), 1)
}

func TestQuotations_ConvertToSale_DosVecesFalla(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)
	ctx := context.Background()

	quotation := acceptedQuotation(t, uc, saleQuotationInput())
	_, err := uc.ConvertToSale(ctx, testOrgID, testUserID, quotation.ID, "")
	require.NoError(t, err)

	_, err = uc.ConvertToSale(ctx, testOrgID, testUserID, quotation.ID, "")
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)

	product, _ := f.Products.GetByID("ventilador")
	assert.Equal(t, 3, product.Stock, "la segunda conversión no debe descontar stock de nuevo")
}

func TestQuotations_ConvertToSale_SoloAceptadas(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)
	ctx := context.Background()

	quotation, err := uc.Create(ctx, saleQuotationInput())
	require.NoError(t, err)

	_, err = uc.ConvertToSale(ctx, testOrgID, testUserID, quotation.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestQuotations_ConvertToSale_TipoAlquilerRechazado(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)

	quotation := acceptedQuotation(t, uc, rentalQuotationInput())
	_, err := uc.ConvertToSale(context.Background(), testOrgID, testUserID, quotation.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversión a alquiler
// ──────────────────────────────────────────────────────────────────────────────

func TestQuotations_ConvertToRental(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)
	ctx := context.Background()

	quotation := acceptedQuotation(t, uc, rentalQuotationInput())

	rental, err := uc.ConvertToRental(ctx, testOrgID, testUserID, quotation.ID, quotations.RentalParams{
		Deposit:      decimal.NewFromInt(100),
		ConditionOut: "sellado de fábrica",
	})
	require.NoError(t, err)

	// Hereda las fechas propuestas: 10 días × 30 = 300.
	assert.Equal(t, "300", rental.TotalCost.String())
	assert.Equal(t, entity.RentalActivo, rental.Status)
	assert.Equal(t, "100", rental.PaidAmount.String())
	assert.Equal(t, entity.PaymentParcial, rental.PaymentStatus)
	require.Len(t, rental.Items, 1)
	assert.Equal(t, 10, rental.Items[0].RentalDays)

	converted, err := uc.Get(testOrgID, quotation.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationConvertida, converted.Status)
	require.NotNil(t, converted.RentalID)
	assert.Nil(t, converted.SaleID)

	product, _ := f.Products.GetByID("cama")
	assert.Equal(t, 2, product.StockAvailable)

	movs := f.Movements.ByType(entity.MovementAlquiler)
	require.Len(t, movs, 1)
	assert.Contains(t, movs[0].Reason, quotation.Number, "la glosa debe citar la cotización de origen")
}

func TestQuotations_ConvertToRental_FechasDeParametroPisanLasCotizadas(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)

	quotation := acceptedQuotation(t, uc, rentalQuotationInput())
	start := quoteStart
	end := quoteStart.AddDate(0, 0, 20)

	rental, err := uc.ConvertToRental(context.Background(), testOrgID, testUserID, quotation.ID, quotations.RentalParams{
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "600", rental.TotalCost.String(), "20 días × 30")
}

func TestQuotations_ConvertToRental_MismoDiaFacturaUnDia(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)

	quotation := acceptedQuotation(t, uc, rentalQuotationInput())
	start := quoteStart

	rental, err := uc.ConvertToRental(context.Background(), testOrgID, testUserID, quotation.ID, quotations.RentalParams{
		StartDate: &start,
		EndDate:   &start,
	})
	require.NoError(t, err, "convertir con fechas del mismo día es válido")
	assert.Equal(t, "30", rental.TotalCost.String(), "1 día × 30")
}

func TestQuotations_ConvertToRental_SinFechasFalla(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)

	in := rentalQuotationInput()
	in.StartDate, in.EndDate = nil, nil
	quotation := acceptedQuotation(t, uc, in)

	_, err := uc.ConvertToRental(context.Background(), testOrgID, testUserID, quotation.ID, quotations.RentalParams{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuotations_ConvertToRental_TipoVentaRechazado(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)

	quotation := acceptedQuotation(t, uc, saleQuotationInput())
	_, err := uc.ConvertToRental(context.Background(), testOrgID, testUserID, quotation.ID, quotations.RentalParams{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inmutabilidad tras la conversión
// ──────────────────────────────────────────────────────────────────────────────

func TestQuotations_Convertida_EsInmutable(t *testing.T) {
	f := seedQuotationsFixture()
	uc := newQuotationsUC(f)
	ctx := context.Background()

	quotation := acceptedQuotation(t, uc, saleQuotationInput())
	_, err := uc.ConvertToSale(ctx, testOrgID, testUserID, quotation.ID, "")
	require.NoError(t, err)

	notes := "intento de edición"
	_, err = uc.Update(ctx, quotations.UpdateInput{
		OrganizationID: testOrgID,
		QuotationID:    quotation.ID,
		Notes:          &notes,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)

	err = uc.Delete(ctx, testOrgID, quotation.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
}
