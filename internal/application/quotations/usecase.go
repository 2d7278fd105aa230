// Package quotations gestiona cotizaciones: creación con cálculo de totales,
// ciclo de estados (aceptar, rechazar, vencer) y conversión atómica a venta o
// alquiler.
package quotations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jmarte/equimed-api/internal/application/numbering"
	"github.com/jmarte/equimed-api/internal/application/ports"
	"github.com/jmarte/equimed-api/internal/application/rentals"
	"github.com/jmarte/equimed-api/internal/application/sales"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/domain/repository"
)

var oneHundred = decimal.NewFromInt(100)

// UseCase casos de uso de cotizaciones.
type UseCase struct {
	txRunner      ports.TxRunner
	numbers       *numbering.Generator
	quotationRepo repository.QuotationRepository
	clientRepo    repository.ClientRepository
	productRepo   repository.ProductRepository
	salesUC       *sales.UseCase
	rentalsUC     *rentals.UseCase
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, numbers *numbering.Generator, quotationRepo repository.QuotationRepository, clientRepo repository.ClientRepository, productRepo repository.ProductRepository, salesUC *sales.UseCase, rentalsUC *rentals.UseCase) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		numbers:       numbers,
		quotationRepo: quotationRepo,
		clientRepo:    clientRepo,
		productRepo:   productRepo,
		salesUC:       salesUC,
		rentalsUC:     rentalsUC,
	}
}

// ItemInput línea cotizada.
type ItemInput struct {
	ProductID       string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
}

// CreateInput comando para crear una cotización. StartDate/EndDate solo
// aplican al tipo alquiler y definen los días facturables por línea.
type CreateInput struct {
	OrganizationID  string
	UserID          string
	ClientID        string
	Type            entity.QuotationType
	ValidUntil      *time.Time
	StartDate       *time.Time
	EndDate         *time.Time
	TaxRate         decimal.Decimal
	DiscountPercent decimal.Decimal
	PaymentMethod   string
	Notes           string
	Items           []ItemInput
}

// quotedDays días facturables de una cotización de alquiler; 1 si no hay
// fechas o si la cotización es de venta.
func quotedDays(t entity.QuotationType, start, end *time.Time) int {
	if t != entity.QuotationAlquiler || start == nil || end == nil {
		return 1
	}
	return rentals.RentalDays(*start, *end)
}

// computeTotals calcula subtotales de línea y totales del documento.
// Por línea: cantidad × precio × días × (1 − descuento%). Sobre la suma se
// aplica el descuento global en porcentaje y luego el impuesto.
func computeTotals(items []ItemInput, days int, discountPercent, taxRate decimal.Decimal) (lineSubtotals []decimal.Decimal, subtotal, discountAmount, taxAmount, total decimal.Decimal) {
	d := decimal.NewFromInt(int64(days))
	lineSubtotals = make([]decimal.Decimal, len(items))
	subtotal = decimal.Zero
	for i, item := range items {
		line := decimal.NewFromInt(int64(item.Quantity)).Mul(item.UnitPrice).Mul(d)
		if item.DiscountPercent.IsPositive() {
			line = line.Sub(line.Mul(item.DiscountPercent).Div(oneHundred))
		}
		lineSubtotals[i] = line
		subtotal = subtotal.Add(line)
	}
	discountAmount = subtotal.Mul(discountPercent).Div(oneHundred)
	afterDiscount := subtotal.Sub(discountAmount)
	taxAmount = afterDiscount.Mul(taxRate).Div(oneHundred)
	total = afterDiscount.Add(taxAmount)
	return
}

// Create valida el comando, minta el número COT y persiste la cotización con
// sus líneas. No toca inventario: el stock se compromete recién al convertir.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Quotation, error) {
	if in.OrganizationID == "" || in.ClientID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.QuotationVenta && in.Type != entity.QuotationAlquiler {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.OrganizationID != in.OrganizationID {
		return nil, domain.ErrForbidden
	}

	// Los nombres de producto se congelan al cotizar.
	names := make(map[string]string, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.OrganizationID != in.OrganizationID {
			return nil, domain.ErrForbidden
		}
		names[item.ProductID] = product.Name
	}

	days := quotedDays(in.Type, in.StartDate, in.EndDate)
	lineSubtotals, subtotal, discountAmount, taxAmount, total := computeTotals(in.Items, days, in.DiscountPercent, in.TaxRate)

	var quotation *entity.Quotation
	err = uc.txRunner.Run(ctx, func(r *ports.TxRepos) error {
		now := time.Now()
		number, err := uc.numbers.Next(r.Counters, in.OrganizationID, entity.DocQuotation, now)
		if err != nil {
			return err
		}
		quotation = &entity.Quotation{
			ID:              uuid.New().String(),
			OrganizationID:  in.OrganizationID,
			Number:          number,
			Type:            in.Type,
			ClientID:        in.ClientID,
			CreatedBy:       in.UserID,
			Status:          entity.QuotationPendiente,
			QuotationDate:   now,
			ValidUntil:      in.ValidUntil,
			StartDate:       in.StartDate,
			EndDate:         in.EndDate,
			Subtotal:        subtotal,
			TaxRate:         in.TaxRate,
			TaxAmount:       taxAmount,
			DiscountPercent: in.DiscountPercent,
			DiscountAmount:  discountAmount,
			Total:           total,
			PaymentMethod:   in.PaymentMethod,
			Notes:           in.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := r.Quotations.Create(quotation); err != nil {
			return fmt.Errorf("insertar cotización: %w", err)
		}
		for i, item := range in.Items {
			quotationItem := &entity.QuotationItem{
				ID:              uuid.New().String(),
				QuotationID:     quotation.ID,
				ProductID:       item.ProductID,
				ProductName:     names[item.ProductID],
				Quantity:        item.Quantity,
				UnitPrice:       item.UnitPrice,
				DiscountPercent: item.DiscountPercent,
				Subtotal:        lineSubtotals[i],
			}
			if err := r.Quotations.CreateItem(quotationItem); err != nil {
				return fmt.Errorf("insertar línea de cotización: %w", err)
			}
			quotation.Items = append(quotation.Items, quotationItem)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quotation, nil
}

// UpdateInput campos editables de una cotización no convertida. Los punteros
// nulos se dejan como están; Items no nulo reemplaza las líneas y recalcula
// totales.
type UpdateInput struct {
	OrganizationID  string
	QuotationID     string
	ValidUntil      *time.Time
	StartDate       *time.Time
	EndDate         *time.Time
	TaxRate         *decimal.Decimal
	DiscountPercent *decimal.Decimal
	PaymentMethod   *string
	Notes           *string
	Items           []ItemInput
}

// Update edita una cotización. Una cotización convertida es inmutable.
func (uc *UseCase) Update(ctx context.Context, in UpdateInput) (*entity.Quotation, error) {
	quotation, err := uc.Get(in.OrganizationID, in.QuotationID)
	if err != nil {
		return nil, err
	}
	if quotation.Converted() || quotation.Status == entity.QuotationConvertida {
		return nil, domain.ErrAlreadyConverted
	}

	if in.ValidUntil != nil {
		quotation.ValidUntil = in.ValidUntil
	}
	if in.StartDate != nil {
		quotation.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		quotation.EndDate = in.EndDate
	}
	if in.TaxRate != nil {
		quotation.TaxRate = *in.TaxRate
	}
	if in.DiscountPercent != nil {
		quotation.DiscountPercent = *in.DiscountPercent
	}
	if in.PaymentMethod != nil {
		quotation.PaymentMethod = *in.PaymentMethod
	}
	if in.Notes != nil {
		quotation.Notes = *in.Notes
	}

	items := in.Items
	recompute := items != nil
	if !recompute && (in.TaxRate != nil || in.DiscountPercent != nil || in.StartDate != nil || in.EndDate != nil) {
		// Cambió un parámetro de cálculo: recalcular sobre las líneas actuales.
		recompute = true
		items = make([]ItemInput, 0, len(quotation.Items))
		for _, item := range quotation.Items {
			items = append(items, ItemInput{
				ProductID:       item.ProductID,
				Quantity:        item.Quantity,
				UnitPrice:       item.UnitPrice,
				DiscountPercent: item.DiscountPercent,
			})
		}
	}

	var newItems []*entity.QuotationItem
	if recompute {
		days := quotedDays(quotation.Type, quotation.StartDate, quotation.EndDate)
		lineSubtotals, subtotal, discountAmount, taxAmount, total := computeTotals(items, days, quotation.DiscountPercent, quotation.TaxRate)
		quotation.Subtotal = subtotal
		quotation.DiscountAmount = discountAmount
		quotation.TaxAmount = taxAmount
		quotation.Total = total

		newItems = make([]*entity.QuotationItem, 0, len(items))
		for i, item := range items {
			name := item.ProductID
			product, err := uc.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			if product != nil {
				if product.OrganizationID != quotation.OrganizationID {
					return nil, domain.ErrForbidden
				}
				name = product.Name
			}
			newItems = append(newItems, &entity.QuotationItem{
				ID:              uuid.New().String(),
				QuotationID:     quotation.ID,
				ProductID:       item.ProductID,
				ProductName:     name,
				Quantity:        item.Quantity,
				UnitPrice:       item.UnitPrice,
				DiscountPercent: item.DiscountPercent,
				Subtotal:        lineSubtotals[i],
			})
		}
	}

	quotation.UpdatedAt = time.Now()
	err = uc.txRunner.Run(ctx, func(r *ports.TxRepos) error {
		if err := r.Quotations.Update(quotation); err != nil {
			return err
		}
		if newItems != nil {
			return r.Quotations.ReplaceItems(quotation.ID, newItems)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if newItems != nil {
		quotation.Items = newItems
	}
	return quotation, nil
}

// Accept marca una cotización pendiente como aceptada.
func (uc *UseCase) Accept(ctx context.Context, organizationID, quotationID string) (*entity.Quotation, error) {
	return uc.transition(organizationID, quotationID, entity.QuotationAceptada)
}

// Reject marca una cotización pendiente como rechazada.
func (uc *UseCase) Reject(ctx context.Context, organizationID, quotationID string) (*entity.Quotation, error) {
	return uc.transition(organizationID, quotationID, entity.QuotationRechazada)
}

func (uc *UseCase) transition(organizationID, quotationID string, target entity.QuotationStatus) (*entity.Quotation, error) {
	quotation, err := uc.Get(organizationID, quotationID)
	if err != nil {
		return nil, err
	}
	if quotation.Converted() {
		return nil, domain.ErrAlreadyConverted
	}
	if quotation.Status != entity.QuotationPendiente {
		return nil, domain.ErrInvalidStatus
	}
	quotation.Status = target
	quotation.UpdatedAt = time.Now()
	if err := uc.quotationRepo.Update(quotation); err != nil {
		return nil, err
	}
	return quotation, nil
}

// Delete elimina una cotización no convertida.
func (uc *UseCase) Delete(ctx context.Context, organizationID, quotationID string) error {
	quotation, err := uc.Get(organizationID, quotationID)
	if err != nil {
		return err
	}
	if quotation.Converted() || quotation.Status == entity.QuotationConvertida {
		return domain.ErrAlreadyConverted
	}
	return uc.quotationRepo.Delete(quotation.ID)
}

// ConvertToSale convierte una cotización aceptada en una venta, todo en una
// transacción: la venta nace con sus números VEN/FAC, descuenta stock línea
// por línea y la cotización queda convertida apuntando a la venta. Si algo
// falla, nada queda escrito.
func (uc *UseCase) ConvertToSale(ctx context.Context, organizationID, userID, quotationID, paymentMethod string) (*entity.Sale, error) {
	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(r *ports.TxRepos) error {
		quotation, err := uc.getForConvert(r, organizationID, quotationID)
		if err != nil {
			return err
		}
		if quotation.Type != entity.QuotationVenta {
			return domain.ErrInvalidInput
		}

		method := paymentMethod
		if method == "" {
			method = quotation.PaymentMethod
		}
		items := make([]sales.ItemInput, 0, len(quotation.Items))
		for _, item := range quotation.Items {
			items = append(items, sales.ItemInput{
				ProductID:       item.ProductID,
				Quantity:        item.Quantity,
				UnitPrice:       item.UnitPrice,
				DiscountPercent: item.DiscountPercent,
			})
		}
		now := time.Now()
		sale, err = uc.salesUC.CreateInTx(r, sales.CreateInput{
			OrganizationID: organizationID,
			UserID:         userID,
			ClientID:       quotation.ClientID,
			QuotationID:    &quotation.ID,
			// La venta nace pendiente de pago; el cobro llega por el libro de pagos.
			Status:         entity.SalePendientePago,
			PaymentMethod:  method,
			Notes:          quotation.Notes,
			TaxRate:        quotation.TaxRate,
			DiscountAmount: quotation.DiscountAmount,
			Items:          items,
		}, now)
		if err != nil {
			return err
		}

		quotation.Status = entity.QuotationConvertida
		quotation.SaleID = &sale.ID
		quotation.UpdatedAt = now
		return r.Quotations.Update(quotation)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// RentalParams parámetros de conversión a alquiler. Las fechas vacías caen a
// las propuestas en la cotización.
type RentalParams struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Period        entity.RentalPeriod
	Deposit       decimal.Decimal
	PaymentMethod string
	ConditionOut  string
}

// ConvertToRental convierte una cotización de alquiler aceptada en un
// alquiler, con la misma atomicidad que ConvertToSale.
func (uc *UseCase) ConvertToRental(ctx context.Context, organizationID, userID, quotationID string, params RentalParams) (*entity.Rental, error) {
	var rental *entity.Rental
	err := uc.txRunner.Run(ctx, func(r *ports.TxRepos) error {
		quotation, err := uc.getForConvert(r, organizationID, quotationID)
		if err != nil {
			return err
		}
		if quotation.Type != entity.QuotationAlquiler {
			return domain.ErrInvalidInput
		}

		start := quotation.StartDate
		if params.StartDate != nil {
			start = params.StartDate
		}
		end := quotation.EndDate
		if params.EndDate != nil {
			end = params.EndDate
		}
		if start == nil || end == nil {
			return domain.ErrInvalidInput
		}
		method := params.PaymentMethod
		if method == "" {
			method = quotation.PaymentMethod
		}

		// Las líneas cotizadas ya traen el precio por día negociado.
		items := make([]rentals.ItemInput, 0, len(quotation.Items))
		for _, item := range quotation.Items {
			items = append(items, rentals.ItemInput{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})
		}
		now := time.Now()
		rental, err = uc.rentalsUC.CreateInTx(r, rentals.CreateInput{
			OrganizationID:  organizationID,
			UserID:          userID,
			ClientID:        quotation.ClientID,
			QuotationID:     &quotation.ID,
			QuotationNumber: quotation.Number,
			Items:           items,
			StartDate:       *start,
			EndDate:         *end,
			Period:          params.Period,
			Deposit:         params.Deposit,
			TaxRate:         quotation.TaxRate,
			DiscountPercent: quotation.DiscountPercent,
			PaymentMethod:   method,
			Notes:           quotation.Notes,
			ConditionOut:    params.ConditionOut,
		}, now)
		if err != nil {
			return err
		}

		quotation.Status = entity.QuotationConvertida
		quotation.RentalID = &rental.ID
		quotation.UpdatedAt = now
		return r.Quotations.Update(quotation)
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

// getForConvert carga la cotización dentro de la transacción y valida que esté
// aceptada y sin convertir. Convertir dos veces falla siempre: la primera
// conversión deja SaleID/RentalID y el estado convertida.
func (uc *UseCase) getForConvert(r *ports.TxRepos, organizationID, quotationID string) (*entity.Quotation, error) {
	quotation, err := r.Quotations.GetByID(quotationID)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, domain.ErrNotFound
	}
	if quotation.OrganizationID != organizationID {
		return nil, domain.ErrForbidden
	}
	if quotation.Converted() || quotation.Status == entity.QuotationConvertida {
		return nil, domain.ErrAlreadyConverted
	}
	if quotation.Status != entity.QuotationAceptada {
		return nil, domain.ErrInvalidStatus
	}
	return quotation, nil
}

// ExpirePending marca como vencidas las cotizaciones pendientes cuya vigencia
// expiró. Devuelve cuántas cambió.
func (uc *UseCase) ExpirePending(ctx context.Context, organizationID string) (int, error) {
	return uc.quotationRepo.ExpirePending(organizationID, time.Now())
}

// Get obtiene una cotización con sus líneas, validando la organización.
func (uc *UseCase) Get(organizationID, id string) (*entity.Quotation, error) {
	quotation, err := uc.quotationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, domain.ErrNotFound
	}
	if quotation.OrganizationID != organizationID {
		return nil, domain.ErrForbidden
	}
	return quotation, nil
}

// List lista cotizaciones de la organización, opcionalmente por estado.
func (uc *UseCase) List(organizationID string, status entity.QuotationStatus, limit, offset int) ([]*entity.Quotation, error) {
	return uc.quotationRepo.List(organizationID, status, limit, offset)
}
