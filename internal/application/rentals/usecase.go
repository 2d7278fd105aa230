// Package rentals gestiona alquileres de equipos: creación (un producto o
// múltiples líneas), devolución, cancelación y pagos, con los movimientos de
// inventario correspondientes en la misma transacción.
package rentals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jmarte/equimed-api/internal/application/inventory"
	"github.com/jmarte/equimed-api/internal/application/numbering"
	"github.com/jmarte/equimed-api/internal/application/ports"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/domain/repository"
)

var (
	oneHundred  = decimal.NewFromInt(100)
	daysPerWeek = decimal.NewFromInt(7)
	daysPerMes  = decimal.NewFromInt(30)
)

// UseCase casos de uso de alquileres.
type UseCase struct {
	txRunner   ports.TxRunner
	ledger     *inventory.StockLedger
	numbers    *numbering.Generator
	rentalRepo repository.RentalRepository
	clientRepo repository.ClientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, ledger *inventory.StockLedger, numbers *numbering.Generator, rentalRepo repository.RentalRepository, clientRepo repository.ClientRepository) *UseCase {
	return &UseCase{txRunner: txRunner, ledger: ledger, numbers: numbers, rentalRepo: rentalRepo, clientRepo: clientRepo}
}

// ItemInput línea de alquiler solicitada.
type ItemInput struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateInput comando para crear un alquiler. Con Items no vacío se crea un
// alquiler multi-línea; con ProductID se usa el camino legado de un solo
// producto, con RentalPrice como tarifa o la del producto según Period.
// Un rango de fechas del mismo día (o invertido) se cobra como 1 día.
type CreateInput struct {
	OrganizationID string
	UserID         string
	ClientID       string
	QuotationID    *string
	// Número de la cotización de origen, solo para la glosa del movimiento.
	QuotationNumber string

	ProductID *string
	// Tarifa negociada para el camino legado; nil usa la tarifa del producto.
	RentalPrice *decimal.Decimal
	Items       []ItemInput

	StartDate time.Time
	EndDate   time.Time
	Period    entity.RentalPeriod

	Deposit         decimal.Decimal
	TaxRate         decimal.Decimal
	Discount        decimal.Decimal
	DiscountPercent decimal.Decimal

	PaymentMethod string
	Notes         string
	ConditionOut  string
}

// RentalDays días facturables entre dos fechas: al menos 1.
func RentalDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// periodRate tarifa del producto para el período dado; un período no
// reconocido cae a la tarifa diaria.
func periodRate(product *entity.Product, period entity.RentalPeriod) decimal.Decimal {
	switch period {
	case entity.PeriodWeekly:
		return product.RentalPriceWeekly
	case entity.PeriodMonthly:
		return product.RentalPriceMonthly
	}
	return product.RentalPriceDaily
}

// periodCost costo de alquilar una unidad durante days días a la tarifa rate.
// Semanal y mensual prorratean fracciones; un período no reconocido cobra la
// tarifa tal cual, una sola vez.
func periodCost(rate decimal.Decimal, period entity.RentalPeriod, days int) decimal.Decimal {
	d := decimal.NewFromInt(int64(days))
	switch period {
	case entity.PeriodDaily:
		return rate.Mul(d)
	case entity.PeriodWeekly:
		return rate.Mul(d.Div(daysPerWeek))
	case entity.PeriodMonthly:
		return rate.Mul(d.Div(daysPerMes))
	}
	return rate
}

// Create ejecuta el comando en una transacción: verifica disponibilidad de
// todos los productos antes de mutar, minta el número ALQ, calcula el total y
// registra un movimiento "alquiler" por línea.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Rental, error) {
	if in.OrganizationID == "" || in.ClientID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductID == nil && len(in.Items) == 0 {
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

	var rental *entity.Rental
	err = uc.txRunner.Run(ctx, func(r *ports.TxRepos) error {
		var err error
		rental, err = uc.CreateInTx(r, in, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

// CreateInTx arma el alquiler con los repositorios de la transacción del
// caller; lo comparten Create y la conversión de cotizaciones.
func (uc *UseCase) CreateInTx(r *ports.TxRepos, in CreateInput, now time.Time) (*entity.Rental, error) {
	period := in.Period
	if period == "" {
		period = entity.PeriodDaily
	}
	days := RentalDays(in.StartDate, in.EndDate)

	items := in.Items
	var legacyRate *decimal.Decimal
	if in.ProductID != nil {
		// Camino legado: una unidad del producto. La tarifa viene del request
		// si el caller la negoció; si no, de la columna del producto según el
		// período. Se guarda la tarifa, no el costo del período completo.
		product, err := r.Products.GetByID(*in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		rate := periodRate(product, period)
		if in.RentalPrice != nil {
			rate = *in.RentalPrice
		}
		if rate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		legacyRate = &rate
		cost := periodCost(rate, period, days)
		items = []ItemInput{{ProductID: *in.ProductID, Quantity: 1, UnitPrice: cost}}
	}

	// Disponibilidad de todas las líneas antes de cualquier mutación.
	products := make(map[string]*entity.Product, len(items))
	subtotal := decimal.Zero
	for _, item := range items {
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := r.Products.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.OrganizationID != in.OrganizationID {
			return nil, domain.ErrForbidden
		}
		if !product.Type.Rentable() {
			return nil, domain.ErrInvalidProductType
		}
		if item.Quantity > product.StockAvailable {
			return nil, domain.ErrInsufficientAvailable
		}
		products[item.ProductID] = product
		if in.ProductID != nil {
			// La tarifa legada ya es el costo del período completo.
			subtotal = subtotal.Add(item.UnitPrice)
		} else {
			subtotal = subtotal.Add(decimal.NewFromInt(int64(item.Quantity)).Mul(item.UnitPrice).Mul(decimal.NewFromInt(int64(days))))
		}
	}

	discount := in.Discount
	if in.DiscountPercent.IsPositive() {
		discount = subtotal.Mul(in.DiscountPercent).Div(oneHundred)
	}
	subtotalAfterDiscount := subtotal.Sub(discount)
	taxAmount := subtotalAfterDiscount.Mul(in.TaxRate).Div(oneHundred)
	total := subtotalAfterDiscount.Add(taxAmount)

	// El depósito siembra el pago inicial.
	paid := in.Deposit
	if paid.IsNegative() {
		paid = decimal.Zero
	}
	balance := total.Sub(paid)
	paymentStatus := entity.PaymentPendiente
	switch {
	case paid.GreaterThanOrEqual(total) && total.IsPositive():
		paymentStatus = entity.PaymentPagado
	case paid.IsPositive():
		paymentStatus = entity.PaymentParcial
	}

	number, err := uc.numbers.Next(r.Counters, in.OrganizationID, entity.DocRental, now)
	if err != nil {
		return nil, err
	}

	rental := &entity.Rental{
		ID:              uuid.New().String(),
		OrganizationID:  in.OrganizationID,
		Number:          number,
		QuotationID:     in.QuotationID,
		ClientID:        in.ClientID,
		CreatedBy:       in.UserID,
		Status:          entity.RentalActivo,
		ProductID:       in.ProductID,
		RentalPrice:     legacyRate,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		Period:          period,
		Deposit:         in.Deposit,
		TaxRate:         in.TaxRate,
		Discount:        discount,
		DiscountPercent: in.DiscountPercent,
		TotalCost:       total,
		PaidAmount:      paid,
		Balance:         balance,
		PaymentStatus:   paymentStatus,
		PaymentMethod:   in.PaymentMethod,
		Notes:           in.Notes,
		ConditionOut:    in.ConditionOut,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := r.Rentals.Create(rental); err != nil {
		return nil, fmt.Errorf("insertar alquiler: %w", err)
	}

	reason := fmt.Sprintf("Alquiler %s", number)
	if in.QuotationNumber != "" {
		reason = fmt.Sprintf("Alquiler %s (desde cotización %s)", number, in.QuotationNumber)
	}
	for _, item := range items {
		if in.ProductID == nil {
			rentalItem := &entity.RentalItem{
				ID:             uuid.New().String(),
				OrganizationID: in.OrganizationID,
				RentalID:       rental.ID,
				ProductID:      item.ProductID,
				ProductName:    products[item.ProductID].Name,
				Quantity:       item.Quantity,
				RentalDays:     days,
				UnitPrice:      item.UnitPrice,
				CreatedAt:      now,
			}
			if err := r.Rentals.CreateItem(rentalItem); err != nil {
				return nil, fmt.Errorf("insertar línea de alquiler: %w", err)
			}
			rental.Items = append(rental.Items, rentalItem)
		}

		if _, err := uc.ledger.Apply(r, inventory.ApplyInput{
			OrganizationID: in.OrganizationID,
			UserID:         in.UserID,
			ProductID:      item.ProductID,
			Type:           entity.MovementAlquiler,
			Quantity:       item.Quantity,
			Reason:         reason,
			Reference:      entity.MovementRef{Type: entity.RefRental, ID: rental.ID},
			Now:            now,
		}); err != nil {
			return nil, err
		}
	}
	return rental, nil
}

// lines devuelve las líneas efectivas del alquiler (multi o legado) para los
// movimientos de devolución y cancelación.
func lines(rental *entity.Rental) []ItemInput {
	if rental.ProductID != nil {
		return []ItemInput{{ProductID: *rental.ProductID, Quantity: 1}}
	}
	out := make([]ItemInput, 0, len(rental.Items))
	for _, item := range rental.Items {
		out = append(out, ItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return out
}

// MarkReturned registra la devolución del equipo: movimiento "devolucion" por
// línea, estado devuelto y fecha real de retorno.
func (uc *UseCase) MarkReturned(ctx context.Context, organizationID, userID, rentalID, conditionIn string) (*entity.Rental, error) {
	var rental *entity.Rental
	err := uc.txRunner.Run(ctx, func(r *ports.TxRepos) error {
		var err error
		rental, err = uc.getForWrite(r, organizationID, rentalID)
		if err != nil {
			return err
		}
		if rental.Status == entity.RentalDevuelto || rental.Status == entity.RentalCancelado {
			return domain.ErrInvalidStatus
		}
		now := time.Now()
		for _, line := range lines(rental) {
			if _, err := uc.ledger.Apply(r, inventory.ApplyInput{
				OrganizationID: organizationID,
				UserID:         userID,
				ProductID:      line.ProductID,
				Type:           entity.MovementDevolucion,
				Quantity:       line.Quantity,
				Reason:         fmt.Sprintf("Devolución de alquiler %s", rental.Number),
				Reference:      entity.MovementRef{Type: entity.RefRental, ID: rental.ID},
				Now:            now,
			}); err != nil {
				return err
			}
		}
		rental.Status = entity.RentalDevuelto
		rental.ActualReturnDate = &now
		rental.ConditionIn = conditionIn
		rental.UpdatedAt = now
		return r.Rentals.Update(rental)
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

// Cancel cancela un alquiler activo devolviendo las unidades al pool
// disponible. Cancelar dos veces falla en vez de duplicar devoluciones.
func (uc *UseCase) Cancel(ctx context.Context, organizationID, userID, rentalID string) (*entity.Rental, error) {
	var rental *entity.Rental
	err := uc.txRunner.Run(ctx, func(r *ports.TxRepos) error {
		var err error
		rental, err = uc.getForWrite(r, organizationID, rentalID)
		if err != nil {
			return err
		}
		if rental.Status == entity.RentalCancelado {
			return domain.ErrAlreadyCancelled
		}
		if rental.Status == entity.RentalDevuelto {
			return domain.ErrInvalidStatus
		}
		now := time.Now()
		for _, line := range lines(rental) {
			if _, err := uc.ledger.Apply(r, inventory.ApplyInput{
				OrganizationID: organizationID,
				UserID:         userID,
				ProductID:      line.ProductID,
				Type:           entity.MovementCancelacionAlquiler,
				Quantity:       line.Quantity,
				Reason:         fmt.Sprintf("Cancelación de alquiler %s", rental.Number),
				Reference:      entity.MovementRef{Type: entity.RefRental, ID: rental.ID},
				Now:            now,
			}); err != nil {
				return err
			}
		}
		rental.Status = entity.RentalCancelado
		rental.Balance = decimal.Zero
		rental.PaymentStatus = entity.PaymentCancelado
		rental.UpdatedAt = now
		return r.Rentals.Update(rental)
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

// PaymentInput comando para registrar un pago contra un alquiler.
type PaymentInput struct {
	OrganizationID string
	RentalID       string
	Amount         decimal.Decimal
	PaymentMethod  string
	Reference      string
	Notes          string
}

// AddPayment agrega un pago inmutable y recalcula paid_amount, balance y
// estado de cobro. Un pago que exceda el balance pendiente se rechaza.
func (uc *UseCase) AddPayment(ctx context.Context, in PaymentInput) (*entity.RentalPayment, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	var payment *entity.RentalPayment
	err := uc.txRunner.Run(ctx, func(r *ports.TxRepos) error {
		rental, err := uc.getForWrite(r, in.OrganizationID, in.RentalID)
		if err != nil {
			return err
		}
		if rental.Status == entity.RentalCancelado {
			return domain.ErrInvalidStatus
		}
		if in.Amount.GreaterThan(rental.Balance) {
			return domain.ErrPaymentExceedsBalance
		}

		now := time.Now()
		payment = &entity.RentalPayment{
			ID:             uuid.New().String(),
			OrganizationID: in.OrganizationID,
			RentalID:       rental.ID,
			Amount:         in.Amount,
			PaymentMethod:  in.PaymentMethod,
			Reference:      in.Reference,
			Notes:          in.Notes,
			PaymentDate:    now,
			CreatedAt:      now,
		}
		if err := r.Rentals.CreatePayment(payment); err != nil {
			return fmt.Errorf("insertar pago de alquiler: %w", err)
		}

		rental.PaidAmount = rental.PaidAmount.Add(in.Amount)
		rental.Balance = rental.TotalCost.Sub(rental.PaidAmount)
		if rental.Balance.IsZero() {
			rental.PaymentStatus = entity.PaymentPagado
		} else {
			rental.PaymentStatus = entity.PaymentParcial
		}
		rental.UpdatedAt = now
		return r.Rentals.Update(rental)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// MarkOverdue marca como vencidos los alquileres activos cuya fecha de fin ya
// pasó. Pensado para correrse periódicamente; devuelve cuántos cambió.
func (uc *UseCase) MarkOverdue(ctx context.Context, organizationID string) (int, error) {
	return uc.rentalRepo.MarkOverdue(organizationID, time.Now())
}

func (uc *UseCase) getForWrite(r *ports.TxRepos, organizationID, rentalID string) (*entity.Rental, error) {
	rental, err := r.Rentals.GetByID(rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, domain.ErrNotFound
	}
	if rental.OrganizationID != organizationID {
		return nil, domain.ErrForbidden
	}
	return rental, nil
}

// Get obtiene un alquiler con sus líneas, validando la organización.
func (uc *UseCase) Get(organizationID, id string) (*entity.Rental, error) {
	rental, err := uc.rentalRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, domain.ErrNotFound
	}
	if rental.OrganizationID != organizationID {
		return nil, domain.ErrForbidden
	}
	return rental, nil
}

// List lista alquileres de la organización, opcionalmente por estado.
func (uc *UseCase) List(organizationID string, status entity.RentalStatus, limit, offset int) ([]*entity.Rental, error) {
	return uc.rentalRepo.List(organizationID, status, limit, offset)
}

// ListPayments pagos de un alquiler, validando la organización.
func (uc *UseCase) ListPayments(organizationID, rentalID string) ([]*entity.RentalPayment, error) {
	if _, err := uc.Get(organizationID, rentalID); err != nil {
		return nil, err
	}
	return uc.rentalRepo.ListPayments(rentalID)
}
