// Package sales arma ventas (directas o desde cotización), calcula totales y
// descuenta inventario a través del StockLedger en una sola transacción.
package sales

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

var oneHundred = decimal.NewFromInt(100)

// UseCase casos de uso de ventas: creación, cancelación y pagos.
type UseCase struct {
	txRunner   ports.TxRunner
	ledger     *inventory.StockLedger
	numbers    *numbering.Generator
	saleRepo   repository.SaleRepository
	clientRepo repository.ClientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, ledger *inventory.StockLedger, numbers *numbering.Generator, saleRepo repository.SaleRepository, clientRepo repository.ClientRepository) *UseCase {
	return &UseCase{txRunner: txRunner, ledger: ledger, numbers: numbers, saleRepo: saleRepo, clientRepo: clientRepo}
}

// ItemInput línea de venta solicitada.
type ItemInput struct {
	ProductID       string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
}

// CreateInput comando validado para crear una venta.
type CreateInput struct {
	OrganizationID string
	UserID         string
	ClientID       string
	QuotationID    *string
	Status         entity.SaleStatus
	PaymentMethod  string
	PaymentRef     string
	Notes          string
	TaxRate        decimal.Decimal
	DiscountAmount decimal.Decimal
	PaidAmount     decimal.Decimal
	Items          []ItemInput
}

// Create ejecuta el comando dentro de una transacción: verifica stock, minta
// números de venta y factura, calcula totales, persiste la venta con sus
// líneas y registra un movimiento "venta" por cada línea.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Sale, error) {
	if in.OrganizationID == "" || in.ClientID == "" || len(in.Items) == 0 {
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

	var sale *entity.Sale
	err = uc.txRunner.Run(ctx, func(r *ports.TxRepos) error {
		var err error
		sale, err = uc.CreateInTx(r, in, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// CreateInTx arma la venta usando los repositorios de la transacción del
// caller. Lo usa Create y la conversión de cotizaciones (misma atomicidad).
func (uc *UseCase) CreateInTx(r *ports.TxRepos, in CreateInput, now time.Time) (*entity.Sale, error) {
	// Verificación de stock antes de cualquier mutación: si una línea no
	// alcanza, la operación completa se rechaza sin tocar el libro.
	products := make(map[string]*entity.Product, len(in.Items))
	for _, item := range in.Items {
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
		if !product.Type.Sellable() {
			return nil, domain.ErrInvalidProductType
		}
		if item.Quantity > product.Stock {
			return nil, domain.ErrInsufficientStock
		}
		products[item.ProductID] = product
	}

	saleNumber, err := uc.numbers.Next(r.Counters, in.OrganizationID, entity.DocSale, now)
	if err != nil {
		return nil, err
	}
	invoiceNumber, err := uc.numbers.Next(r.Counters, in.OrganizationID, entity.DocInvoice, now)
	if err != nil {
		return nil, err
	}

	// Totales: subtotal por línea con su descuento, descuento global en monto,
	// impuesto sobre el subtotal ya descontado.
	subtotal := decimal.Zero
	lineSubtotals := make([]decimal.Decimal, len(in.Items))
	for i, item := range in.Items {
		line := decimal.NewFromInt(int64(item.Quantity)).Mul(item.UnitPrice)
		if item.DiscountPercent.IsPositive() {
			line = line.Sub(line.Mul(item.DiscountPercent).Div(oneHundred))
		}
		lineSubtotals[i] = line
		subtotal = subtotal.Add(line)
	}
	subtotalAfterDiscount := subtotal.Sub(in.DiscountAmount)
	taxAmount := subtotalAfterDiscount.Mul(in.TaxRate).Div(oneHundred)
	total := subtotalAfterDiscount.Add(taxAmount)

	status, paidAmount, balance := deriveStatus(in.Status, in.PaymentMethod, in.PaidAmount, total)

	sale := &entity.Sale{
		ID:             uuid.New().String(),
		OrganizationID: in.OrganizationID,
		Number:         saleNumber,
		InvoiceNumber:  invoiceNumber,
		QuotationID:    in.QuotationID,
		ClientID:       in.ClientID,
		CreatedBy:      in.UserID,
		Status:         status,
		SaleDate:       now,
		Subtotal:       subtotal,
		TaxRate:        in.TaxRate,
		TaxAmount:      taxAmount,
		DiscountAmount: in.DiscountAmount,
		Total:          total,
		PaidAmount:     paidAmount,
		Balance:        balance,

		PaymentMethod:    in.PaymentMethod,
		PaymentReference: in.PaymentRef,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := r.Sales.Create(sale); err != nil {
		return nil, fmt.Errorf("insertar venta: %w", err)
	}

	for i, item := range in.Items {
		product := products[item.ProductID]
		saleItem := &entity.SaleItem{
			ID:              uuid.New().String(),
			SaleID:          sale.ID,
			ProductID:       item.ProductID,
			ProductName:     product.Name,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			Subtotal:        lineSubtotals[i],
		}
		if err := r.Sales.CreateItem(saleItem); err != nil {
			return nil, fmt.Errorf("insertar línea de venta: %w", err)
		}
		sale.Items = append(sale.Items, saleItem)

		if _, err := uc.ledger.Apply(r, inventory.ApplyInput{
			OrganizationID: in.OrganizationID,
			UserID:         in.UserID,
			ProductID:      item.ProductID,
			Type:           entity.MovementVenta,
			Quantity:       item.Quantity,
			Reason:         fmt.Sprintf("Venta %s", saleNumber),
			Reference:      entity.MovementRef{Type: entity.RefSale, ID: sale.ID},
			Now:            now,
		}); err != nil {
			return nil, err
		}
	}
	return sale, nil
}

// deriveStatus aplica la política de estado/pago de una venta nueva.
// Un estado no reconocido cae al comportamiento por método de pago: crédito
// nace pendiente de pago, el resto nace completada.
func deriveStatus(status entity.SaleStatus, paymentMethod string, paid, total decimal.Decimal) (entity.SaleStatus, decimal.Decimal, decimal.Decimal) {
	switch status {
	case entity.SaleCompletada:
		return entity.SaleCompletada, total, decimal.Zero
	case entity.SaleParcial:
		if !paid.IsPositive() {
			paid = decimal.Zero
		}
		return entity.SaleParcial, paid, total.Sub(paid)
	case entity.SalePendientePago:
		return entity.SalePendientePago, decimal.Zero, total
	case entity.SaleCancelada:
		return entity.SaleCancelada, decimal.Zero, decimal.Zero
	}
	if paymentMethod == entity.PaymentCredito {
		return entity.SalePendientePago, decimal.Zero, total
	}
	return entity.SaleCompletada, total, decimal.Zero
}

// Cancel cancela una venta. Solo la primera transición a cancelada devuelve el
// stock (un movimiento "devolucion" por línea referenciando la cancelación);
// cancelar dos veces no duplica devoluciones. Fuerza paid_amount y balance a 0.
func (uc *UseCase) Cancel(ctx context.Context, organizationID, userID, saleID string) (*entity.Sale, error) {
	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(r *ports.TxRepos) error {
		var err error
		sale, err = r.Sales.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.OrganizationID != organizationID {
			return domain.ErrForbidden
		}
		now := time.Now()
		if sale.Status != entity.SaleCancelada {
			for _, item := range sale.Items {
				if _, err := uc.ledger.Apply(r, inventory.ApplyInput{
					OrganizationID: organizationID,
					UserID:         userID,
					ProductID:      item.ProductID,
					Type:           entity.MovementDevolucion,
					Quantity:       item.Quantity,
					Reason:         fmt.Sprintf("Cancelación de venta %s", sale.Number),
					Reference:      entity.MovementRef{Type: entity.RefSaleCancellation, ID: sale.ID},
					Now:            now,
				}); err != nil {
					return err
				}
			}
		}
		sale.Status = entity.SaleCancelada
		sale.PaidAmount = decimal.Zero
		sale.Balance = decimal.Zero
		sale.UpdatedAt = now
		return r.Sales.Update(sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// PaymentInput comando para registrar un pago contra una venta.
type PaymentInput struct {
	OrganizationID string
	SaleID         string
	Amount         decimal.Decimal
	PaymentMethod  string
	Reference      string
	Notes          string
}

// AddPayment agrega un pago inmutable y recalcula paid_amount, balance y
// estado. Un pago que exceda el balance pendiente se rechaza: paid_amount
// nunca supera el total.
func (uc *UseCase) AddPayment(ctx context.Context, in PaymentInput) (*entity.Payment, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	var payment *entity.Payment
	err := uc.txRunner.Run(ctx, func(r *ports.TxRepos) error {
		sale, err := r.Sales.GetByID(in.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.OrganizationID != in.OrganizationID {
			return domain.ErrForbidden
		}
		if sale.Status == entity.SaleCancelada {
			return domain.ErrInvalidStatus
		}
		if in.Amount.GreaterThan(sale.Balance) {
			return domain.ErrPaymentExceedsBalance
		}

		now := time.Now()
		payment = &entity.Payment{
			ID:             uuid.New().String(),
			OrganizationID: in.OrganizationID,
			SaleID:         sale.ID,
			Amount:         in.Amount,
			PaymentMethod:  in.PaymentMethod,
			Reference:      in.Reference,
			Notes:          in.Notes,
			PaymentDate:    now,
			CreatedAt:      now,
		}
		if err := r.Sales.CreatePayment(payment); err != nil {
			return fmt.Errorf("insertar pago: %w", err)
		}

		sale.PaidAmount = sale.PaidAmount.Add(in.Amount)
		sale.Balance = sale.Total.Sub(sale.PaidAmount)
		if sale.Balance.IsZero() {
			sale.Status = entity.SaleCompletada
		} else if sale.PaidAmount.IsPositive() {
			sale.Status = entity.SaleParcial
		}
		sale.UpdatedAt = now
		return r.Sales.Update(sale)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// Get obtiene una venta con sus líneas, validando la organización.
func (uc *UseCase) Get(organizationID, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.OrganizationID != organizationID {
		return nil, domain.ErrForbidden
	}
	return sale, nil
}

// List lista ventas de la organización, opcionalmente por estado.
func (uc *UseCase) List(organizationID string, status entity.SaleStatus, limit, offset int) ([]*entity.Sale, error) {
	return uc.saleRepo.List(organizationID, status, limit, offset)
}

// ListPayments pagos de una venta, validando la organización.
func (uc *UseCase) ListPayments(organizationID, saleID string) ([]*entity.Payment, error) {
	if _, err := uc.Get(organizationID, saleID); err != nil {
		return nil, err
	}
	return uc.saleRepo.ListPayments(saleID)
}
