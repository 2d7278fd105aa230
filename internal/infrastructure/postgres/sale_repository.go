package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, organization_id, number, invoice_number, quotation_id, client_id,
	created_by, status, sale_date, due_date,
	subtotal, tax_rate, tax_amount, discount_amount, total, paid_amount, balance,
	payment_method, payment_reference, notes, created_at, updated_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable
// con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera de una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.OrganizationID, sale.Number, sale.InvoiceNumber, sale.QuotationID,
		sale.ClientID, sale.CreatedBy, sale.Status, sale.SaleDate, sale.DueDate,
		sale.Subtotal, sale.TaxRate, sale.TaxAmount, sale.DiscountAmount, sale.Total,
		sale.PaidAmount, sale.Balance, sale.PaymentMethod, sale.PaymentReference,
		sale.Notes, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, product_name, quantity, unit_price, discount_percent, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.ProductName,
		item.Quantity, item.UnitPrice, item.DiscountPercent, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta con sus líneas.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	sale, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil || sale == nil {
		return sale, err
	}
	items, err := r.listItems(sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

// List lista ventas de la organización, opcionalmente por estado.
func (r *SaleRepo) List(organizationID string, status entity.SaleStatus, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE organization_id = $1`
	args := []any{organizationID}
	if status != "" {
		query += ` AND status = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`
		args = append(args, status, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, sale)
	}
	return list, rows.Err()
}

// Update persiste la cabecera (estado, cobro, notas).
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales SET status = $2, due_date = $3, paid_amount = $4, balance = $5,
			payment_method = $6, payment_reference = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Status, sale.DueDate, sale.PaidAmount, sale.Balance,
		sale.PaymentMethod, sale.PaymentReference, sale.Notes, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// CreatePayment inserta un pago. Los pagos nunca se actualizan ni borran.
func (r *SaleRepo) CreatePayment(payment *entity.Payment) error {
	query := `
		INSERT INTO sale_payments (id, organization_id, sale_id, amount, payment_method, reference, notes, payment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.OrganizationID, payment.SaleID, payment.Amount,
		payment.PaymentMethod, payment.Reference, payment.Notes,
		payment.PaymentDate, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale payment: %w", err)
	}
	return nil
}

// ListPayments pagos de una venta, en orden de aplicación.
func (r *SaleRepo) ListPayments(saleID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, organization_id, sale_id, amount, payment_method, reference, notes, payment_date, created_at
		FROM sale_payments WHERE sale_id = $1 ORDER BY payment_date ASC`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(
			&p.ID, &p.OrganizationID, &p.SaleID, &p.Amount, &p.PaymentMethod,
			&p.Reference, &p.Notes, &p.PaymentDate, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *SaleRepo) listItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price, discount_percent, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY product_name`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var items []*entity.SaleItem
	for rows.Next() {
		var item entity.SaleItem
		if err := rows.Scan(
			&item.ID, &item.SaleID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.DiscountPercent, &item.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.OrganizationID, &s.Number, &s.InvoiceNumber, &s.QuotationID, &s.ClientID,
		&s.CreatedBy, &s.Status, &s.SaleDate, &s.DueDate,
		&s.Subtotal, &s.TaxRate, &s.TaxAmount, &s.DiscountAmount, &s.Total,
		&s.PaidAmount, &s.Balance, &s.PaymentMethod, &s.PaymentReference,
		&s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	return &s, nil
}
