package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

const quotationColumns = `id, organization_id, number, type, client_id, created_by, status,
	quotation_date, valid_until, start_date, end_date,
	subtotal, tax_rate, tax_amount, discount_percent, discount_amount, total,
	payment_method, notes, sale_id, rental_id, created_at, updated_at`

// QuotationRepo implementación del puerto QuotationRepository sobre PostgreSQL
// (usable con pool o tx).
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

// Create inserta la cabecera de una cotización.
func (r *QuotationRepo) Create(quotation *entity.Quotation) error {
	query := `
		INSERT INTO quotations (` + quotationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := r.q.Exec(context.Background(), query,
		quotation.ID, quotation.OrganizationID, quotation.Number, quotation.Type,
		quotation.ClientID, quotation.CreatedBy, quotation.Status,
		quotation.QuotationDate, quotation.ValidUntil, quotation.StartDate, quotation.EndDate,
		quotation.Subtotal, quotation.TaxRate, quotation.TaxAmount,
		quotation.DiscountPercent, quotation.DiscountAmount, quotation.Total,
		quotation.PaymentMethod, quotation.Notes, quotation.SaleID, quotation.RentalID,
		quotation.CreatedAt, quotation.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de cotización.
func (r *QuotationRepo) CreateItem(item *entity.QuotationItem) error {
	query := `
		INSERT INTO quotation_items (id, quotation_id, product_id, product_name, quantity, unit_price, discount_percent, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.QuotationID, item.ProductID, item.ProductName,
		item.Quantity, item.UnitPrice, item.DiscountPercent, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert quotation item: %w", err)
	}
	return nil
}

// GetByID obtiene una cotización con sus líneas.
func (r *QuotationRepo) GetByID(id string) (*entity.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations WHERE id = $1`
	quotation, err := scanQuotation(r.q.QueryRow(context.Background(), query, id))
	if err != nil || quotation == nil {
		return quotation, err
	}
	items, err := r.listItems(quotation.ID)
	if err != nil {
		return nil, err
	}
	quotation.Items = items
	return quotation, nil
}

// List lista cotizaciones de la organización, opcionalmente por estado.
func (r *QuotationRepo) List(organizationID string, status entity.QuotationStatus, limit, offset int) ([]*entity.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations WHERE organization_id = $1`
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
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Quotation
	for rows.Next() {
		quotation, err := scanQuotation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, quotation)
	}
	return list, rows.Err()
}

// Update persiste la cabecera (estado, fechas, totales, referencias de
// conversión).
func (r *QuotationRepo) Update(quotation *entity.Quotation) error {
	query := `
		UPDATE quotations SET status = $2, valid_until = $3, start_date = $4, end_date = $5,
			subtotal = $6, tax_rate = $7, tax_amount = $8, discount_percent = $9,
			discount_amount = $10, total = $11, payment_method = $12, notes = $13,
			sale_id = $14, rental_id = $15, updated_at = $16
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		quotation.ID, quotation.Status, quotation.ValidUntil, quotation.StartDate, quotation.EndDate,
		quotation.Subtotal, quotation.TaxRate, quotation.TaxAmount, quotation.DiscountPercent,
		quotation.DiscountAmount, quotation.Total, quotation.PaymentMethod, quotation.Notes,
		quotation.SaleID, quotation.RentalID, quotation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}
	return nil
}

// ReplaceItems elimina las líneas actuales y persiste las nuevas.
func (r *QuotationRepo) ReplaceItems(quotationID string, items []*entity.QuotationItem) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM quotation_items WHERE quotation_id = $1`, quotationID); err != nil {
		return fmt.Errorf("delete quotation items: %w", err)
	}
	for _, item := range items {
		if err := r.CreateItem(item); err != nil {
			return err
		}
	}
	return nil
}

// Delete elimina la cotización y sus líneas.
func (r *QuotationRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM quotation_items WHERE quotation_id = $1`, id); err != nil {
		return fmt.Errorf("delete quotation items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete quotation: %w", err)
	}
	return nil
}

// ExpirePending marca como vencidas las pendientes con valid_until en el pasado.
func (r *QuotationRepo) ExpirePending(organizationID string, now time.Time) (int, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE quotations SET status = $3, updated_at = $4
		 WHERE organization_id = $1 AND status = $2 AND valid_until IS NOT NULL AND valid_until < $4`,
		organizationID, entity.QuotationPendiente, entity.QuotationVencida, now,
	)
	if err != nil {
		return 0, fmt.Errorf("expire quotations: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

func (r *QuotationRepo) listItems(quotationID string) ([]*entity.QuotationItem, error) {
	query := `
		SELECT id, quotation_id, product_id, product_name, quantity, unit_price, discount_percent, subtotal
		FROM quotation_items WHERE quotation_id = $1 ORDER BY product_name`
	rows, err := r.q.Query(context.Background(), query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("list quotation items: %w", err)
	}
	defer rows.Close()

	var items []*entity.QuotationItem
	for rows.Next() {
		var item entity.QuotationItem
		if err := rows.Scan(
			&item.ID, &item.QuotationID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.DiscountPercent, &item.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("scan quotation item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func scanQuotation(row pgx.Row) (*entity.Quotation, error) {
	var q entity.Quotation
	err := row.Scan(
		&q.ID, &q.OrganizationID, &q.Number, &q.Type, &q.ClientID, &q.CreatedBy, &q.Status,
		&q.QuotationDate, &q.ValidUntil, &q.StartDate, &q.EndDate,
		&q.Subtotal, &q.TaxRate, &q.TaxAmount, &q.DiscountPercent, &q.DiscountAmount, &q.Total,
		&q.PaymentMethod, &q.Notes, &q.SaleID, &q.RentalID, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan quotation: %w", err)
	}
	return &q, nil
}
