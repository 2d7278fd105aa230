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

var _ repository.RentalRepository = (*RentalRepo)(nil)

const rentalColumns = `id, organization_id, number, quotation_id, client_id, created_by, status,
	product_id, rental_price, start_date, end_date, actual_return_date, period,
	deposit, tax_rate, discount, discount_percent, total_cost, paid_amount, balance,
	payment_status, payment_method, notes, condition_out, condition_in, created_at, updated_at`

// RentalRepo implementación del puerto RentalRepository sobre PostgreSQL
// (usable con pool o tx).
type RentalRepo struct {
	q Querier
}

// NewRentalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRentalRepository(q Querier) *RentalRepo {
	return &RentalRepo{q: q}
}

// Create inserta la cabecera de un alquiler.
func (r *RentalRepo) Create(rental *entity.Rental) error {
	query := `
		INSERT INTO rentals (` + rentalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`
	_, err := r.q.Exec(context.Background(), query,
		rental.ID, rental.OrganizationID, rental.Number, rental.QuotationID, rental.ClientID,
		rental.CreatedBy, rental.Status, rental.ProductID, rental.RentalPrice,
		rental.StartDate, rental.EndDate, rental.ActualReturnDate, rental.Period,
		rental.Deposit, rental.TaxRate, rental.Discount, rental.DiscountPercent,
		rental.TotalCost, rental.PaidAmount, rental.Balance, rental.PaymentStatus,
		rental.PaymentMethod, rental.Notes, rental.ConditionOut, rental.ConditionIn,
		rental.CreatedAt, rental.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert rental: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de alquiler multi-producto.
func (r *RentalRepo) CreateItem(item *entity.RentalItem) error {
	query := `
		INSERT INTO rental_items (id, organization_id, rental_id, product_id, product_name, quantity, rental_days, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrganizationID, item.RentalID, item.ProductID, item.ProductName,
		item.Quantity, item.RentalDays, item.UnitPrice, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert rental item: %w", err)
	}
	return nil
}

// GetByID obtiene un alquiler con sus líneas.
func (r *RentalRepo) GetByID(id string) (*entity.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rental, err := scanRental(r.q.QueryRow(context.Background(), query, id))
	if err != nil || rental == nil {
		return rental, err
	}
	items, err := r.listItems(rental.ID)
	if err != nil {
		return nil, err
	}
	rental.Items = items
	return rental, nil
}

// List lista alquileres de la organización, opcionalmente por estado.
func (r *RentalRepo) List(organizationID string, status entity.RentalStatus, limit, offset int) ([]*entity.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE organization_id = $1`
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
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	defer rows.Close()

	var list []*entity.Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rental)
	}
	return list, rows.Err()
}

// Update persiste la cabecera (estado, cobro, devolución).
func (r *RentalRepo) Update(rental *entity.Rental) error {
	query := `
		UPDATE rentals SET status = $2, start_date = $3, end_date = $4, actual_return_date = $5,
			deposit = $6, discount = $7, discount_percent = $8, total_cost = $9,
			paid_amount = $10, balance = $11, payment_status = $12, payment_method = $13,
			notes = $14, condition_out = $15, condition_in = $16, updated_at = $17
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		rental.ID, rental.Status, rental.StartDate, rental.EndDate, rental.ActualReturnDate,
		rental.Deposit, rental.Discount, rental.DiscountPercent, rental.TotalCost,
		rental.PaidAmount, rental.Balance, rental.PaymentStatus, rental.PaymentMethod,
		rental.Notes, rental.ConditionOut, rental.ConditionIn, rental.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update rental: %w", err)
	}
	return nil
}

// CreatePayment inserta un pago. Los pagos nunca se actualizan ni borran.
func (r *RentalRepo) CreatePayment(payment *entity.RentalPayment) error {
	query := `
		INSERT INTO rental_payments (id, organization_id, rental_id, amount, payment_method, reference, notes, payment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.OrganizationID, payment.RentalID, payment.Amount,
		payment.PaymentMethod, payment.Reference, payment.Notes,
		payment.PaymentDate, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert rental payment: %w", err)
	}
	return nil
}

// ListPayments pagos de un alquiler, en orden de aplicación.
func (r *RentalRepo) ListPayments(rentalID string) ([]*entity.RentalPayment, error) {
	query := `
		SELECT id, organization_id, rental_id, amount, payment_method, reference, notes, payment_date, created_at
		FROM rental_payments WHERE rental_id = $1 ORDER BY payment_date ASC`
	rows, err := r.q.Query(context.Background(), query, rentalID)
	if err != nil {
		return nil, fmt.Errorf("list rental payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.RentalPayment
	for rows.Next() {
		var p entity.RentalPayment
		if err := rows.Scan(
			&p.ID, &p.OrganizationID, &p.RentalID, &p.Amount, &p.PaymentMethod,
			&p.Reference, &p.Notes, &p.PaymentDate, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rental payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// MarkOverdue pasa a vencido los alquileres activos con end_date en el pasado.
func (r *RentalRepo) MarkOverdue(organizationID string, now time.Time) (int, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE rentals SET status = $3, updated_at = $4
		 WHERE organization_id = $1 AND status = $2 AND end_date < $4`,
		organizationID, entity.RentalActivo, entity.RentalVencido, now,
	)
	if err != nil {
		return 0, fmt.Errorf("mark overdue rentals: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

func (r *RentalRepo) listItems(rentalID string) ([]*entity.RentalItem, error) {
	query := `
		SELECT id, organization_id, rental_id, product_id, product_name, quantity, rental_days, unit_price, created_at
		FROM rental_items WHERE rental_id = $1 ORDER BY product_name`
	rows, err := r.q.Query(context.Background(), query, rentalID)
	if err != nil {
		return nil, fmt.Errorf("list rental items: %w", err)
	}
	defer rows.Close()

	var items []*entity.RentalItem
	for rows.Next() {
		var item entity.RentalItem
		if err := rows.Scan(
			&item.ID, &item.OrganizationID, &item.RentalID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.RentalDays, &item.UnitPrice, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rental item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func scanRental(row pgx.Row) (*entity.Rental, error) {
	var rental entity.Rental
	err := row.Scan(
		&rental.ID, &rental.OrganizationID, &rental.Number, &rental.QuotationID, &rental.ClientID,
		&rental.CreatedBy, &rental.Status, &rental.ProductID, &rental.RentalPrice,
		&rental.StartDate, &rental.EndDate, &rental.ActualReturnDate, &rental.Period,
		&rental.Deposit, &rental.TaxRate, &rental.Discount, &rental.DiscountPercent,
		&rental.TotalCost, &rental.PaidAmount, &rental.Balance, &rental.PaymentStatus,
		&rental.PaymentMethod, &rental.Notes, &rental.ConditionOut, &rental.ConditionIn,
		&rental.CreatedAt, &rental.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan rental: %w", err)
	}
	return &rental, nil
}
