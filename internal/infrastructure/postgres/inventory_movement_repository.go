package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `id, organization_id, product_id, user_id, type, quantity,
	previous_stock, new_stock, reference_type, reference_id, reason, created_at`

// InventoryMovementRepo persistencia del libro de inventario. Solo inserta y
// lista: los movimientos nunca se actualizan ni borran.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *InventoryMovementRepo) Create(m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.OrganizationID, m.ProductID, m.UserID, m.Type, m.Quantity,
		m.PreviousStock, m.NewStock, nullIfEmpty(m.ReferenceType), nullIfEmpty(m.ReferenceID),
		m.Reason, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByProduct movimientos de un producto, del más reciente al más antiguo.
func (r *InventoryMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByOrganization movimientos de la organización.
func (r *InventoryMovementRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.InventoryMovement, error) {
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var refType, refID *string
		if err := rows.Scan(
			&m.ID, &m.OrganizationID, &m.ProductID, &m.UserID, &m.Type, &m.Quantity,
			&m.PreviousStock, &m.NewStock, &refType, &refID, &m.Reason, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if refType != nil {
			m.ReferenceType = *refType
		}
		if refID != nil {
			m.ReferenceID = *refID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// nullIfEmpty convierte "" en NULL para columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
