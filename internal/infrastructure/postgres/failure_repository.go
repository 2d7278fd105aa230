package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/domain/repository"
)

var _ repository.FailureRepository = (*FailureRepo)(nil)

const failureColumns = `id, organization_id, user_id, error_type, severity, module, endpoint,
	method, error_code, error_message, error_detail, is_resolved, resolved_at, resolved_by, created_at`

// FailureRepo implementación del puerto FailureRepository sobre PostgreSQL.
type FailureRepo struct {
	q Querier
}

// NewFailureRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFailureRepository(q Querier) *FailureRepo {
	return &FailureRepo{q: q}
}

// Create persiste una nueva falla.
func (r *FailureRepo) Create(failure *entity.SystemFailure) error {
	query := `
		INSERT INTO system_failures (` + failureColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		failure.ID, failure.OrganizationID, failure.UserID, failure.ErrorType,
		failure.Severity, failure.Module, failure.Endpoint, failure.Method,
		failure.ErrorCode, failure.ErrorMessage, failure.ErrorDetail,
		failure.IsResolved, failure.ResolvedAt, failure.ResolvedBy, failure.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert failure: %w", err)
	}
	return nil
}

// GetByID obtiene una falla por ID.
func (r *FailureRepo) GetByID(id string) (*entity.SystemFailure, error) {
	query := `SELECT ` + failureColumns + ` FROM system_failures WHERE id = $1`
	var f entity.SystemFailure
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.OrganizationID, &f.UserID, &f.ErrorType, &f.Severity, &f.Module,
		&f.Endpoint, &f.Method, &f.ErrorCode, &f.ErrorMessage, &f.ErrorDetail,
		&f.IsResolved, &f.ResolvedAt, &f.ResolvedBy, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get failure: %w", err)
	}
	return &f, nil
}

// List lista fallas de la organización, las más recientes primero. Severidad
// vacía no filtra; onlyUnresolved excluye las ya resueltas.
func (r *FailureRepo) List(organizationID string, severity entity.FailureSeverity, onlyUnresolved bool, limit, offset int) ([]*entity.SystemFailure, error) {
	query := `SELECT ` + failureColumns + ` FROM system_failures WHERE organization_id = $1`
	args := []any{organizationID}
	if severity != "" {
		args = append(args, severity)
		query += fmt.Sprintf(" AND severity = $%d", len(args))
	}
	if onlyUnresolved {
		query += " AND is_resolved = false"
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list failures: %w", err)
	}
	defer rows.Close()

	var list []*entity.SystemFailure
	for rows.Next() {
		var f entity.SystemFailure
		if err := rows.Scan(
			&f.ID, &f.OrganizationID, &f.UserID, &f.ErrorType, &f.Severity, &f.Module,
			&f.Endpoint, &f.Method, &f.ErrorCode, &f.ErrorMessage, &f.ErrorDetail,
			&f.IsResolved, &f.ResolvedAt, &f.ResolvedBy, &f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Update persiste el estado de resolución de una falla.
func (r *FailureRepo) Update(failure *entity.SystemFailure) error {
	query := `
		UPDATE system_failures SET is_resolved = $2, resolved_at = $3, resolved_by = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		failure.ID, failure.IsResolved, failure.ResolvedAt, failure.ResolvedBy,
	)
	if err != nil {
		return fmt.Errorf("update failure: %w", err)
	}
	return nil
}

// Delete elimina una falla.
func (r *FailureRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM system_failures WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete failure: %w", err)
	}
	return nil
}
