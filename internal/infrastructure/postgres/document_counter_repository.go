package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jmarte/equimed-api/internal/application/numbering"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/domain/repository"
)

var _ repository.DocumentCounterRepository = (*DocumentCounterRepo)(nil)

// DocumentCounterRepo consecutivo de documentos por organización y tipo.
// Siempre se usa dentro de una transacción: NextValue bloquea la fila del
// contador para que dos emisiones concurrentes no repitan número.
type DocumentCounterRepo struct {
	q Querier
}

// NewDocumentCounterRepository construye el adaptador. Pasar la tx (Querier).
func NewDocumentCounterRepository(q Querier) *DocumentCounterRepo {
	return &DocumentCounterRepo{q: q}
}

// numberSource tabla y columna donde viven los números ya emitidos de cada
// tipo de documento.
func numberSource(kind entity.DocumentKind) (table, column string) {
	switch kind {
	case entity.DocQuotation:
		return "quotations", "number"
	case entity.DocSale:
		return "sales", "number"
	case entity.DocInvoice:
		return "sales", "invoice_number"
	case entity.DocRental:
		return "rentals", "number"
	}
	return "", ""
}

// NextValue incrementa y devuelve el consecutivo del tipo de documento,
// bloqueando la fila del contador. La primera vez siembra el contador con el
// máximo consecutivo de los documentos ya emitidos, para no colisionar con
// números históricos anteriores al contador.
func (r *DocumentCounterRepo) NextValue(organizationID string, kind entity.DocumentKind) (int, error) {
	ctx := context.Background()
	var value int
	err := r.q.QueryRow(ctx,
		`SELECT value FROM document_counters WHERE organization_id = $1 AND kind = $2 FOR UPDATE`,
		organizationID, kind,
	).Scan(&value)
	if err == nil {
		value++
		if _, err := r.q.Exec(ctx,
			`UPDATE document_counters SET value = $3, updated_at = now() WHERE organization_id = $1 AND kind = $2`,
			organizationID, kind, value,
		); err != nil {
			return 0, fmt.Errorf("update counter: %w", err)
		}
		return value, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("lock counter: %w", err)
	}

	seed, err := r.maxIssued(ctx, organizationID, kind)
	if err != nil {
		return 0, err
	}
	value = seed + 1
	if _, err := r.q.Exec(ctx,
		`INSERT INTO document_counters (organization_id, kind, value, updated_at)
		 VALUES ($1, $2, $3, now())`,
		organizationID, kind, value,
	); err != nil {
		return 0, fmt.Errorf("seed counter: %w", err)
	}
	return value, nil
}

// maxIssued máximo consecutivo ya emitido para el tipo de documento. Los
// números con sufijo no numérico se ignoran.
func (r *DocumentCounterRepo) maxIssued(ctx context.Context, organizationID string, kind entity.DocumentKind) (int, error) {
	table, column := numberSource(kind)
	if table == "" {
		return 0, fmt.Errorf("tipo de documento desconocido: %s", kind)
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE organization_id = $1`, column, table)
	rows, err := r.q.Query(ctx, query, organizationID)
	if err != nil {
		return 0, fmt.Errorf("scan issued numbers: %w", err)
	}
	defer rows.Close()

	maxSeq := 0
	for rows.Next() {
		var number *string
		if err := rows.Scan(&number); err != nil {
			return 0, fmt.Errorf("scan number: %w", err)
		}
		if number == nil {
			continue
		}
		if n, ok := numbering.ParseSequence(*number); ok && n > maxSeq {
			maxSeq = n
		}
	}
	return maxSeq, rows.Err()
}

// Exists verifica si ya existe un documento de ese tipo con ese número.
func (r *DocumentCounterRepo) Exists(organizationID string, kind entity.DocumentKind, number string) (bool, error) {
	table, column := numberSource(kind)
	if table == "" {
		return false, fmt.Errorf("tipo de documento desconocido: %s", kind)
	}
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE organization_id = $1 AND %s = $2)`, table, column)
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, organizationID, number).Scan(&exists); err != nil {
		return false, fmt.Errorf("check number: %w", err)
	}
	return exists, nil
}
