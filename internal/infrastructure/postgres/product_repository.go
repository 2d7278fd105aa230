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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, organization_id, sku, name, description, type, price,
	rental_price_daily, rental_price_weekly, rental_price_monthly, cost,
	stock, stock_available, min_stock, location, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.OrganizationID, product.SKU, product.Name, product.Description,
		product.Type, product.Price, product.RentalPriceDaily, product.RentalPriceWeekly,
		product.RentalPriceMonthly, product.Cost, product.Stock, product.StockAvailable,
		product.MinStock, product.Location, product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el producto bloqueando su fila dentro de la transacción
// en curso. Toda mutación de stock parte de aquí.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetBySKU obtiene un producto por organización y SKU.
func (r *ProductRepo) GetBySKU(organizationID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE organization_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, organizationID, sku))
}

// ListByOrganization lista productos de la organización con paginación.
func (r *ProductRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListLowStock productos activos con stock en o bajo su mínimo.
func (r *ProductRepo) ListLowStock(organizationID string) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE organization_id = $1 AND is_active AND stock <= min_stock
		ORDER BY stock ASC`
	rows, err := r.q.Query(context.Background(), query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Update persiste los campos editables. Los contadores de stock no aparecen:
// solo los escribe UpdateStock.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, name = $3, description = $4, type = $5, price = $6,
			rental_price_daily = $7, rental_price_weekly = $8, rental_price_monthly = $9,
			cost = $10, min_stock = $11, location = $12, is_active = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description, product.Type,
		product.Price, product.RentalPriceDaily, product.RentalPriceWeekly,
		product.RentalPriceMonthly, product.Cost, product.MinStock, product.Location,
		product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock escribe ambos contadores de una vez (usado por el motor de
// inventario, con la fila ya bloqueada).
func (r *ProductRepo) UpdateStock(id string, stock, stockAvailable int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, stock_available = $3, updated_at = now() WHERE id = $1`,
		id, stock, stockAvailable,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// HasReferences reporta si el producto aparece en documentos o movimientos.
func (r *ProductRepo) HasReferences(id string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM sale_items WHERE product_id = $1)
			OR EXISTS (SELECT 1 FROM rental_items WHERE product_id = $1)
			OR EXISTS (SELECT 1 FROM rentals WHERE product_id = $1)
			OR EXISTS (SELECT 1 FROM quotation_items WHERE product_id = $1)
			OR EXISTS (SELECT 1 FROM inventory_movements WHERE product_id = $1)`
	var referenced bool
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&referenced); err != nil {
		return false, fmt.Errorf("check product references: %w", err)
	}
	return referenced, nil
}

// Deactivate desactiva el producto preservando su historial.
func (r *ProductRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	return nil
}

// Delete borra físicamente un producto sin referencias.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.SKU, &p.Name, &p.Description, &p.Type, &p.Price,
		&p.RentalPriceDaily, &p.RentalPriceWeekly, &p.RentalPriceMonthly, &p.Cost,
		&p.Stock, &p.StockAvailable, &p.MinStock, &p.Location, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) scanAll(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.OrganizationID, &p.SKU, &p.Name, &p.Description, &p.Type, &p.Price,
			&p.RentalPriceDaily, &p.RentalPriceWeekly, &p.RentalPriceMonthly, &p.Cost,
			&p.Stock, &p.StockAvailable, &p.MinStock, &p.Location, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
