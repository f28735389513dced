package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, category, description, sku, is_active, created_at, updated_at`

// Create persiste un producto. SKU único.
func (r *ProductRepo) Create(product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Category, product.Description,
		product.SKU, product.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.getOne(query, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.getOne(query, sku)
}

// List lista productos, opcionalmente solo activos.
func (r *ProductRepo) List(onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if onlyActive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.SKU,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category = $3, description = $4, sku = $5,
			is_active = $6, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Category, product.Description,
		product.SKU, product.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Name, &p.Category, &p.Description, &p.SKU,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

var _ repository.PackSizeRepository = (*PackSizeRepo)(nil)

// PackSizeRepo implementación sobre PostgreSQL (usable con pool o tx).
type PackSizeRepo struct {
	q Querier
}

// NewPackSizeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPackSizeRepository(q Querier) *PackSizeRepo {
	return &PackSizeRepo{q: q}
}

const packColumns = `id, product_id, label, sku, unit, is_active, created_at, updated_at`

// Create persiste una presentación. SKU único.
func (r *PackSizeRepo) Create(pack *entity.PackSize) error {
	if pack.ID == "" {
		pack.ID = uuid.New().String()
	}
	query := `
		INSERT INTO pack_sizes (` + packColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		pack.ID, pack.ProductID, pack.Label, pack.SKU, pack.Unit, pack.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create pack size: %w", err)
	}
	return nil
}

// GetByID obtiene una presentación por ID.
func (r *PackSizeRepo) GetByID(id string) (*entity.PackSize, error) {
	query := `SELECT ` + packColumns + ` FROM pack_sizes WHERE id = $1`
	var p entity.PackSize
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.ProductID, &p.Label, &p.SKU, &p.Unit, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pack size: %w", err)
	}
	return &p, nil
}

// ListByProduct lista las presentaciones de un producto.
func (r *PackSizeRepo) ListByProduct(productID string) ([]*entity.PackSize, error) {
	query := `SELECT ` + packColumns + ` FROM pack_sizes WHERE product_id = $1 ORDER BY label`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list pack sizes: %w", err)
	}
	defer rows.Close()
	var list []*entity.PackSize
	for rows.Next() {
		var p entity.PackSize
		if err := rows.Scan(&p.ID, &p.ProductID, &p.Label, &p.SKU, &p.Unit,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pack size: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza una presentación.
func (r *PackSizeRepo) Update(pack *entity.PackSize) error {
	query := `
		UPDATE pack_sizes SET label = $2, sku = $3, unit = $4, is_active = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		pack.ID, pack.Label, pack.SKU, pack.Unit, pack.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update pack size: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
