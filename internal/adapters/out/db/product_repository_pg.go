// internal/adapters/out/db/product_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	proddom "luxe/internal/domain/product"
)

// ProductRepositoryPG is a PostgreSQL implementation of product.Repository.
// Used as an alternative catalog backend when CATALOG_POSTGRES_DSN is set.
type ProductRepositoryPG struct {
	DB *sql.DB
}

func NewProductRepositoryPG(db *sql.DB) *ProductRepositoryPG {
	return &ProductRepositoryPG{DB: db}
}

const productColumns = `
  id, name, price, description, images, sizes, categories,
  sale_price, sale_percentage, created_at, updated_at`

func (r *ProductRepositoryPG) GetAll(ctx context.Context) ([]proddom.Product, error) {
	const q = `
SELECT` + productColumns + `
FROM products
ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *ProductRepositoryPG) GetByCategory(ctx context.Context, category string) ([]proddom.Product, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return r.GetAll(ctx)
	}

	const q = `
SELECT` + productColumns + `
FROM products
WHERE $1 = ANY(categories)
ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, q, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *ProductRepositoryPG) GetByID(ctx context.Context, id string) (proddom.Product, error) {
	const q = `
SELECT` + productColumns + `
FROM products
WHERE id = $1`

	row := r.DB.QueryRowContext(ctx, q, strings.TrimSpace(id))
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return proddom.Product{}, proddom.ErrNotFound
		}
		return proddom.Product{}, err
	}
	return p, nil
}

func (r *ProductRepositoryPG) Create(ctx context.Context, v proddom.Product) (proddom.Product, error) {
	if strings.TrimSpace(v.ID) == "" {
		v.ID = uuid.NewString()
	}

	const q = `
INSERT INTO products (
  id, name, price, description, images, sizes, categories,
  sale_price, sale_percentage, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.DB.ExecContext(ctx, q,
		v.ID, v.Name, v.Price, v.Description,
		pq.Array(v.Images), pq.Array(v.Sizes), pq.Array(v.Categories),
		v.SalePrice, v.SalePercentage, v.CreatedAt.UTC(), v.UpdatedAt.UTC(),
	)
	if err != nil {
		return proddom.Product{}, err
	}
	return v, nil
}

func (r *ProductRepositoryPG) Update(ctx context.Context, v proddom.Product) error {
	const q = `
UPDATE products SET
  name = $2, price = $3, description = $4,
  images = $5, sizes = $6, categories = $7,
  sale_price = $8, sale_percentage = $9, updated_at = $10
WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, q,
		strings.TrimSpace(v.ID), v.Name, v.Price, v.Description,
		pq.Array(v.Images), pq.Array(v.Sizes), pq.Array(v.Categories),
		v.SalePrice, v.SalePercentage, v.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return proddom.ErrNotFound
	}
	return nil
}

func (r *ProductRepositoryPG) DeleteByID(ctx context.Context, id string) error {
	const q = `DELETE FROM products WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, q, strings.TrimSpace(id))
	return err
}

// rowScanner abstracts *sql.Row and *sql.Rows for scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (proddom.Product, error) {
	var (
		p       proddom.Product
		desc    sql.NullString
		salePx  sql.NullFloat64
		salePct sql.NullInt64
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &desc,
		pq.Array(&p.Images), pq.Array(&p.Sizes), pq.Array(&p.Categories),
		&salePx, &salePct, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return proddom.Product{}, err
	}

	p.Description = desc.String
	if salePx.Valid {
		v := salePx.Float64
		p.SalePrice = &v
	}
	if salePct.Valid {
		v := int(salePct.Int64)
		p.SalePercentage = &v
	}
	return p, nil
}

func collectProducts(rows *sql.Rows) ([]proddom.Product, error) {
	items := make([]proddom.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
