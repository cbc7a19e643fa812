package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/agromarket-api/internal/domain"
	"github.com/jhoicas/agromarket-api/internal/domain/entity"
	"github.com/jhoicas/agromarket-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, supplier_id, name, category, unit, stock, base_price,
	ai_description_en, ai_description_zh, is_active, created_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SupplierID, &p.Name, &p.Category, &p.Unit, &p.Stock, &p.BasePrice,
		&p.DescriptionEN, &p.DescriptionZH, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListAll todos los productos (activos o no) ordenados por id.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

// ListActive catálogo público, más recientes primero.
func (r *ProductRepo) ListActive(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products
		WHERE is_active ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`, limit, offset)
}

// ListBySupplier productos de un proveedor, más recientes primero.
func (r *ProductRepo) ListBySupplier(ctx context.Context, supplierID int64) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products
		WHERE supplier_id = $1 ORDER BY created_at DESC, id`, supplierID)
}

// UpdateDescriptions escribe ambas descripciones en un solo UPDATE.
func (r *ProductRepo) UpdateDescriptions(ctx context.Context, id int64, en, zh string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET ai_description_en = $2, ai_description_zh = $3 WHERE id = $1`, id, en, zh)
	if err != nil {
		return fmt.Errorf("update descriptions: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive publica o retira un producto del catálogo.
func (r *ProductRepo) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Create inserta un producto y completa ID y CreatedAt. Lo usan la semilla de demo y los tests.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO products (supplier_id, name, category, unit, stock, base_price, ai_description_en, ai_description_zh, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		p.SupplierID, p.Name, p.Category, p.UnitOrDefault(), p.Stock, p.BasePrice,
		p.DescriptionEN, p.DescriptionZH, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("proveedor %d: %w", p.SupplierID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	p.Unit = p.UnitOrDefault()
	return nil
}
