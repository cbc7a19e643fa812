package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/agromarket-api/internal/domain/entity"
	"github.com/jhoicas/agromarket-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo lectura de perfiles de proveedor sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador (pool o tx).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// GetByID obtiene un proveedor. Devuelve (nil, nil) si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx, `
		SELECT id, user_id, company_name, contact_name, phone, email, address, description
		FROM suppliers WHERE id = $1`, id,
	).Scan(&s.ID, &s.UserID, &s.CompanyName, &s.ContactName, &s.Phone, &s.Email, &s.Address, &s.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// Create inserta un proveedor y completa su ID.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO suppliers (user_id, company_name, contact_name, phone, email, address, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		s.UserID, s.CompanyName, s.ContactName, s.Phone, s.Email, s.Address, s.Description,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}
