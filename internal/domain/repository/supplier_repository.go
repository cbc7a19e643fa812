package repository

import (
	"context"

	"github.com/jhoicas/agromarket-api/internal/domain/entity"
)

// SupplierRepository lectura de perfiles de proveedor. GetByID devuelve (nil, nil) si no existe.
type SupplierRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Supplier, error)
}
