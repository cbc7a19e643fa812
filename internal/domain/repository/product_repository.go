package repository

import (
	"context"

	"github.com/jhoicas/agromarket-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListBySupplier(ctx context.Context, supplierID int64) ([]*entity.Product, error)
	// UpdateDescriptions escribe ambas descripciones en una sola operación.
	UpdateDescriptions(ctx context.Context, id int64, en, zh string) error
	SetActive(ctx context.Context, id int64, active bool) error
}
