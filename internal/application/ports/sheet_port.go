package ports

import (
	"context"
	"time"

	"github.com/jhoicas/agromarket-api/internal/domain/entity"
)

// ProductSheet datos que alimentan la ficha PDF de un producto.
type ProductSheet struct {
	Product     *entity.Product
	Supplier    *entity.Supplier // puede ser nil
	Prices      []*entity.PriceSuggestion
	Logistics   []*entity.LogisticsEstimate
	PageURL     string // destino del código QR
	GeneratedAt time.Time
}

// ProductSheetGenerator puerto de salida para generar la ficha del producto en PDF.
type ProductSheetGenerator interface {
	GenerateProductSheet(ctx context.Context, sheet ProductSheet) ([]byte, error)
}
