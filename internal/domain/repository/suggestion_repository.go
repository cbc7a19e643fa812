package repository

import (
	"context"

	"github.com/jhoicas/agromarket-api/internal/domain/entity"
)

// SuggestionRepository historial append-only de sugerencias de precio y logística.
// No existen operaciones de actualización: las filas son inmutables.
type SuggestionRepository interface {
	RecordPriceSuggestion(ctx context.Context, s *entity.PriceSuggestion) error
	RecordLogisticsEstimate(ctx context.Context, e *entity.LogisticsEstimate) error
	// ClearSuggestions borra el historial de ambos tipos del producto y devuelve las filas eliminadas.
	ClearSuggestions(ctx context.Context, productID int64) (int64, error)
	// ListPriceSuggestions y ListLogisticsEstimates devuelven las más recientes primero; limit 0 = sin límite.
	ListPriceSuggestions(ctx context.Context, productID int64, limit int) ([]*entity.PriceSuggestion, error)
	ListLogisticsEstimates(ctx context.Context, productID int64, limit int) ([]*entity.LogisticsEstimate, error)
	// LatestLogisticsEstimate devuelve (nil, nil) si no hay estimaciones.
	LatestLogisticsEstimate(ctx context.Context, productID int64) (*entity.LogisticsEstimate, error)
}
