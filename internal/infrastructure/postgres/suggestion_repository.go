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

var _ repository.SuggestionRepository = (*SuggestionRepo)(nil)

// SuggestionRepo historial append-only de precio y logística sobre PostgreSQL.
type SuggestionRepo struct {
	q Querier
}

// NewSuggestionRepository construye el adaptador (pool o tx).
func NewSuggestionRepository(q Querier) *SuggestionRepo {
	return &SuggestionRepo{q: q}
}

// RecordPriceSuggestion inserta una sugerencia y completa ID y CreatedAt.
func (r *SuggestionRepo) RecordPriceSuggestion(ctx context.Context, s *entity.PriceSuggestion) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO price_suggestions (product_id, generation_id, suggested_price, rationale)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		s.ProductID, s.GenerationID, s.SuggestedPrice, s.Rationale,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto %d: %w", s.ProductID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert price suggestion: %w", err)
	}
	return nil
}

// RecordLogisticsEstimate inserta una estimación y completa ID y CreatedAt.
func (r *SuggestionRepo) RecordLogisticsEstimate(ctx context.Context, e *entity.LogisticsEstimate) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO logistics_estimates (product_id, generation_id, region, carrier, estimated_days, cost_estimate)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		e.ProductID, e.GenerationID, e.Region, e.Carrier, e.EstimatedDays, e.CostEstimate,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto %d: %w", e.ProductID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert logistics estimate: %w", err)
	}
	return nil
}

// ClearSuggestions borra ambos historiales del producto.
func (r *SuggestionRepo) ClearSuggestions(ctx context.Context, productID int64) (int64, error) {
	prices, err := r.q.Exec(ctx, `DELETE FROM price_suggestions WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete price suggestions: %w", err)
	}
	logistics, err := r.q.Exec(ctx, `DELETE FROM logistics_estimates WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete logistics estimates: %w", err)
	}
	return prices.RowsAffected() + logistics.RowsAffected(), nil
}

// ListPriceSuggestions las más recientes primero.
func (r *SuggestionRepo) ListPriceSuggestions(ctx context.Context, productID int64, limit int) ([]*entity.PriceSuggestion, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, generation_id, suggested_price, rationale, created_at
		FROM price_suggestions WHERE product_id = $1
		ORDER BY created_at DESC, id DESC LIMIT NULLIF($2, 0)`, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list price suggestions: %w", err)
	}
	defer rows.Close()

	var list []*entity.PriceSuggestion
	for rows.Next() {
		var s entity.PriceSuggestion
		if err := rows.Scan(&s.ID, &s.ProductID, &s.GenerationID, &s.SuggestedPrice, &s.Rationale, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan price suggestion: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

const logisticsColumns = `id, product_id, generation_id, region, carrier, estimated_days, cost_estimate, created_at`

func scanLogistics(row pgx.Row) (*entity.LogisticsEstimate, error) {
	var e entity.LogisticsEstimate
	if err := row.Scan(&e.ID, &e.ProductID, &e.GenerationID, &e.Region, &e.Carrier, &e.EstimatedDays, &e.CostEstimate, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListLogisticsEstimates las más recientes primero.
func (r *SuggestionRepo) ListLogisticsEstimates(ctx context.Context, productID int64, limit int) ([]*entity.LogisticsEstimate, error) {
	rows, err := r.q.Query(ctx, `SELECT `+logisticsColumns+` FROM logistics_estimates
		WHERE product_id = $1 ORDER BY created_at DESC, id DESC LIMIT NULLIF($2, 0)`, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list logistics estimates: %w", err)
	}
	defer rows.Close()

	var list []*entity.LogisticsEstimate
	for rows.Next() {
		e, err := scanLogistics(rows)
		if err != nil {
			return nil, fmt.Errorf("scan logistics estimate: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// LatestLogisticsEstimate la estimación más reciente o (nil, nil).
func (r *SuggestionRepo) LatestLogisticsEstimate(ctx context.Context, productID int64) (*entity.LogisticsEstimate, error) {
	e, err := scanLogistics(r.q.QueryRow(ctx, `SELECT `+logisticsColumns+` FROM logistics_estimates
		WHERE product_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest logistics estimate: %w", err)
	}
	return e, nil
}
