package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            int64           `json:"id"`
	SupplierID    int64           `json:"supplier_id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	Stock         int             `json:"stock"`
	BasePrice     decimal.Decimal `json:"base_price"`
	DescriptionEN string          `json:"ai_description_en"`
	DescriptionZH string          `json:"ai_description_zh"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PriceSuggestionResponse una sugerencia de precio del historial.
type PriceSuggestionResponse struct {
	ID             int64           `json:"id"`
	GenerationID   uuid.UUID       `json:"generation_id"`
	SuggestedPrice decimal.Decimal `json:"suggested_price"`
	Rationale      string          `json:"rationale"`
	CreatedAt      time.Time       `json:"created_at"`
}

// LogisticsEstimateResponse una estimación logística del historial.
type LogisticsEstimateResponse struct {
	ID            int64           `json:"id"`
	GenerationID  uuid.UUID       `json:"generation_id"`
	Region        string          `json:"region"`
	Carrier       string          `json:"carrier"`
	EstimatedDays int             `json:"estimated_days"`
	CostEstimate  decimal.Decimal `json:"cost_estimate"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SuggestionHistoryResponse historial reciente de un producto, más nuevo primero.
type SuggestionHistoryResponse struct {
	ProductID int64                       `json:"product_id"`
	Prices    []PriceSuggestionResponse   `json:"price_suggestions"`
	Logistics []LogisticsEstimateResponse `json:"logistics_estimates"`
}

// ProductDetailResponse ficha pública de un producto con su historial reciente.
type ProductDetailResponse struct {
	Product ProductResponse           `json:"product"`
	History SuggestionHistoryResponse `json:"history"`
}
