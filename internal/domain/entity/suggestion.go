package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceSuggestion precio sugerido para un producto. Inmutable una vez registrado.
type PriceSuggestion struct {
	ID             int64
	ProductID      int64
	GenerationID   uuid.UUID // compartido con el LogisticsEstimate del mismo evento
	SuggestedPrice decimal.Decimal
	Rationale      string
	CreatedAt      time.Time
}

// LogisticsEstimate estimación de envío para un producto. Inmutable una vez registrada.
type LogisticsEstimate struct {
	ID            int64
	ProductID     int64
	GenerationID  uuid.UUID
	Region        string
	Carrier       string // puede estar vacío
	EstimatedDays int
	CostEstimate  decimal.Decimal
	CreatedAt     time.Time
}
