// Package pricing contiene las reglas deterministas de precio sugerido y logística.
// Son funciones puras sobre una instantánea del producto: no hacen I/O ni leen el reloj.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/agromarket-api/internal/domain/entity"
)

// Valores por defecto de la estimación logística.
const (
	DefaultRegion  = "Australia (NSW)"
	DefaultCarrier = "AusPost"
)

var (
	shippingRate    = decimal.RequireFromString("0.12")
	minShippingCost = decimal.NewFromInt(5)
	maxShippingCost = decimal.NewFromInt(50)
	expressLimit    = decimal.NewFromInt(50)

	factorHighStock   = decimal.RequireFromString("0.95")
	factorMediumStock = decimal.RequireFromString("0.98")
	factorLowStock    = decimal.RequireFromString("1.02")
	factorFruit       = decimal.RequireFromString("1.05")
	factorVegetable   = decimal.RequireFromString("0.98")
	factorNeutral     = decimal.NewFromInt(1)
)

// PriceQuote resultado de SuggestPrice.
type PriceQuote struct {
	Price           decimal.Decimal // 2 decimales, nunca negativo
	Rationale       string
	InventoryFactor decimal.Decimal
	CategoryFactor  decimal.Decimal
}

// LogisticsQuote resultado de EstimateLogistics.
type LogisticsQuote struct {
	Region        string
	Carrier       string
	EstimatedDays int
	Cost          decimal.Decimal // 2 decimales, entre 5 y 50
}

// RuleEngine motor de reglas. Region y Carrier vacíos usan los valores por defecto.
type RuleEngine struct {
	Region  string
	Carrier string
}

// NewRuleEngine crea el motor con región y transportista configurados.
func NewRuleEngine(region, carrier string) *RuleEngine {
	return &RuleEngine{Region: region, Carrier: carrier}
}

// InventoryFactor ajuste por inventario: mucho stock abarata, poco stock encarece.
func InventoryFactor(stock int) decimal.Decimal {
	switch {
	case stock > 500:
		return factorHighStock
	case stock > 100:
		return factorMediumStock
	case stock < 30:
		return factorLowStock
	default:
		return factorNeutral
	}
}

// CategoryFactor ajuste por categoría (subcadena, sin distinguir mayúsculas). "fruit" gana sobre "vegetable".
func CategoryFactor(category string) decimal.Decimal {
	folded := cases.Fold().String(category)
	switch {
	case strings.Contains(folded, "fruit"):
		return factorFruit
	case strings.Contains(folded, "vegetable"):
		return factorVegetable
	default:
		return factorNeutral
	}
}

// SuggestPrice calcula round(base × inventario × categoría, 2).
func (e *RuleEngine) SuggestPrice(p *entity.Product) PriceQuote {
	base := nonNegative(p.BasePrice)
	inv := InventoryFactor(p.Stock)
	cat := CategoryFactor(p.Category)

	price := base.Mul(inv).Mul(cat).Round(2)
	return PriceQuote{
		Price: nonNegative(price).Round(2),
		Rationale: fmt.Sprintf(
			"Estimated based on base price %s, stock %d, and category '%s' (inventory factor %s, category factor %s).",
			base.StringFixed(2), p.Stock, p.Category, inv.String(), cat.String(),
		),
		InventoryFactor: inv,
		CategoryFactor:  cat,
	}
}

// EstimateLogistics costo = clamp(base × 0.12, 5, 50); 3 días si base < 50, si no 5.
func (e *RuleEngine) EstimateLogistics(p *entity.Product) LogisticsQuote {
	base := nonNegative(p.BasePrice)

	cost := base.Mul(shippingRate)
	if cost.LessThan(minShippingCost) {
		cost = minShippingCost
	}
	if cost.GreaterThan(maxShippingCost) {
		cost = maxShippingCost
	}

	days := 5
	if base.LessThan(expressLimit) {
		days = 3
	}

	return LogisticsQuote{
		Region:        e.region(),
		Carrier:       e.carrier(),
		EstimatedDays: days,
		Cost:          cost.Round(2),
	}
}

func (e *RuleEngine) region() string {
	if e == nil || e.Region == "" {
		return DefaultRegion
	}
	return e.Region
}

func (e *RuleEngine) carrier() string {
	if e == nil || e.Carrier == "" {
		return DefaultCarrier
	}
	return e.Carrier
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
