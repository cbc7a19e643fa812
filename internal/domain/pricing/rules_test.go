package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/agromarket-api/internal/domain/entity"
	"github.com/jhoicas/agromarket-api/internal/domain/pricing"
)

func product(base string, stock int, category string) *entity.Product {
	return &entity.Product{
		ID:        1,
		Name:      "Test",
		Category:  category,
		Unit:      "kg",
		Stock:     stock,
		BasePrice: decimal.RequireFromString(base),
	}
}

func TestInventoryFactor_Limites(t *testing.T) {
	tests := []struct {
		stock int
		want  string
	}{
		{501, "0.95"},
		{500, "0.98"},
		{101, "0.98"},
		{100, "1"},
		{30, "1"},
		{29, "1.02"},
		{0, "1.02"},
	}
	for _, tt := range tests {
		got := pricing.InventoryFactor(tt.stock)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "stock=%d got=%s", tt.stock, got)
	}
}

func TestCategoryFactor_SubcadenaSinMayusculas(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"Fresh Fruit", "1.05"},
		{"FRUIT", "1.05"},
		{"Root Vegetables", "0.98"},
		{"fruit and vegetable mix", "1.05"},
		{"Grains", "1"},
		{"", "1"},
	}
	for _, tt := range tests {
		got := pricing.CategoryFactor(tt.category)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "category=%q got=%s", tt.category, got)
	}
}

func TestSuggestPrice_RedondeaADosDecimales(t *testing.T) {
	e := pricing.NewRuleEngine("", "")

	q := e.SuggestPrice(product("40", 600, "Fruit"))
	assert.Equal(t, "39.90", q.Price.StringFixed(2))
	assert.Equal(t, int32(-2), q.Price.Exponent())

	q = e.SuggestPrice(product("20", 10, "Vegetable"))
	assert.Equal(t, "19.99", q.Price.StringFixed(2))

	q = e.SuggestPrice(product("33.333", 50, "Grains"))
	assert.Equal(t, "33.33", q.Price.StringFixed(2))
}

func TestSuggestPrice_RationaleCitaEntradas(t *testing.T) {
	q := pricing.NewRuleEngine("", "").SuggestPrice(product("40", 600, "Fruit"))
	assert.Contains(t, q.Rationale, "40.00")
	assert.Contains(t, q.Rationale, "600")
	assert.Contains(t, q.Rationale, "'Fruit'")
}

func TestSuggestPrice_Pura(t *testing.T) {
	e := pricing.NewRuleEngine("", "")
	p := product("12.50", 120, "fruit")
	a := e.SuggestPrice(p)
	b := e.SuggestPrice(p)
	assert.Equal(t, a, b)
	assert.Equal(t, "12.50", p.BasePrice.StringFixed(2))
}

func TestSuggestPrice_NuncaNegativo(t *testing.T) {
	q := pricing.NewRuleEngine("", "").SuggestPrice(product("-10", 10, "Fruit"))
	assert.True(t, q.Price.IsZero())
	assert.Equal(t, "0.00", q.Price.StringFixed(2))
}

func TestEstimateLogistics_LimitesDeCosto(t *testing.T) {
	e := pricing.NewRuleEngine("", "")
	tests := []struct {
		base string
		cost string
		days int
	}{
		{"0", "5.00", 3},
		{"40", "5.00", 3},
		{"49.99", "6.00", 3},
		{"50.00", "6.00", 5},
		{"100", "12.00", 5},
		{"1000000", "50.00", 5},
	}
	for _, tt := range tests {
		q := e.EstimateLogistics(product(tt.base, 10, ""))
		assert.Equal(t, tt.cost, q.Cost.StringFixed(2), "base=%s", tt.base)
		assert.Equal(t, tt.days, q.EstimatedDays, "base=%s", tt.base)
		assert.True(t, q.EstimatedDays > 0)
	}
}

func TestEstimateLogistics_RegionYTransportista(t *testing.T) {
	q := pricing.NewRuleEngine("", "").EstimateLogistics(product("10", 1, ""))
	assert.Equal(t, pricing.DefaultRegion, q.Region)
	assert.Equal(t, pricing.DefaultCarrier, q.Carrier)

	q = pricing.NewRuleEngine("Victoria", "StarTrack").EstimateLogistics(product("10", 1, ""))
	assert.Equal(t, "Victoria", q.Region)
	assert.Equal(t, "StarTrack", q.Carrier)
}
