package enrichment_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agromarket-api/internal/application/enrichment"
	"github.com/jhoicas/agromarket-api/internal/application/ports"
	"github.com/jhoicas/agromarket-api/internal/domain"
	"github.com/jhoicas/agromarket-api/internal/domain/entity"
	"github.com/jhoicas/agromarket-api/internal/domain/pricing"
	"github.com/jhoicas/agromarket-api/internal/infrastructure/memory"
)

type fixture struct {
	store  *memory.Store
	client *MockLanguageClient
	orch   *enrichment.Orchestrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: memory.NewStore(), client: &MockLanguageClient{}}
	f.orch = enrichment.NewOrchestrator(
		f.store.Stores(),
		f.store,
		func() ports.LanguageClient { return f.client },
		pricing.NewRuleEngine("", ""),
		zerolog.Nop(),
	)
	return f
}

func (f *fixture) addProduct(name, category string, stock int, base string) *entity.Product {
	p := &entity.Product{
		Name: name, Category: category, Stock: stock,
		BasePrice: decimal.RequireFromString(base), IsActive: true,
	}
	f.store.AddProduct(p)
	return p
}

func TestEnrichProduct_EscribeDescripcionesYSugerencias(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	describing(f.client, text("Crisp apples."), text("脆苹果。"))
	p := f.addProduct("Pink Lady Apples", "Fruit", 600, "40.00")

	out, err := f.orch.EnrichProduct(ctx, p.ID)
	require.NoError(t, err)
	f.client.AssertNumberOfCalls(t, "GenerateProductDescription", 2)

	got, _ := f.store.GetByID(ctx, p.ID)
	assert.Equal(t, "Crisp apples.", got.DescriptionEN)
	assert.Equal(t, "脆苹果。", got.DescriptionZH)

	prices, _ := f.store.ListPriceSuggestions(ctx, p.ID, 0)
	require.Len(t, prices, 1)
	assert.Equal(t, "39.90", prices[0].SuggestedPrice.StringFixed(2))

	logistics, _ := f.store.ListLogisticsEstimates(ctx, p.ID, 0)
	require.Len(t, logistics, 1)
	assert.Equal(t, "5.00", logistics[0].CostEstimate.StringFixed(2))
	assert.Equal(t, 3, logistics[0].EstimatedDays)
	assert.Equal(t, "AusPost", logistics[0].Carrier)

	assert.Equal(t, out.GenerationID, prices[0].GenerationID)
	assert.Equal(t, out.GenerationID, logistics[0].GenerationID)
	assert.Equal(t, "mock", out.Provider)
}

func TestEnrichProduct_Verduras(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	describing(f.client, text("en"), text("zh"))
	p := f.addProduct("Dutch Carrots", "Vegetable", 10, "20.00")

	out, err := f.orch.EnrichProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "19.99", out.Price.SuggestedPrice.StringFixed(2))
	assert.Equal(t, "5.00", out.Logistics.CostEstimate.StringFixed(2))
	assert.Equal(t, 3, out.Logistics.EstimatedDays)
}

func TestEnrichProduct_InexistenteEsNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.orch.EnrichProduct(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.client.AssertNotCalled(t, "GenerateProductDescription", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnrichProduct_FalloDelProveedorNoBloqueaPrecios(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	describing(f.client, failed("connection refused"), text("zh ok"))
	p := f.addProduct("Apples", "Fruit", 50, "10.00")

	out, err := f.orch.EnrichProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, out.FailedGenerations)

	got, _ := f.store.GetByID(ctx, p.ID)
	assert.True(t, strings.HasPrefix(got.DescriptionEN, "[AI Error] provider=mock, model=mock-1"))
	assert.Equal(t, "zh ok", got.DescriptionZH)

	prices, _ := f.store.ListPriceSuggestions(ctx, p.ID, 0)
	assert.Len(t, prices, 1)
}

func TestEnrichProduct_FalloDePersistenciaNoDejaEscriturasParciales(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	describing(f.client, text("en"), text("zh"))
	p := f.addProduct("Apples", "Fruit", 50, "10.00")
	storeDown := errors.New("store unavailable")
	f.store.FailOn = func(op string, _ int64) error {
		if op == "record_logistics" {
			return storeDown
		}
		return nil
	}

	_, err := f.orch.EnrichProduct(ctx, p.ID)
	assert.ErrorIs(t, err, storeDown)

	got, _ := f.store.GetByID(ctx, p.ID)
	assert.Empty(t, got.DescriptionEN)
	assert.Empty(t, got.DescriptionZH)
	prices, _ := f.store.ListPriceSuggestions(ctx, p.ID, 0)
	assert.Empty(t, prices)
}

func TestEnrich_SoloPreciosNoLlamaAlProveedor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.addProduct("Oats", "Grains", 250, "8.50")
	p.DescriptionEN = "kept"

	out, err := f.orch.Enrich(ctx, p, enrichment.ModePricingOnly)
	require.NoError(t, err)
	assert.False(t, out.DescriptionsUpdated)
	assert.Equal(t, "kept", p.DescriptionEN)
	f.client.AssertNotCalled(t, "GenerateProductDescription", mock.Anything, mock.Anything, mock.Anything)

	prices, _ := f.store.ListPriceSuggestions(ctx, p.ID, 0)
	assert.Len(t, prices, 1)
}

func TestEnrichProduct_UsaDatosDelProducto(t *testing.T) {
	f := newFixture(t)
	want := ports.ProductFacts{Name: "Dutch Carrots", Category: "Vegetable", Unit: "kg", Stock: 10}
	f.client.On("GenerateProductDescription", mock.Anything, want, mock.Anything).Return(text("ok"))
	p := f.addProduct("Dutch Carrots", "Vegetable", 10, "20.00")

	_, err := f.orch.EnrichProduct(context.Background(), p.ID)
	require.NoError(t, err)
	f.client.AssertExpectations(t)
}
