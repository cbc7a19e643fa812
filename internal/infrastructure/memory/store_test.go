package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agromarket-api/internal/application/enrichment"
	"github.com/jhoicas/agromarket-api/internal/domain"
	"github.com/jhoicas/agromarket-api/internal/domain/entity"
	"github.com/jhoicas/agromarket-api/internal/infrastructure/memory"
)

func newProduct(s *memory.Store, name string, active bool) *entity.Product {
	p := &entity.Product{Name: name, Stock: 10, BasePrice: decimal.NewFromInt(10), IsActive: active}
	s.AddProduct(p)
	return p
}

func TestStore_GetByIDInexistenteDevuelveNil(t *testing.T) {
	s := memory.NewStore()
	p, err := s.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestStore_AddProductUsaUnidadPorDefecto(t *testing.T) {
	s := memory.NewStore()
	p := newProduct(s, "Apples", true)
	got, err := s.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "kg", got.Unit)
}

func TestStore_ListActiveFiltraYPagina(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	s.Seed()
	hidden := newProduct(s, "Hidden", false)

	all, err := s.ListActive(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	for _, p := range all {
		assert.NotEqual(t, hidden.ID, p.ID)
	}
	assert.Equal(t, "Avocado Tray (20)", all[0].Name)

	page, err := s.ListActive(ctx, 2, 3)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestStore_HistorialMasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	p := newProduct(s, "Apples", true)

	for _, price := range []string{"1.00", "2.00", "3.00"} {
		require.NoError(t, s.RecordPriceSuggestion(ctx, &entity.PriceSuggestion{
			ProductID: p.ID, GenerationID: uuid.New(), SuggestedPrice: decimal.RequireFromString(price),
		}))
	}
	list, err := s.ListPriceSuggestions(ctx, p.ID, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "3.00", list[0].SuggestedPrice.StringFixed(2))
	assert.Equal(t, "2.00", list[1].SuggestedPrice.StringFixed(2))
}

func TestStore_RecordSobreProductoInexistente(t *testing.T) {
	s := memory.NewStore()
	err := s.RecordLogisticsEstimate(context.Background(), &entity.LogisticsEstimate{ProductID: 42, EstimatedDays: 3})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ClearSuggestionsSoloDelProducto(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	a := newProduct(s, "A", true)
	b := newProduct(s, "B", true)
	for _, id := range []int64{a.ID, b.ID} {
		require.NoError(t, s.RecordPriceSuggestion(ctx, &entity.PriceSuggestion{ProductID: id}))
		require.NoError(t, s.RecordLogisticsEstimate(ctx, &entity.LogisticsEstimate{ProductID: id, EstimatedDays: 3}))
	}

	n, err := s.ClearSuggestions(ctx, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	left, _ := s.ListPriceSuggestions(ctx, b.ID, 0)
	assert.Len(t, left, 1)
	latest, err := s.LatestLogisticsEstimate(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestStore_RunRevierteSiFalla(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	p := newProduct(s, "Apples", true)
	boom := errors.New("boom")

	err := s.Run(ctx, func(st enrichment.Stores) error {
		require.NoError(t, st.Products.UpdateDescriptions(ctx, p.ID, "en", "zh"))
		require.NoError(t, st.Suggestions.RecordPriceSuggestion(ctx, &entity.PriceSuggestion{ProductID: p.ID}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := s.GetByID(ctx, p.ID)
	assert.Empty(t, got.DescriptionEN)
	list, _ := s.ListPriceSuggestions(ctx, p.ID, 0)
	assert.Empty(t, list)
}

func TestStore_RunConfirmaSiTieneExito(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	p := newProduct(s, "Apples", true)

	require.NoError(t, s.Run(ctx, func(st enrichment.Stores) error {
		return st.Products.UpdateDescriptions(ctx, p.ID, "en", "zh")
	}))
	got, _ := s.GetByID(ctx, p.ID)
	assert.Equal(t, "en", got.DescriptionEN)
	assert.Equal(t, "zh", got.DescriptionZH)
}

func TestStore_EscrituraSueltaSobreviveAlRollback(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	p := newProduct(s, "Apples", true)

	entered := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- s.Run(ctx, func(st enrichment.Stores) error {
			close(entered)
			<-release
			assert.NoError(t, st.Products.UpdateDescriptions(ctx, p.ID, "en", "zh"))
			return errors.New("boom")
		})
	}()
	<-entered

	written := make(chan error, 1)
	go func() { written <- s.SetActive(ctx, p.ID, false) }()

	select {
	case <-written:
		close(release)
		t.Fatal("SetActive no esperó a que terminara la transacción")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)

	require.Error(t, <-txDone)
	require.NoError(t, <-written)

	got, _ := s.GetByID(ctx, p.ID)
	assert.False(t, got.IsActive)
	assert.Empty(t, got.DescriptionEN)
}

func TestStore_SupplierGetByID(t *testing.T) {
	s := memory.NewStore()
	sp := s.Seed()
	got, err := s.Suppliers().GetByID(context.Background(), sp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hunter Valley Growers", got.CompanyName)

	missing, err := s.Suppliers().GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
