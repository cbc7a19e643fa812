package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agromarket-api/internal/application/dto"
	"github.com/jhoicas/agromarket-api/internal/application/enrichment"
	"github.com/jhoicas/agromarket-api/internal/application/ports"
	"github.com/jhoicas/agromarket-api/internal/application/usecase"
	"github.com/jhoicas/agromarket-api/internal/domain/entity"
	"github.com/jhoicas/agromarket-api/internal/domain/pricing"
	"github.com/jhoicas/agromarket-api/internal/infrastructure/memory"
	"github.com/jhoicas/agromarket-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/agromarket-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/agromarket-api/pkg/jwt"
)

// stubClient responde siempre "ok" o una descripción fija.
type stubClient struct{}

func (stubClient) Provider() string { return "stub" }
func (stubClient) Model() string    { return "stub-1" }

func (stubClient) GenerateProductDescription(_ context.Context, facts ports.ProductFacts, lang ports.Language) ports.GenerationResult {
	return ports.GenerationResult{Text: fmt.Sprintf("%s (%s)", facts.Name, lang)}
}

func (stubClient) AnswerQuestion(context.Context, string, string) ports.GenerationResult {
	return ports.GenerationResult{Text: "ok"}
}

type apiFixture struct {
	app      *fiber.App
	store    *memory.Store
	supplier *entity.Supplier
	product  *entity.Product
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	supplier := store.Seed()
	list, err := store.ListBySupplier(context.Background(), supplier.ID)
	require.NoError(t, err)
	require.NotEmpty(t, list)

	orch := enrichment.NewOrchestrator(
		store.Stores(), store,
		func() ports.LanguageClient { return stubClient{} },
		pricing.NewRuleEngine("", ""),
		zerolog.Nop(),
	)
	productUC := usecase.NewProductUseCase(store, store.Suppliers(), store, pdf.NewMarotoSheetGenerator(), "http://localhost:8080")
	enrichUC := usecase.NewEnrichmentUseCase(productUC, orch)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:    productUC,
		EnrichmentUC: enrichUC,
		Suppliers:    store.Suppliers(),
		JWTSecret:    testJWTSecret,
		AppName:      "agromarket-test",
	})
	return &apiFixture{app: app, store: store, supplier: supplier, product: list[0]}
}

func (f *apiFixture) do(t *testing.T, method, path, auth string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func sellerToken(t *testing.T, supplierID int64) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: testUserID, SupplierID: supplierID, Role: pkgjwt.RoleSeller}, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ── Público ──────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/health", "", nil)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "agromarket-test", body["service"])
}

func TestCatalog_ListaActivos(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/catalog?limit=2", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ProductListResponse](t, resp)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 2, out.Page.Limit)
}

func TestDetail_IDInvalidoEInexistente(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodGet, "/api/products/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", decode[dto.ErrorResponse](t, resp).Code)

	resp = f.do(t, http.MethodGet, "/api/products/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAsk_RespondeYValida(t *testing.T) {
	f := newAPI(t)
	path := fmt.Sprintf("/api/products/%d/questions", f.product.ID)

	resp := f.do(t, http.MethodPost, path, "", dto.QuestionRequest{Question: "Is it fresh?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.AnswerResponse](t, resp)
	assert.Equal(t, "ok", out.Answer)
	assert.Equal(t, f.product.ID, out.ProductID)

	resp = f.do(t, http.MethodPost, path, "", dto.QuestionRequest{Question: " "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = f.do(t, http.MethodPost, path, "", dto.QuestionRequest{Question: strings.Repeat("a", 301)})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ── Vendedor ─────────────────────────────────────────────────────────────────

func TestSeller_EnrichRegistraSugerencias(t *testing.T) {
	f := newAPI(t)
	auth := sellerToken(t, f.supplier.ID)

	resp := f.do(t, http.MethodPost, fmt.Sprintf("/api/seller/products/%d/enrich", f.product.ID), auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.EnrichResponse](t, resp)
	assert.Equal(t, f.product.Name+" (en)", out.DescriptionEN)
	assert.Equal(t, out.GenerationID, out.Price.GenerationID)
	assert.True(t, out.Price.SuggestedPrice.GreaterThan(decimal.Zero))

	resp = f.do(t, http.MethodGet, fmt.Sprintf("/api/seller/products/%d/suggestions", f.product.ID), auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hist := decode[dto.SuggestionHistoryResponse](t, resp)
	assert.Len(t, hist.Prices, 1)
	assert.Len(t, hist.Logistics, 1)
}

func TestSeller_ProductoAjenoEsNotFound(t *testing.T) {
	f := newAPI(t)
	other := &entity.Supplier{CompanyName: "Other Farm"}
	f.store.AddSupplier(other)

	resp := f.do(t, http.MethodPost, fmt.Sprintf("/api/seller/products/%d/enrich", f.product.ID), sellerToken(t, other.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	prices, _ := f.store.ListPriceSuggestions(context.Background(), f.product.ID, 0)
	assert.Empty(t, prices)
}

func TestSeller_ProveedorInexistenteEs403(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/seller/products", sellerToken(t, 999), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "NO_SUPPLIER", decode[dto.ErrorResponse](t, resp).Code)
}

func TestSeller_CompradorEs403(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/seller/products", tokenForRole(t, pkgjwt.RoleBuyer), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSeller_ToggleActiveOcultaDelCatalogo(t *testing.T) {
	f := newAPI(t)
	auth := sellerToken(t, f.supplier.ID)

	resp := f.do(t, http.MethodPost, fmt.Sprintf("/api/seller/products/%d/toggle-active", f.product.ID), auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[dto.ProductResponse](t, resp).IsActive)

	resp = f.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", f.product.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/seller/products", auth, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.ProductListResponse](t, resp).Items, 4)
}

func TestSeller_SheetDevuelvePDF(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, fmt.Sprintf("/api/seller/products/%d/sheet", f.product.ID), sellerToken(t, f.supplier.ID), nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}
