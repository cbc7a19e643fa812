package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/agromarket-api/internal/application/dto"
	"github.com/jhoicas/agromarket-api/internal/application/ports"
	"github.com/jhoicas/agromarket-api/internal/domain"
	"github.com/jhoicas/agromarket-api/internal/domain/entity"
	"github.com/jhoicas/agromarket-api/internal/domain/repository"
)

// DetailHistoryLimit cantidad de sugerencias recientes que muestra la ficha del producto.
const DetailHistoryLimit = 5

// ProductUseCase catálogo público y operaciones del vendedor sobre sus productos.
type ProductUseCase struct {
	products    repository.ProductRepository
	suppliers   repository.SupplierRepository
	suggestions repository.SuggestionRepository
	sheets      ports.ProductSheetGenerator
	baseURL     string
	now         func() time.Time
}

// NewProductUseCase construye el caso de uso. baseURL se usa para el QR de la ficha PDF.
func NewProductUseCase(
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	suggestions repository.SuggestionRepository,
	sheets ports.ProductSheetGenerator,
	baseURL string,
) *ProductUseCase {
	return &ProductUseCase{
		products:    products,
		suppliers:   suppliers,
		suggestions: suggestions,
		sheets:      sheets,
		baseURL:     baseURL,
		now:         time.Now,
	}
}

// Catalog productos activos, más recientes primero.
func (uc *ProductUseCase) Catalog(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.products.ListActive(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: toProductResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Detail ficha pública. Los productos inactivos no son accesibles (domain.ErrNotFound).
func (uc *ProductUseCase) Detail(ctx context.Context, id int64) (*dto.ProductDetailResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	history, err := uc.history(ctx, p.ID, DetailHistoryLimit)
	if err != nil {
		return nil, err
	}
	return &dto.ProductDetailResponse{Product: toProductResponse(p), History: *history}, nil
}

// ListForSupplier productos del vendedor (activos e inactivos).
func (uc *ProductUseCase) ListForSupplier(ctx context.Context, supplierID int64) (*dto.ProductListResponse, error) {
	list, err := uc.products.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: toProductResponses(list),
		Page:  dto.PageResponse{Limit: len(list), Total: len(list)},
	}, nil
}

// GetOwned devuelve el producto solo si pertenece al proveedor; si no, domain.ErrNotFound.
func (uc *ProductUseCase) GetOwned(ctx context.Context, supplierID, productID int64) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || supplierID == 0 || p.SupplierID != supplierID {
		return nil, fmt.Errorf("producto %d: %w", productID, domain.ErrNotFound)
	}
	return p, nil
}

// ToggleActive publica o retira del catálogo un producto propio.
func (uc *ProductUseCase) ToggleActive(ctx context.Context, supplierID, productID int64) (*dto.ProductResponse, error) {
	p, err := uc.GetOwned(ctx, supplierID, productID)
	if err != nil {
		return nil, err
	}
	p.IsActive = !p.IsActive
	if err := uc.products.SetActive(ctx, p.ID, p.IsActive); err != nil {
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// Suggestions historial reciente de un producto propio.
func (uc *ProductUseCase) Suggestions(ctx context.Context, supplierID, productID int64, limit int) (*dto.SuggestionHistoryResponse, error) {
	if _, err := uc.GetOwned(ctx, supplierID, productID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.history(ctx, productID, limit)
}

// Sheet genera la ficha PDF de un producto propio.
func (uc *ProductUseCase) Sheet(ctx context.Context, supplierID, productID int64) ([]byte, error) {
	p, err := uc.GetOwned(ctx, supplierID, productID)
	if err != nil {
		return nil, err
	}
	supplier, err := uc.suppliers.GetByID(ctx, p.SupplierID)
	if err != nil {
		return nil, err
	}
	prices, err := uc.suggestions.ListPriceSuggestions(ctx, p.ID, DetailHistoryLimit)
	if err != nil {
		return nil, err
	}
	logistics, err := uc.suggestions.ListLogisticsEstimates(ctx, p.ID, DetailHistoryLimit)
	if err != nil {
		return nil, err
	}
	return uc.sheets.GenerateProductSheet(ctx, ports.ProductSheet{
		Product:     p,
		Supplier:    supplier,
		Prices:      prices,
		Logistics:   logistics,
		PageURL:     fmt.Sprintf("%s/api/products/%d", uc.baseURL, p.ID),
		GeneratedAt: uc.now(),
	})
}

func (uc *ProductUseCase) history(ctx context.Context, productID int64, limit int) (*dto.SuggestionHistoryResponse, error) {
	prices, err := uc.suggestions.ListPriceSuggestions(ctx, productID, limit)
	if err != nil {
		return nil, err
	}
	logistics, err := uc.suggestions.ListLogisticsEstimates(ctx, productID, limit)
	if err != nil {
		return nil, err
	}
	out := &dto.SuggestionHistoryResponse{
		ProductID: productID,
		Prices:    make([]dto.PriceSuggestionResponse, 0, len(prices)),
		Logistics: make([]dto.LogisticsEstimateResponse, 0, len(logistics)),
	}
	for _, ps := range prices {
		out.Prices = append(out.Prices, toPriceResponse(ps))
	}
	for _, l := range logistics {
		out.Logistics = append(out.Logistics, toLogisticsResponse(l))
	}
	return out, nil
}

// ── Mapeo a DTOs ─────────────────────────────────────────────────────────────

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		SupplierID:    p.SupplierID,
		Name:          p.Name,
		Category:      p.Category,
		Unit:          p.UnitOrDefault(),
		Stock:         p.Stock,
		BasePrice:     p.BasePrice,
		DescriptionEN: p.DescriptionEN,
		DescriptionZH: p.DescriptionZH,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toPriceResponse(ps *entity.PriceSuggestion) dto.PriceSuggestionResponse {
	return dto.PriceSuggestionResponse{
		ID:             ps.ID,
		GenerationID:   ps.GenerationID,
		SuggestedPrice: ps.SuggestedPrice,
		Rationale:      ps.Rationale,
		CreatedAt:      ps.CreatedAt,
	}
}

func toLogisticsResponse(l *entity.LogisticsEstimate) dto.LogisticsEstimateResponse {
	return dto.LogisticsEstimateResponse{
		ID:            l.ID,
		GenerationID:  l.GenerationID,
		Region:        l.Region,
		Carrier:       l.Carrier,
		EstimatedDays: l.EstimatedDays,
		CostEstimate:  l.CostEstimate,
		CreatedAt:     l.CreatedAt,
	}
}
