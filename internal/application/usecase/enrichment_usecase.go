package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/agromarket-api/internal/application/dto"
	"github.com/jhoicas/agromarket-api/internal/application/enrichment"
)

// EnrichmentUseCase expone el orquestador a la capa HTTP: verifica propiedad antes de
// regenerar y adapta entradas y salidas a DTOs.
type EnrichmentUseCase struct {
	products *ProductUseCase
	orch     *enrichment.Orchestrator
}

// NewEnrichmentUseCase construye el caso de uso.
func NewEnrichmentUseCase(products *ProductUseCase, orch *enrichment.Orchestrator) *EnrichmentUseCase {
	return &EnrichmentUseCase{products: products, orch: orch}
}

// Enrich regenera descripciones y sugerencias de un producto propio del vendedor.
func (uc *EnrichmentUseCase) Enrich(ctx context.Context, supplierID, productID int64) (*dto.EnrichResponse, error) {
	p, err := uc.products.GetOwned(ctx, supplierID, productID)
	if err != nil {
		return nil, err
	}
	out, err := uc.orch.Enrich(ctx, p, enrichment.ModeFull)
	if err != nil {
		return nil, fmt.Errorf("enriquecer producto: %w", err)
	}
	return &dto.EnrichResponse{
		ProductID:         out.ProductID,
		GenerationID:      out.GenerationID,
		DescriptionEN:     out.DescriptionEN,
		DescriptionZH:     out.DescriptionZH,
		Provider:          out.Provider,
		Model:             out.Model,
		FailedGenerations: out.FailedGenerations,
		Price:             toPriceResponse(out.Price),
		Logistics:         toLogisticsResponse(out.Logistics),
	}, nil
}

// Ask responde la pregunta de un comprador sobre un producto activo.
func (uc *EnrichmentUseCase) Ask(ctx context.Context, productID int64, req dto.QuestionRequest) (*dto.AnswerResponse, error) {
	answer, err := uc.orch.AnswerQuestion(ctx, productID, req.Question)
	if err != nil {
		return nil, err
	}
	return &dto.AnswerResponse{ProductID: productID, Question: req.Question, Answer: answer}, nil
}
