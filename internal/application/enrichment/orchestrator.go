// Package enrichment orquesta el enriquecimiento de productos: descripciones bilingües
// vía el cliente de lenguaje, precio y logística vía el motor de reglas, y su persistencia.
package enrichment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/agromarket-api/internal/application/ports"
	"github.com/jhoicas/agromarket-api/internal/domain"
	"github.com/jhoicas/agromarket-api/internal/domain/entity"
	"github.com/jhoicas/agromarket-api/internal/domain/pricing"
)

// Mode qué partes del enriquecimiento se ejecutan.
type Mode int

const (
	// ModeFull descripciones + precio + logística.
	ModeFull Mode = iota
	// ModePricingOnly solo precio + logística; no llama al proveedor de lenguaje.
	ModePricingOnly
)

// Outcome resultado de un enriquecimiento.
type Outcome struct {
	ProductID           int64
	GenerationID        uuid.UUID
	DescriptionsUpdated bool
	DescriptionEN       string
	DescriptionZH       string
	Provider            string
	Model               string
	FailedGenerations   int // resultados de lenguaje que terminaron en "[AI Error]"
	Price               *entity.PriceSuggestion
	Logistics           *entity.LogisticsEstimate
}

// Orchestrator coordina cliente de lenguaje, motor de reglas y almacenamiento.
type Orchestrator struct {
	stores    Stores
	tx        TxRunner
	newClient ClientFactory
	engine    *pricing.RuleEngine
	newID     func() uuid.UUID
	log       zerolog.Logger
}

// NewOrchestrator construye el orquestador. stores se usa para lecturas fuera de transacción.
func NewOrchestrator(stores Stores, tx TxRunner, newClient ClientFactory, engine *pricing.RuleEngine, log zerolog.Logger) *Orchestrator {
	if engine == nil {
		engine = pricing.NewRuleEngine("", "")
	}
	return &Orchestrator{
		stores:    stores,
		tx:        tx,
		newClient: newClient,
		engine:    engine,
		newID:     uuid.New,
		log:       log,
	}
}

// EnrichProduct carga el producto y ejecuta Enrich. Producto inexistente: domain.ErrNotFound.
func (o *Orchestrator) EnrichProduct(ctx context.Context, productID int64) (*Outcome, error) {
	p, err := o.stores.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %d: %w", productID, domain.ErrNotFound)
	}
	return o.Enrich(ctx, p, ModeFull)
}

// Enrich genera ambas descripciones fuera de la transacción y luego, en una sola transacción,
// actualiza las descripciones y registra precio y logística con el mismo GenerationID.
func (o *Orchestrator) Enrich(ctx context.Context, p *entity.Product, mode Mode) (*Outcome, error) {
	out := o.Prepare(ctx, p, mode)
	err := o.tx.Run(ctx, func(s Stores) error {
		return o.Persist(ctx, s, p, out)
	})
	if err != nil {
		return nil, err
	}
	o.Committed(p, out)
	return out, nil
}

// Prepare llama al cliente de lenguaje (dos idiomas) y al motor de reglas. No escribe nada;
// debe ejecutarse fuera de la transacción.
func (o *Orchestrator) Prepare(ctx context.Context, p *entity.Product, mode Mode) *Outcome {
	out := &Outcome{ProductID: p.ID, GenerationID: o.newID()}

	if mode == ModeFull {
		client := o.newClient()
		facts := ports.ProductFacts{Name: p.Name, Category: p.Category, Unit: p.UnitOrDefault(), Stock: p.Stock}

		en := client.GenerateProductDescription(ctx, facts, ports.LanguageEnglish)
		zh := client.GenerateProductDescription(ctx, facts, ports.LanguageChinese)
		for _, r := range []ports.GenerationResult{en, zh} {
			if r.Failed() {
				out.FailedGenerations++
			}
		}

		out.DescriptionsUpdated = true
		out.DescriptionEN = en.String()
		out.DescriptionZH = zh.String()
		out.Provider = client.Provider()
		out.Model = client.Model()
	}

	price := o.engine.SuggestPrice(p)
	logistics := o.engine.EstimateLogistics(p)
	out.Price = &entity.PriceSuggestion{
		ProductID:      p.ID,
		GenerationID:   out.GenerationID,
		SuggestedPrice: price.Price,
		Rationale:      price.Rationale,
	}
	out.Logistics = &entity.LogisticsEstimate{
		ProductID:     p.ID,
		GenerationID:  out.GenerationID,
		Region:        logistics.Region,
		Carrier:       logistics.Carrier,
		EstimatedDays: logistics.EstimatedDays,
		CostEstimate:  logistics.Cost,
	}
	return out
}

// Persist escribe el resultado de Prepare sobre los repositorios de una transacción abierta.
func (o *Orchestrator) Persist(ctx context.Context, s Stores, p *entity.Product, out *Outcome) error {
	if out.DescriptionsUpdated {
		if err := s.Products.UpdateDescriptions(ctx, p.ID, out.DescriptionEN, out.DescriptionZH); err != nil {
			return fmt.Errorf("actualizar descripciones del producto %d: %w", p.ID, err)
		}
	}
	if err := s.Suggestions.RecordPriceSuggestion(ctx, out.Price); err != nil {
		return fmt.Errorf("registrar precio sugerido del producto %d: %w", p.ID, err)
	}
	if err := s.Suggestions.RecordLogisticsEstimate(ctx, out.Logistics); err != nil {
		return fmt.Errorf("registrar logística del producto %d: %w", p.ID, err)
	}
	return nil
}

// Committed refleja en p las descripciones ya confirmadas y registra el resultado.
// Se llama solo después de que la transacción de Persist hizo commit.
func (o *Orchestrator) Committed(p *entity.Product, out *Outcome) {
	if out.DescriptionsUpdated {
		p.DescriptionEN, p.DescriptionZH = out.DescriptionEN, out.DescriptionZH
	}
	o.logOutcome(out)
}

func (o *Orchestrator) logOutcome(out *Outcome) {
	o.log.Info().
		Int64("product_id", out.ProductID).
		Str("generation_id", out.GenerationID.String()).
		Bool("descriptions", out.DescriptionsUpdated).
		Str("provider", out.Provider).
		Int("failed_generations", out.FailedGenerations).
		Str("suggested_price", out.Price.SuggestedPrice.StringFixed(2)).
		Msg("producto enriquecido")
}
