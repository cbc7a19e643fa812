package enrichment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/agromarket-api/internal/domain"
	"github.com/jhoicas/agromarket-api/internal/domain/entity"
)

// RegenOptions opciones del job de regeneración.
type RegenOptions struct {
	ProductID   int64 // 0 = todos los productos
	Clear       bool  // borra el historial de cada producto antes de regenerar
	Atomic      bool  // todo el lote en una sola transacción
	PricingOnly bool  // solo precio y logística, sin descripciones
}

// ProductResult resultado por producto.
type ProductResult struct {
	ProductID   int64
	ProductName string
	Index       int // posición en el lote, desde 1
	Total       int // tamaño del lote
	Cleared     int64
	Outcome     *Outcome
	Err         error
}

// RegenReport resumen del lote.
type RegenReport struct {
	Found       int
	Regenerated int
	Failed      []ProductResult
}

// Regenerator job batch de regeneración de sugerencias. Procesa los productos en secuencia.
type Regenerator struct {
	orch *Orchestrator
	log  zerolog.Logger
}

// NewRegenerator construye el job sobre el orquestador.
func NewRegenerator(orch *Orchestrator, log zerolog.Logger) *Regenerator {
	return &Regenerator{orch: orch, log: log}
}

// Run resuelve el conjunto de productos y los regenera. onStart (opcional) recibe el número de
// productos encontrados antes de procesar el primero; onResult (opcional) recibe cada resultado.
// Un ProductID inexistente devuelve un error que envuelve domain.ErrNotFound sin escribir nada.
// Sin Atomic cada producto se genera fuera de transacción y solo el borrado y la escritura van en
// su propia transacción; un fallo no detiene el lote.
// Con Atomic todo el lote, llamadas de lenguaje incluidas, va en una sola transacción y el primer
// fallo la revierte y se devuelve como error.
func (r *Regenerator) Run(ctx context.Context, opts RegenOptions, onStart func(found int), onResult func(ProductResult)) (*RegenReport, error) {
	products, err := r.resolve(ctx, opts.ProductID)
	if err != nil {
		return nil, err
	}
	if onStart != nil {
		onStart(len(products))
	}
	if onResult == nil {
		onResult = func(ProductResult) {}
	}
	report := &RegenReport{Found: len(products)}
	mode := ModeFull
	if opts.PricingOnly {
		mode = ModePricingOnly
	}

	if opts.Atomic {
		var results []ProductResult
		err := r.orch.tx.Run(ctx, func(s Stores) error {
			results = results[:0]
			for i, p := range products {
				res := ProductResult{ProductID: p.ID, ProductName: p.Name, Index: i + 1, Total: len(products)}
				res.Outcome = r.orch.Prepare(ctx, p, mode)
				if res.Cleared, res.Err = r.write(ctx, s, p, res.Outcome, opts.Clear); res.Err != nil {
					return fmt.Errorf("producto %d: %w", p.ID, res.Err)
				}
				results = append(results, res)
			}
			return nil
		})
		if err != nil {
			r.log.Error().Err(err).Msg("regeneración atómica revertida")
			return report, err
		}
		for i, res := range results {
			r.orch.Committed(products[i], res.Outcome)
			onResult(res)
		}
		report.Regenerated = len(results)
		return report, nil
	}

	for i, p := range products {
		res := ProductResult{ProductID: p.ID, ProductName: p.Name, Index: i + 1, Total: len(products)}
		out := r.orch.Prepare(ctx, p, mode)
		var cleared int64
		res.Err = r.orch.tx.Run(ctx, func(s Stores) error {
			var err error
			cleared, err = r.write(ctx, s, p, out, opts.Clear)
			return err
		})
		if res.Err != nil {
			r.log.Error().Err(res.Err).Int64("product_id", p.ID).Msg("regeneración fallida")
			report.Failed = append(report.Failed, res)
		} else {
			res.Cleared, res.Outcome = cleared, out
			r.orch.Committed(p, out)
			report.Regenerated++
		}
		onResult(res)
	}
	return report, nil
}

func (r *Regenerator) resolve(ctx context.Context, productID int64) ([]*entity.Product, error) {
	if productID == 0 {
		return r.orch.stores.Products.ListAll(ctx)
	}
	p, err := r.orch.stores.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %d: %w", productID, domain.ErrNotFound)
	}
	return []*entity.Product{p}, nil
}

// write borra el historial si se pidió y persiste el resultado ya generado. Devuelve las filas borradas.
func (r *Regenerator) write(ctx context.Context, s Stores, p *entity.Product, out *Outcome, clear bool) (int64, error) {
	var cleared int64
	if clear {
		n, err := s.Suggestions.ClearSuggestions(ctx, p.ID)
		if err != nil {
			return 0, fmt.Errorf("limpiar historial: %w", err)
		}
		cleared = n
	}
	if err := r.orch.Persist(ctx, s, p, out); err != nil {
		return 0, err
	}
	return cleared, nil
}
