// Comando regen_suggestions: regenera descripciones y sugerencias de precio/logística
// para todos los productos o para uno solo.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/agromarket-api/internal/application/enrichment"
	"github.com/jhoicas/agromarket-api/internal/application/ports"
	"github.com/jhoicas/agromarket-api/internal/domain"
	"github.com/jhoicas/agromarket-api/internal/domain/pricing"
	infraai "github.com/jhoicas/agromarket-api/internal/infrastructure/ai"
	"github.com/jhoicas/agromarket-api/internal/infrastructure/storage"
	"github.com/jhoicas/agromarket-api/pkg/config"
	"github.com/jhoicas/agromarket-api/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "regen_suggestions",
		Usage: "regenera descripciones IA y sugerencias de precio y logística",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "product-id", Usage: "solo el producto indicado (falla si no existe)"},
			&cli.BoolFlag{Name: "clear", Usage: "borra el historial de sugerencias de cada producto antes de regenerar"},
			&cli.BoolFlag{Name: "atomic", Usage: "todo el lote en una transacción; un fallo revierte todo"},
			&cli.BoolFlag{Name: "pricing-only", Usage: "solo precio y logística, sin llamar al proveedor de IA"},
			&cli.StringFlag{Name: "llm-provider", Usage: "proveedor LLM (openai, deepseek, anthropic, gemini)"},
			&cli.StringFlag{Name: "llm-api-key", Usage: "credencial LLM; tiene prioridad sobre el entorno"},
			&cli.StringFlag{Name: "llm-model", Usage: "modelo LLM; tiene prioridad sobre el entorno"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.LoadWithOverrides(config.LLMOverrides{
		Provider: c.String("llm-provider"),
		APIKey:   c.String("llm-api-key"),
		Model:    c.String("llm-model"),
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	runID := uuid.New()
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "regen_suggestions",
		Output:  os.Stderr,
	}).With().Str("run_id", runID.String()).Logger()

	ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	backend, err := storage.Open(ctx, cfg, false, log)
	if err != nil {
		return cli.Exit(fmt.Sprintf("abrir almacenamiento: %v", err), 1)
	}
	defer backend.Close()

	llmCfg := cfg.LLM
	orch := enrichment.NewOrchestrator(
		backend.Stores,
		backend.Tx,
		func() ports.LanguageClient { return infraai.NewClient(llmCfg) },
		pricing.NewRuleEngine(cfg.Logistics.Region, cfg.Logistics.Carrier),
		log,
	)
	log.Info().
		Str("storage", backend.Driver).
		Str("llm_provider", cfg.LLM.Provider).
		Int64("product_id", c.Int64("product-id")).
		Bool("clear", c.Bool("clear")).
		Bool("atomic", c.Bool("atomic")).
		Msg("iniciando regeneración")

	return regenerate(ctx, c.App.Writer, enrichment.NewRegenerator(orch, log), enrichment.RegenOptions{
		ProductID:   c.Int64("product-id"),
		Clear:       c.Bool("clear"),
		Atomic:      c.Bool("atomic"),
		PricingOnly: c.Bool("pricing-only"),
	})
}

// regenerate ejecuta el lote e imprime el progreso en w. Devuelve un cli.ExitCoder con
// código 1 si el producto no existe, si falla el almacenamiento o si algún producto falló.
func regenerate(ctx context.Context, w io.Writer, reg *enrichment.Regenerator, opts enrichment.RegenOptions) error {
	report, err := reg.Run(ctx, opts,
		func(found int) { fmt.Fprintf(w, "Encontrados %d producto(s).\n", found) },
		func(res enrichment.ProductResult) { printResult(w, res) })
	if err != nil {
		if opts.ProductID != 0 && errors.Is(err, domain.ErrNotFound) {
			return cli.Exit(fmt.Sprintf("Producto %d no encontrado.", opts.ProductID), 1)
		}
		return cli.Exit(fmt.Sprintf("Regeneración abortada: %v", err), 1)
	}
	fmt.Fprintf(w, "Listo. Regenerados: %d producto(s).\n", report.Regenerated)
	if len(report.Failed) > 0 {
		return cli.Exit(fmt.Sprintf("Fallaron %d producto(s).", len(report.Failed)), 1)
	}
	return nil
}

func printResult(w io.Writer, res enrichment.ProductResult) {
	if res.Err != nil {
		fmt.Fprintf(w, "✗ Error en producto #%d: %s: %v\n", res.ProductID, res.ProductName, res.Err)
		return
	}
	if res.Cleared > 0 {
		fmt.Fprintf(w, "  Borradas %d sugerencia(s) de producto #%d.\n", res.Cleared, res.ProductID)
	}
	fmt.Fprintf(w, "✓ Regenerado producto #%d: %s\n", res.ProductID, res.ProductName)
}
