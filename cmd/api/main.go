package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/agromarket-api/internal/application/enrichment"
	"github.com/jhoicas/agromarket-api/internal/application/ports"
	"github.com/jhoicas/agromarket-api/internal/application/usecase"
	"github.com/jhoicas/agromarket-api/internal/domain/pricing"
	infraai "github.com/jhoicas/agromarket-api/internal/infrastructure/ai"
	infrapdf "github.com/jhoicas/agromarket-api/internal/infrastructure/pdf"
	"github.com/jhoicas/agromarket-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/agromarket-api/internal/interfaces/http"
	"github.com/jhoicas/agromarket-api/pkg/config"
	"github.com/jhoicas/agromarket-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "api",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Str("llm_provider", cfg.LLM.Provider).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: las rutas de vendedor rechazarán todos los tokens")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	backend, err := storage.Open(ctx, cfg, true, log.Zerolog())
	if err != nil {
		log.Error().Err(err).Msg("abrir almacenamiento")
		os.Exit(1)
	}
	defer backend.Close()

	llmCfg := cfg.LLM
	orchestrator := enrichment.NewOrchestrator(
		backend.Stores,
		backend.Tx,
		func() ports.LanguageClient { return infraai.NewClient(llmCfg) },
		pricing.NewRuleEngine(cfg.Logistics.Region, cfg.Logistics.Carrier),
		log.Zerolog(),
	)

	productUC := usecase.NewProductUseCase(
		backend.Stores.Products,
		backend.Stores.Suppliers,
		backend.Stores.Suggestions,
		infrapdf.NewMarotoSheetGenerator(),
		cfg.App.PublicBaseURL,
	)
	enrichmentUC := usecase.NewEnrichmentUseCase(productUC, orchestrator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.LLM.Timeout*2 + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		EnrichmentUC: enrichmentUC,
		Suppliers:    backend.Stores.Suppliers,
		JWTSecret:    cfg.JWT.Secret,
		AppName:      cfg.App.Name,
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		return app.Listen(cfg.HTTP.Addr())
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("apagado con error")
	}
	log.Info().Msg("aplicación detenida")
}
