package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/agromarket-api/internal/application/enrichment"
	"github.com/jhoicas/agromarket-api/internal/application/ports"
	"github.com/jhoicas/agromarket-api/internal/domain/pricing"
	infraai "github.com/jhoicas/agromarket-api/internal/infrastructure/ai"
	"github.com/jhoicas/agromarket-api/internal/infrastructure/memory"
	"github.com/jhoicas/agromarket-api/pkg/config"
)

func newRegenerator(store *memory.Store) *enrichment.Regenerator {
	orch := enrichment.NewOrchestrator(
		store.Stores(),
		store,
		func() ports.LanguageClient { return infraai.NewClient(config.LLMConfig{Provider: config.ProviderNone}) },
		pricing.NewRuleEngine("", ""),
		zerolog.Nop(),
	)
	return enrichment.NewRegenerator(orch, zerolog.Nop())
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var coder cli.ExitCoder
	require.True(t, errors.As(err, &coder), "se esperaba cli.ExitCoder: %v", err)
	return coder.ExitCode()
}

func TestRegenerate_TodosLosProductos(t *testing.T) {
	store := memory.NewStore()
	store.Seed()
	var out bytes.Buffer

	err := regenerate(context.Background(), &out, newRegenerator(store), enrichment.RegenOptions{})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Encontrados 4 producto(s).")
	assert.Contains(t, out.String(), "✓ Regenerado producto #")
	assert.Contains(t, out.String(), "Pink Lady Apples")
	assert.Contains(t, out.String(), "Listo. Regenerados: 4 producto(s).")
}

func TestRegenerate_IDInexistenteSaleConCodigo1(t *testing.T) {
	store := memory.NewStore()
	store.Seed()
	var out bytes.Buffer

	err := regenerate(context.Background(), &out, newRegenerator(store), enrichment.RegenOptions{ProductID: 9999})
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "no encontrado")
	assert.Empty(t, out.String())
}

func TestRegenerate_FalloDeProductoSaleConCodigo1(t *testing.T) {
	store := memory.NewStore()
	store.Seed()
	store.FailOn = func(op string, productID int64) error {
		if op == "record_price" {
			return errors.New("disco lleno")
		}
		return nil
	}
	var out bytes.Buffer

	err := regenerate(context.Background(), &out, newRegenerator(store), enrichment.RegenOptions{PricingOnly: true})
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, out.String(), "✗ Error en producto #")
	assert.Contains(t, out.String(), "Listo. Regenerados: 0 producto(s).")
}

func TestRegenerate_AtomicoAbortadoInformaEncontrados(t *testing.T) {
	store := memory.NewStore()
	store.Seed()
	store.FailOn = func(op string, productID int64) error {
		if op == "record_logistics" {
			return errors.New("disco lleno")
		}
		return nil
	}
	var out bytes.Buffer

	err := regenerate(context.Background(), &out, newRegenerator(store), enrichment.RegenOptions{Atomic: true, PricingOnly: true})
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "Regeneración abortada")
	assert.Equal(t, "Encontrados 4 producto(s).\n", out.String())
}

func TestRegenerate_ClearInformaBorrados(t *testing.T) {
	store := memory.NewStore()
	store.Seed()
	reg := newRegenerator(store)
	ctx := context.Background()
	require.NoError(t, regenerate(ctx, &bytes.Buffer{}, reg, enrichment.RegenOptions{PricingOnly: true}))

	var out bytes.Buffer
	require.NoError(t, regenerate(ctx, &out, reg, enrichment.RegenOptions{Clear: true, PricingOnly: true}))
	assert.Contains(t, out.String(), "Borradas 2 sugerencia(s)")
}
