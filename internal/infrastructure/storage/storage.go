// Package storage abre el backend de persistencia configurado (PostgreSQL o memoria).
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/agromarket-api/internal/application/enrichment"
	"github.com/jhoicas/agromarket-api/internal/infrastructure/memory"
	"github.com/jhoicas/agromarket-api/internal/infrastructure/postgres"
	"github.com/jhoicas/agromarket-api/pkg/config"
)

// Backend repositorios y runner transaccional de un mismo almacén.
type Backend struct {
	Stores enrichment.Stores
	Tx     enrichment.TxRunner
	Driver string
	close  func()
}

// Close libera las conexiones del backend.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open abre el almacén según STORAGE_DRIVER. Con postgres aplica las migraciones pendientes
// si migrate es true; con memory carga el catálogo de demostración.
func Open(ctx context.Context, cfg *config.Config, migrate bool, log zerolog.Logger) (*Backend, error) {
	if cfg.App.UsesMemoryStorage() {
		store := memory.NewStore()
		sp := store.Seed()
		log.Warn().Int64("supplier_id", sp.ID).Msg("almacenamiento en memoria: los datos se pierden al salir")
		return &Backend{Stores: store.Stores(), Tx: store, Driver: "memory"}, nil
	}

	dsn := cfg.DB.ConnectionString()
	if migrate {
		m, err := postgres.NewMigrator(dsn)
		if err != nil {
			return nil, err
		}
		err = m.Up()
		_ = m.Close()
		if err != nil {
			return nil, err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return &Backend{
		Stores: enrichment.Stores{
			Products:    postgres.NewProductRepository(pool),
			Suppliers:   postgres.NewSupplierRepository(pool),
			Suggestions: postgres.NewSuggestionRepository(pool),
		},
		Tx:     postgres.NewTxRunner(pool),
		Driver: "postgres",
		close:  pool.Close,
	}, nil
}
