package enrichment

import (
	"context"

	"github.com/jhoicas/agromarket-api/internal/application/ports"
	"github.com/jhoicas/agromarket-api/internal/domain/repository"
)

// Stores repositorios atados a una misma transacción.
type Stores struct {
	Products    repository.ProductRepository
	Suppliers   repository.SupplierRepository
	Suggestions repository.SuggestionRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ninguna escritura.
type TxRunner interface {
	Run(ctx context.Context, fn func(Stores) error) error
}

// ClientFactory construye un cliente de lenguaje nuevo por invocación.
type ClientFactory func() ports.LanguageClient
