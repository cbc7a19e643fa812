package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultUnit unidad de venta cuando el vendedor no indica otra.
const DefaultUnit = "kg"

// Product producto agrícola publicado por un proveedor.
// El pipeline de enriquecimiento solo escribe DescriptionEN y DescriptionZH.
type Product struct {
	ID            int64
	SupplierID    int64
	Name          string
	Category      string
	Unit          string
	Stock         int
	BasePrice     decimal.Decimal
	DescriptionEN string
	DescriptionZH string
	IsActive      bool
	CreatedAt     time.Time
}

// UnitOrDefault devuelve la unidad del producto o DefaultUnit si está vacía.
func (p *Product) UnitOrDefault() string {
	if p.Unit == "" {
		return DefaultUnit
	}
	return p.Unit
}
