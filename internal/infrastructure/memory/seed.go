package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/agromarket-api/internal/domain/entity"
)

// Seed carga un proveedor y un catálogo pequeño para el modo demo. Devuelve el proveedor creado.
func (s *Store) Seed() *entity.Supplier {
	sp := &entity.Supplier{
		UserID:      1,
		CompanyName: "Hunter Valley Growers",
		ContactName: "Alex Morgan",
		Phone:       "+61 2 5550 1234",
		Email:       "sales@huntervalleygrowers.example",
		Address:     "12 Orchard Rd, Pokolbin NSW 2320",
		Description: "Family-run orchard and market garden.",
	}
	s.AddSupplier(sp)

	base := s.now().Add(-time.Hour)
	catalog := []entity.Product{
		{Name: "Pink Lady Apples", Category: "Fruit", Unit: "kg", Stock: 600, BasePrice: decimal.RequireFromString("40.00")},
		{Name: "Dutch Carrots", Category: "Vegetable", Unit: "bunch", Stock: 10, BasePrice: decimal.RequireFromString("20.00")},
		{Name: "Organic Rolled Oats", Category: "Grains", Unit: "kg", Stock: 250, BasePrice: decimal.RequireFromString("8.50")},
		{Name: "Avocado Tray (20)", Category: "Fresh Fruits", Unit: "tray", Stock: 45, BasePrice: decimal.RequireFromString("65.00")},
	}
	for i := range catalog {
		p := catalog[i]
		p.SupplierID = sp.ID
		p.IsActive = true
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		s.AddProduct(&p)
	}
	return sp
}
