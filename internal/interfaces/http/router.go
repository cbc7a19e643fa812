package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agromarket-api/internal/application/usecase"
	"github.com/jhoicas/agromarket-api/internal/domain/repository"
	"github.com/jhoicas/agromarket-api/pkg/jwt"
)

// SwaggerFile especificación OpenAPI generada con swag; la UI se monta solo si existe.
const SwaggerFile = "./docs/swagger.json"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	EnrichmentUC *usecase.EnrichmentUseCase
	Suppliers    repository.SupplierRepository
	JWTSecret    string
	AppName      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: SwaggerFile,
			Path:     "docs",
			Title:    "AgroMarket API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Catálogo (público)
	productHandler := NewProductHandler(deps.ProductUC, deps.EnrichmentUC)
	api.Get("/catalog", productHandler.Catalog)
	api.Get("/products/:id", productHandler.Detail)
	api.Post("/products/:id/questions", productHandler.Ask)

	// Vendedor (JWT + rol SELLER + perfil de proveedor)
	seller := api.Group("/seller",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(jwt.RoleSeller),
		RequireSupplier(deps.Suppliers),
	)
	sellerHandler := NewSellerHandler(deps.ProductUC, deps.EnrichmentUC)
	seller.Get("/products", sellerHandler.List)
	seller.Post("/products/:id/enrich", sellerHandler.Enrich)
	seller.Post("/products/:id/toggle-active", sellerHandler.ToggleActive)
	seller.Get("/products/:id/suggestions", sellerHandler.Suggestions)
	seller.Get("/products/:id/sheet", sellerHandler.Sheet)
}
