package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agromarket-api/internal/application/usecase"
)

// SellerHandler endpoints del vendedor sobre sus propios productos (JWT + rol SELLER).
type SellerHandler struct {
	products   *usecase.ProductUseCase
	enrichment *usecase.EnrichmentUseCase
}

// NewSellerHandler construye el handler.
func NewSellerHandler(products *usecase.ProductUseCase, enrichment *usecase.EnrichmentUseCase) *SellerHandler {
	return &SellerHandler{products: products, enrichment: enrichment}
}

// List godoc
// @Summary      Productos del vendedor
// @Tags         seller
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/seller/products [get]
func (h *SellerHandler) List(c *fiber.Ctx) error {
	out, err := h.products.ListForSupplier(c.Context(), GetSupplierID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Enrich godoc
// @Summary      Regenerar descripciones y sugerencias
// @Description  Genera descripciones EN/ZH con IA y registra una sugerencia de precio y una estimación
//               logística. Un fallo del proveedor de IA no impide registrar las sugerencias.
// @Tags         seller
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.EnrichResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/seller/products/{id}/enrich [post]
func (h *SellerHandler) Enrich(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.enrichment.Enrich(c.Context(), GetSupplierID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToggleActive godoc
// @Summary      Publicar o retirar un producto
// @Tags         seller
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/seller/products/{id}/toggle-active [post]
func (h *SellerHandler) ToggleActive(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.products.ToggleActive(c.Context(), GetSupplierID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Suggestions godoc
// @Summary      Historial de sugerencias
// @Tags         seller
// @Security     Bearer
// @Produce      json
// @Param        id     path   int  true   "ID del producto"
// @Param        limit  query  int  false  "Límite"  default(20)
// @Success      200    {object}  dto.SuggestionHistoryResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/seller/products/{id}/suggestions [get]
func (h *SellerHandler) Suggestions(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.products.Suggestions(c.Context(), GetSupplierID(c), id, c.QueryInt("limit", 20))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sheet godoc
// @Summary      Ficha PDF del producto
// @Tags         seller
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/seller/products/{id}/sheet [get]
func (h *SellerHandler) Sheet(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return invalidID(c)
	}
	pdf, err := h.products.Sheet(c.Context(), GetSupplierID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="product-%d.pdf"`, id))
	return c.Send(pdf)
}
