package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agromarket-api/internal/application/dto"
	"github.com/jhoicas/agromarket-api/internal/application/usecase"
)

// ProductHandler endpoints públicos del catálogo.
type ProductHandler struct {
	products   *usecase.ProductUseCase
	enrichment *usecase.EnrichmentUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(products *usecase.ProductUseCase, enrichment *usecase.EnrichmentUseCase) *ProductHandler {
	return &ProductHandler{products: products, enrichment: enrichment}
}

// Catalog godoc
// @Summary      Catálogo de productos activos
// @Tags         catalog
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/catalog [get]
func (h *ProductHandler) Catalog(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.products.Catalog(c.Context(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Detail godoc
// @Summary      Ficha pública de un producto
// @Description  Incluye las 5 sugerencias de precio y logística más recientes.
// @Tags         catalog
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.products.Detail(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Ask godoc
// @Summary      Preguntar sobre un producto
// @Description  Responde con IA usando los datos del producto, su proveedor y la última estimación logística.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID del producto"
// @Param        body  body  dto.QuestionRequest  true  "Pregunta (máx. 300 caracteres)"
// @Success      200   {object}  dto.AnswerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/questions [post]
func (h *ProductHandler) Ask(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return invalidID(c)
	}
	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.enrichment.Ask(c.Context(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
