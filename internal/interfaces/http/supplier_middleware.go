package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agromarket-api/internal/application/dto"
	"github.com/jhoicas/agromarket-api/internal/domain/entity"
)

// supplierLookup contrato mínimo para verificar el perfil del vendedor.
type supplierLookup interface {
	GetByID(ctx context.Context, id int64) (*entity.Supplier, error)
}

// RequireSupplier verifica que el supplier_id del token corresponda a un proveedor existente.
// Debe usarse DESPUÉS de AuthMiddleware.
//   - 403 NO_SUPPLIER si el token no trae proveedor o este no existe.
//   - 503 SUPPLIER_CHECK_FAILED si falla la consulta.
func RequireSupplier(suppliers supplierLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		supplierID := GetSupplierID(c)
		if supplierID == 0 {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "NO_SUPPLIER", Message: "el usuario no tiene perfil de proveedor",
			})
		}
		sp, err := suppliers.GetByID(c.Context(), supplierID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code: "SUPPLIER_CHECK_FAILED", Message: "no se pudo verificar el proveedor, intente más tarde",
			})
		}
		if sp == nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "NO_SUPPLIER", Message: "proveedor no encontrado",
			})
		}
		return c.Next()
	}
}
