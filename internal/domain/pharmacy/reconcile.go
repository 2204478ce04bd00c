package pharmacy

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// CheckFeasible valida que un débito de requiredBase unidades base no deje el stock
// del artículo en negativo. Devuelve InsufficientStockError con disponible/requerido
// para que el caller lo exponga al usuario.
func CheckFeasible(item *entity.Item, requiredBase decimal.Decimal) error {
	if item.AvailableQuantity.LessThan(requiredBase) {
		return &domain.InsufficientStockError{
			ItemID:    item.ID,
			Available: item.AvailableQuantity,
			Required:  requiredBase,
		}
	}
	return nil
}

// LineCost calcula el costo total de una línea de consumo con la economía unitaria
// actual del artículo (no con una copia posiblemente desactualizada del movimiento).
func LineCost(item *entity.Item, quantity decimal.Decimal) decimal.Decimal {
	return quantity.Mul(item.UnitCost)
}

// EstimatedLoss calcula la pérdida estimada de una venta perdida al precio de venta
// actual del artículo.
func EstimatedLoss(item *entity.Item, quantity decimal.Decimal) decimal.Decimal {
	return quantity.Mul(item.RetailPrice)
}
