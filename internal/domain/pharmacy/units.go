package pharmacy

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// ConversionFactor devuelve el factor de conversión pack→unidades base del artículo.
// Un factor vacío o cero degrada a 1 (identidad): el catálogo histórico depende de
// ese comportamiento, así que se preserva en lugar de fallar la validación.
func ConversionFactor(item *entity.Item) decimal.Decimal {
	if item == nil || item.ConversionUnit.LessThanOrEqual(decimal.Zero) {
		return decimal.NewFromInt(1)
	}
	return item.ConversionUnit
}

// ToBaseUnits convierte una cantidad expresada en packs o unidades a unidades base.
// Función pura, nunca falla: con unit distinto de pack la cantidad pasa sin cambio.
func ToBaseUnits(quantity decimal.Decimal, unit string, item *entity.Item) decimal.Decimal {
	if unit == entity.UnitPack {
		return quantity.Mul(ConversionFactor(item))
	}
	return quantity
}
