package pharmacy

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// Delta calcula el efecto firmado de una línea de movimiento sobre
// AvailableQuantity, en unidades base, según la convención de signo de cada tipo:
//
//	RECEIPT          +cantidad×factor + unidades sueltas
//	PO_RECEIPT       +cantidad (la línea ya viene en unidades base)
//	CONSUMPTION      −cantidad
//	POS venta        −cantidad×factor   (devolución: +cantidad×factor)
//	SUPPLIER_RETURN  −cantidad
//	ADJUSTMENT       stock contado − stock actual (firmado)
//	MISSED_SALE      0 (solo reporte)
//
// Para ADJUSTMENT el delta depende del stock actual del artículo, por eso debe
// calcularse con la fila bloqueada dentro de la transacción del movimiento.
func Delta(kind string, line *entity.MovementLine, item *entity.Item) decimal.Decimal {
	base := ToBaseUnits(line.Quantity, line.Unit, item)
	switch kind {
	case entity.MovementKindReceipt:
		return base.Add(line.LooseUnitQty)
	case entity.MovementKindPOReceipt:
		return base
	case entity.MovementKindConsumption, entity.MovementKindSupplierReturn:
		return base.Neg()
	case entity.MovementKindPOS:
		if line.IsReturn {
			return base
		}
		return base.Neg()
	case entity.MovementKindAdjustment:
		return line.AdjustedStock.Sub(item.AvailableQuantity)
	}
	// MISSED_SALE y tipos desconocidos no tocan el stock.
	return decimal.Zero
}
