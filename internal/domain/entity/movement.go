package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario de farmacia.
const (
	MovementKindReceipt        = "RECEIPT"         // entrada por entrega de proveedor
	MovementKindPOReceipt      = "PO_RECEIPT"      // entrada por recepción de orden de compra
	MovementKindConsumption    = "CONSUMPTION"     // consumo interno (tratamiento, departamento)
	MovementKindPOS            = "POS"             // venta en mostrador (líneas venta/devolución)
	MovementKindSupplierReturn = "SUPPLIER_RETURN" // devolución a proveedor
	MovementKindAdjustment     = "ADJUSTMENT"      // ajuste de stock (conteo físico)
	MovementKindMissedSale     = "MISSED_SALE"     // venta perdida, sin efecto en stock
)

// Razones de consumo.
const (
	ConsumptionPatientTreatment = "PATIENT_TREATMENT"
	ConsumptionEmergencyUse     = "EMERGENCY_USE"
	ConsumptionDepartment       = "DEPARTMENT_CONSUMPTION"
	ConsumptionExpiredDisposal  = "EXPIRED_DISPOSAL"
	ConsumptionDamagedDisposal  = "DAMAGED_DISPOSAL"
	ConsumptionOther            = "OTHER"
)

// Razones de ajuste de stock.
const (
	AdjustmentPhysicalCount = "PHYSICAL_COUNT"
	AdjustmentFoundStock    = "FOUND_STOCK"
	AdjustmentDamagedStock  = "DAMAGED_STOCK"
	AdjustmentExpiredStock  = "EXPIRED_STOCK"
	AdjustmentTheft         = "THEFT"
)

// Razones de venta perdida.
const (
	MissedSaleOutOfStock        = "OUT_OF_STOCK"
	MissedSaleCustomerCancelled = "CUSTOMER_CANCELLED"
	MissedSalePaymentFailed     = "PAYMENT_FAILED"
	MissedSaleItemDamaged       = "ITEM_DAMAGED"
	MissedSaleOther             = "OTHER"
)

// Movement es la cabecera de un movimiento de inventario. Los movimientos de
// recepción, venta en mostrador y devolución a proveedor pueden tener varias líneas;
// el resto lleva exactamente una.
type Movement struct {
	ID              string
	Kind            string
	Reference       string // número de lote, documento o remisión
	SupplierID      string // recepción y devolución a proveedor
	PurchaseOrderID string // solo PO_RECEIPT
	Reason          string // enum según tipo; texto libre en devolución a proveedor
	Notes           string
	Date            time.Time
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Lines           []MovementLine
}

// MovementLine es una línea de movimiento contra un artículo. BaseDelta guarda el
// delta firmado (unidades base) tal como se aplicó a AvailableQuantity al confirmar;
// revertir una línea es aplicar -BaseDelta, sin recalcular nada.
type MovementLine struct {
	ID            string
	MovementID    string
	ItemID        string
	Quantity      decimal.Decimal // cantidad semántica tal como se capturó
	Unit          string          // pack | unit
	LooseUnitQty  decimal.Decimal // recepción: unidades sueltas fuera de packs
	IsReturn      bool            // POS: true = devolución de cliente
	AdjustedStock decimal.Decimal // ajuste: stock físico contado (objetivo)
	BaseDelta     decimal.Decimal // delta firmado aplicado, unidades base
	UnitCost      decimal.Decimal // economía unitaria del artículo al confirmar
	TotalCost     decimal.Decimal // consumo: Quantity × UnitCost
	EstimatedLoss decimal.Decimal // venta perdida: Quantity × RetailPrice
}
