package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseOrderPending  = "PENDING"
	PurchaseOrderReceived = "RECEIVED"
)

// PurchaseOrder representa una orden de compra a proveedor. Al recibirla se genera
// un movimiento PO_RECEIPT que acredita UnitsRequired de cada línea al stock.
type PurchaseOrder struct {
	ID          string
	OrderNumber string
	SupplierID  string
	Status      string
	OrderedAt   time.Time
	ReceivedAt  *time.Time
	CreatedBy   string
	CreatedAt   time.Time
	Lines       []PurchaseOrderLine
}

// PurchaseOrderLine es una línea de la orden: packs pedidos y su equivalente en
// unidades base (UnitsRequired), que es lo que entra al stock en la recepción.
type PurchaseOrderLine struct {
	ID              string
	PurchaseOrderID string
	ItemID          string
	PacksOrdered    decimal.Decimal
	UnitsRequired   decimal.Decimal // PacksOrdered × factor de conversión al ordenar
	UnitCost        decimal.Decimal
}
