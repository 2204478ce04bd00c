package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de presentación de un artículo.
const (
	UnitPack   = "pack" // presentación comercial (caja, blíster)
	UnitSingle = "unit" // unidad base (tableta, ampolla)
)

// Item representa un artículo del catálogo de farmacia (SKU).
// AvailableQuantity es la única fuente de verdad del stock en mano, expresada en
// unidades base, y solo la mutan los movimientos del libro de inventario.
type Item struct {
	ID                string
	Name              string
	CategoryID        string
	ManufacturerID    string
	SupplierID        string
	RackID            string
	Unit              string          // presentación por defecto: pack
	ConversionUnit    decimal.Decimal // unidades base por pack
	UnitCost          decimal.Decimal // costo por unidad base
	RetailPrice       decimal.Decimal // precio de venta por unidad base
	ReOrderLevel      decimal.Decimal
	OpeningStock      decimal.Decimal
	AvailableQuantity decimal.Decimal // stock en mano, unidades base
	ExpiredQuantity   decimal.Decimal
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
