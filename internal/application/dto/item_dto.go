package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// CreateItemRequest body para POST /api/items. AvailableQuantity es opcional: si no
// viene, se inicializa desde OpeningStock.
type CreateItemRequest struct {
	Name              string           `json:"name"`
	CategoryID        string           `json:"category_id,omitempty"`
	ManufacturerID    string           `json:"manufacturer_id,omitempty"`
	SupplierID        string           `json:"supplier_id,omitempty"`
	RackID            string           `json:"rack_id,omitempty"`
	Unit              string           `json:"unit,omitempty"`
	ConversionUnit    Quantity         `json:"conversion_unit,omitempty"`
	UnitCost          Quantity         `json:"unit_cost,omitempty"`
	RetailPrice       Quantity         `json:"retail_price,omitempty"`
	ReOrderLevel      Quantity         `json:"re_order_level,omitempty"`
	OpeningStock      Quantity         `json:"opening_stock,omitempty"`
	AvailableQuantity *decimal.Decimal `json:"available_quantity,omitempty"`
}

// UpdateItemRequest body para PUT /api/items/:id. No incluye AvailableQuantity:
// el stock en mano solo lo mutan los movimientos.
type UpdateItemRequest struct {
	Name           string   `json:"name"`
	CategoryID     string   `json:"category_id,omitempty"`
	ManufacturerID string   `json:"manufacturer_id,omitempty"`
	SupplierID     string   `json:"supplier_id,omitempty"`
	RackID         string   `json:"rack_id,omitempty"`
	Unit           string   `json:"unit,omitempty"`
	ConversionUnit Quantity `json:"conversion_unit,omitempty"`
	UnitCost       Quantity `json:"unit_cost,omitempty"`
	RetailPrice    Quantity `json:"retail_price,omitempty"`
	ReOrderLevel   Quantity `json:"re_order_level,omitempty"`
}

// ItemResponse representación de un artículo para la API.
type ItemResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	CategoryID        string          `json:"category_id,omitempty"`
	ManufacturerID    string          `json:"manufacturer_id,omitempty"`
	SupplierID        string          `json:"supplier_id,omitempty"`
	RackID            string          `json:"rack_id,omitempty"`
	Unit              string          `json:"unit"`
	ConversionUnit    decimal.Decimal `json:"conversion_unit"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	RetailPrice       decimal.Decimal `json:"retail_price"`
	ReOrderLevel      decimal.Decimal `json:"re_order_level"`
	OpeningStock      decimal.Decimal `json:"opening_stock"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	ExpiredQuantity   decimal.Decimal `json:"expired_quantity"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// FromItem mapea la entidad a su representación API.
func FromItem(i *entity.Item) ItemResponse {
	return ItemResponse{
		ID:                i.ID,
		Name:              i.Name,
		CategoryID:        i.CategoryID,
		ManufacturerID:    i.ManufacturerID,
		SupplierID:        i.SupplierID,
		RackID:            i.RackID,
		Unit:              i.Unit,
		ConversionUnit:    i.ConversionUnit,
		UnitCost:          i.UnitCost,
		RetailPrice:       i.RetailPrice,
		ReOrderLevel:      i.ReOrderLevel,
		OpeningStock:      i.OpeningStock,
		AvailableQuantity: i.AvailableQuantity,
		ExpiredQuantity:   i.ExpiredQuantity,
		Active:            i.Active,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}
