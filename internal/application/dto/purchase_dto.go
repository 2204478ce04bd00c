package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// PurchaseOrderLineRequest línea para crear una orden de compra.
type PurchaseOrderLineRequest struct {
	ItemID       string   `json:"item_id"`
	PacksOrdered Quantity `json:"packs_ordered"`
	UnitCost     Quantity `json:"unit_cost,omitempty"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	OrderNumber string                     `json:"order_number"`
	SupplierID  string                     `json:"supplier_id"`
	Lines       []PurchaseOrderLineRequest `json:"lines"`
}

// PurchaseOrderLineResponse línea de orden con unidades base calculadas.
type PurchaseOrderLineResponse struct {
	ID            string          `json:"id"`
	ItemID        string          `json:"item_id"`
	PacksOrdered  decimal.Decimal `json:"packs_ordered"`
	UnitsRequired decimal.Decimal `json:"units_required"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse representación de una orden de compra.
type PurchaseOrderResponse struct {
	ID          string                      `json:"id"`
	OrderNumber string                      `json:"order_number"`
	SupplierID  string                      `json:"supplier_id"`
	Status      string                      `json:"status"`
	OrderedAt   time.Time                   `json:"ordered_at"`
	ReceivedAt  *time.Time                  `json:"received_at,omitempty"`
	CreatedBy   string                      `json:"created_by,omitempty"`
	Lines       []PurchaseOrderLineResponse `json:"lines"`
}

// FromPurchaseOrder mapea la entidad a su representación API.
func FromPurchaseOrder(po *entity.PurchaseOrder) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		ID:          po.ID,
		OrderNumber: po.OrderNumber,
		SupplierID:  po.SupplierID,
		Status:      po.Status,
		OrderedAt:   po.OrderedAt,
		ReceivedAt:  po.ReceivedAt,
		CreatedBy:   po.CreatedBy,
		Lines:       make([]PurchaseOrderLineResponse, 0, len(po.Lines)),
	}
	for _, l := range po.Lines {
		resp.Lines = append(resp.Lines, PurchaseOrderLineResponse{
			ID:            l.ID,
			ItemID:        l.ItemID,
			PacksOrdered:  l.PacksOrdered,
			UnitsRequired: l.UnitsRequired,
			UnitCost:      l.UnitCost,
		})
	}
	return resp
}

// ClosingLineResponse fila del resumen de cierre diario.
type ClosingLineResponse struct {
	ItemID          string          `json:"item_id"`
	ItemName        string          `json:"item_name"`
	Credits         decimal.Decimal `json:"credits"`
	Debits          decimal.Decimal `json:"debits"`
	NetChange       decimal.Decimal `json:"net_change"`
	ClosingQuantity decimal.Decimal `json:"closing_quantity"`
	Movements       int             `json:"movements"`
}
