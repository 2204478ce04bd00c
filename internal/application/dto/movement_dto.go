package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// MovementLineRequest línea de movimiento tal como la captura el formulario.
type MovementLineRequest struct {
	ItemID        string   `json:"item_id"`
	Quantity      Quantity `json:"quantity"`
	Unit          string   `json:"unit,omitempty"`
	LooseUnitQty  Quantity `json:"loose_unit_qty,omitempty"`
	IsReturn      bool     `json:"is_return,omitempty"`
	AdjustedStock Quantity `json:"adjusted_stock,omitempty"`
}

// CreateMovementRequest body para POST /api/movements.
type CreateMovementRequest struct {
	Kind       string                `json:"kind"`
	Reference  string                `json:"reference,omitempty"`
	SupplierID string                `json:"supplier_id,omitempty"`
	Reason     string                `json:"reason,omitempty"`
	Notes      string                `json:"notes,omitempty"`
	Date       *time.Time            `json:"date,omitempty"`
	Lines      []MovementLineRequest `json:"lines"`
}

// UpdateMovementRequest body para PUT /api/movements/:id. El tipo no se puede
// cambiar; las líneas reemplazan por completo a las originales.
type UpdateMovementRequest struct {
	Reference  string                `json:"reference,omitempty"`
	SupplierID string                `json:"supplier_id,omitempty"`
	Reason     string                `json:"reason,omitempty"`
	Notes      string                `json:"notes,omitempty"`
	Date       *time.Time            `json:"date,omitempty"`
	Lines      []MovementLineRequest `json:"lines"`
}

// MovementLineResponse línea confirmada, con el delta aplicado y los campos derivados.
type MovementLineResponse struct {
	ID            string          `json:"id"`
	ItemID        string          `json:"item_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	LooseUnitQty  decimal.Decimal `json:"loose_unit_qty"`
	IsReturn      bool            `json:"is_return"`
	AdjustedStock decimal.Decimal `json:"adjusted_stock"`
	BaseDelta     decimal.Decimal `json:"base_delta"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	EstimatedLoss decimal.Decimal `json:"estimated_loss"`
}

// MovementResponse representación de un movimiento confirmado.
type MovementResponse struct {
	ID              string                 `json:"id"`
	Kind            string                 `json:"kind"`
	Reference       string                 `json:"reference,omitempty"`
	SupplierID      string                 `json:"supplier_id,omitempty"`
	PurchaseOrderID string                 `json:"purchase_order_id,omitempty"`
	Reason          string                 `json:"reason,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	Date            time.Time              `json:"date"`
	CreatedBy       string                 `json:"created_by,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	Lines           []MovementLineResponse `json:"lines"`
}

// FromMovement mapea la entidad a su representación API.
func FromMovement(m *entity.Movement) MovementResponse {
	resp := MovementResponse{
		ID:              m.ID,
		Kind:            m.Kind,
		Reference:       m.Reference,
		SupplierID:      m.SupplierID,
		PurchaseOrderID: m.PurchaseOrderID,
		Reason:          m.Reason,
		Notes:           m.Notes,
		Date:            m.Date,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Lines:           make([]MovementLineResponse, 0, len(m.Lines)),
	}
	for _, l := range m.Lines {
		resp.Lines = append(resp.Lines, MovementLineResponse{
			ID:            l.ID,
			ItemID:        l.ItemID,
			Quantity:      l.Quantity,
			Unit:          l.Unit,
			LooseUnitQty:  l.LooseUnitQty,
			IsReturn:      l.IsReturn,
			AdjustedStock: l.AdjustedStock,
			BaseDelta:     l.BaseDelta,
			UnitCost:      l.UnitCost,
			TotalCost:     l.TotalCost,
			EstimatedLoss: l.EstimatedLoss,
		})
	}
	return resp
}
