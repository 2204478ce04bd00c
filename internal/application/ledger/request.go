package ledger

import (
	"context"
	"time"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// CreateFromRequest adapta el request HTTP al caso de uso Create(ctx, MovementInput).
func (uc *UseCase) CreateFromRequest(ctx context.Context, userID string, in dto.CreateMovementRequest) (*entity.Movement, error) {
	return uc.Create(ctx, MovementInput{
		Kind:       in.Kind,
		Reference:  in.Reference,
		SupplierID: in.SupplierID,
		Reason:     in.Reason,
		Notes:      in.Notes,
		Date:       dateOrZero(in.Date),
		UserID:     userID,
		Lines:      linesFromRequest(in.Lines),
	})
}

// UpdateFromRequest adapta el request HTTP al caso de uso Update.
func (uc *UseCase) UpdateFromRequest(ctx context.Context, movementID, userID string, in dto.UpdateMovementRequest) (*entity.Movement, error) {
	return uc.Update(ctx, movementID, MovementInput{
		Reference:  in.Reference,
		SupplierID: in.SupplierID,
		Reason:     in.Reason,
		Notes:      in.Notes,
		Date:       dateOrZero(in.Date),
		UserID:     userID,
		Lines:      linesFromRequest(in.Lines),
	})
}

func linesFromRequest(lines []dto.MovementLineRequest) []LineInput {
	out := make([]LineInput, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineInput{
			ItemID:        l.ItemID,
			Quantity:      l.Quantity.Decimal,
			Unit:          l.Unit,
			LooseUnitQty:  l.LooseUnitQty.Decimal,
			IsReturn:      l.IsReturn,
			AdjustedStock: l.AdjustedStock.Decimal,
			Coerced:       l.Quantity.Coerced || l.LooseUnitQty.Coerced || l.AdjustedStock.Coerced,
		})
	}
	return out
}

func dateOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
