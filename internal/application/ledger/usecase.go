package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/pharmacy"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
	"github.com/tu-usuario/farmacia-pro/pkg/logger"
)

// UseCase es el libro de movimientos de farmacia: registra, edita y elimina
// movimientos de forma transaccional, con bloqueo de fila por artículo
// (SELECT FOR UPDATE) y la guarda de no-negatividad evaluada por la BD.
type UseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
	itemRepo repository.ItemRepository
	log      *logger.Logger
}

// NewUseCase construye el libro. movRepo e itemRepo atados al pool se usan solo
// para lecturas; toda mutación pasa por txRunner.
func NewUseCase(txRunner TxRunner, movRepo repository.MovementRepository, itemRepo repository.ItemRepository, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, movRepo: movRepo, itemRepo: itemRepo, log: log}
}

// LineInput línea de movimiento a registrar. Coerced marca que la cantidad llegó
// no numérica y fue coaccionada a 0 en el borde HTTP.
type LineInput struct {
	ItemID        string
	Quantity      decimal.Decimal
	Unit          string
	LooseUnitQty  decimal.Decimal
	IsReturn      bool
	AdjustedStock decimal.Decimal
	Coerced       bool
}

// MovementInput entrada para registrar o editar un movimiento.
type MovementInput struct {
	Kind       string
	Reference  string
	SupplierID string
	Reason     string
	Notes      string
	Date       time.Time
	UserID     string
	Lines      []LineInput
}

// Tipos que admiten varias líneas por movimiento.
func multiLineKind(kind string) bool {
	switch kind {
	case entity.MovementKindReceipt, entity.MovementKindPOS, entity.MovementKindSupplierReturn:
		return true
	}
	return false
}

// defaultUnit devuelve la presentación implícita cuando el formulario no la envía:
// recepción y mostrador capturan packs; el resto trabaja en unidades base.
func defaultUnit(kind string) string {
	switch kind {
	case entity.MovementKindReceipt, entity.MovementKindPOS:
		return entity.UnitPack
	}
	return entity.UnitSingle
}

var consumptionReasons = map[string]bool{
	entity.ConsumptionPatientTreatment: true,
	entity.ConsumptionEmergencyUse:     true,
	entity.ConsumptionDepartment:       true,
	entity.ConsumptionExpiredDisposal:  true,
	entity.ConsumptionDamagedDisposal:  true,
	entity.ConsumptionOther:            true,
}

var adjustmentReasons = map[string]bool{
	entity.AdjustmentPhysicalCount: true,
	entity.AdjustmentFoundStock:    true,
	entity.AdjustmentDamagedStock:  true,
	entity.AdjustmentExpiredStock:  true,
	entity.AdjustmentTheft:         true,
}

var missedSaleReasons = map[string]bool{
	entity.MissedSaleOutOfStock:        true,
	entity.MissedSaleCustomerCancelled: true,
	entity.MissedSalePaymentFailed:     true,
	entity.MissedSaleItemDamaged:       true,
	entity.MissedSaleOther:             true,
}

// validate revisa tipo, razón y líneas. Las cantidades coaccionadas a 0 no son un
// fallo (higiene numérica); las negativas sí.
func (uc *UseCase) validate(in *MovementInput) error {
	switch in.Kind {
	case entity.MovementKindReceipt, entity.MovementKindPOReceipt, entity.MovementKindPOS,
		entity.MovementKindSupplierReturn:
	case entity.MovementKindConsumption:
		if !consumptionReasons[in.Reason] {
			return domain.ErrInvalidInput
		}
	case entity.MovementKindAdjustment:
		if !adjustmentReasons[in.Reason] {
			return domain.ErrInvalidInput
		}
	case entity.MovementKindMissedSale:
		if !missedSaleReasons[in.Reason] {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	if len(in.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	if !multiLineKind(in.Kind) && len(in.Lines) != 1 {
		return domain.ErrInvalidInput
	}
	for i := range in.Lines {
		li := &in.Lines[i]
		if li.ItemID == "" {
			return domain.ErrInvalidInput
		}
		if li.Quantity.IsNegative() || li.LooseUnitQty.IsNegative() || li.AdjustedStock.IsNegative() {
			return domain.ErrInvalidInput
		}
		switch li.Unit {
		case "":
			li.Unit = defaultUnit(in.Kind)
		case entity.UnitPack, entity.UnitSingle:
		default:
			return domain.ErrInvalidInput
		}
		if li.Coerced {
			uc.log.Warn().
				Str("item_id", li.ItemID).
				Str("kind", in.Kind).
				Msg("cantidad no numérica coaccionada a 0")
		}
	}
	return nil
}

// Create registra un movimiento: en una sola transacción bloquea cada artículo,
// calcula el delta en unidades base, valida factibilidad para débitos, calcula los
// campos derivados con la economía unitaria vigente y aplica el delta. Si cualquier
// línea falla, ninguna queda aplicada.
func (uc *UseCase) Create(ctx context.Context, in MovementInput) (*entity.Movement, error) {
	if err := uc.validate(&in); err != nil {
		return nil, err
	}
	now := time.Now()
	mov := uc.buildMovement(uuid.New().String(), &in, now, now)

	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, itemRepo repository.ItemRepository) error {
		if err := uc.applyLines(itemRepo, mov); err != nil {
			return err
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// Update edita un movimiento confirmado: revierte el efecto original contra el
// stock actual, vuelve a validar el efecto nuevo y lo aplica, todo en una
// transacción. Si la línea cambió de artículo, el viejo y el nuevo se ajustan cada
// uno bajo su propio bloqueo de fila. Los movimientos generados por una orden de
// compra no se editan por aquí: devuelven ErrConflict.
func (uc *UseCase) Update(ctx context.Context, movementID string, in MovementInput) (*entity.Movement, error) {
	var updated *entity.Movement
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, itemRepo repository.ItemRepository) error {
		orig, err := movRepo.GetByID(movementID)
		if err != nil {
			return err
		}
		if orig == nil {
			return domain.ErrNotFound
		}
		// Un movimiento generado por la recepción de una orden de compra se gestiona
		// desde la orden, no editándolo directo: desincronizaría lo pactado.
		if orig.PurchaseOrderID != "" {
			return domain.ErrConflict
		}
		in.Kind = orig.Kind
		if err := uc.validate(&in); err != nil {
			return err
		}
		if err := uc.reverseLines(itemRepo, orig.Kind, orig.Lines, false); err != nil {
			return err
		}
		mov := uc.buildMovement(orig.ID, &in, orig.CreatedAt, time.Now())
		if mov.CreatedBy == "" {
			mov.CreatedBy = orig.CreatedBy
		}
		if err := uc.applyLines(itemRepo, mov); err != nil {
			return err
		}
		if err := movRepo.Update(mov); err != nil {
			return err
		}
		updated = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete revierte el delta almacenado de cada línea y elimina el movimiento.
// La reversa nunca se rechaza; solo la recepción de proveedor fija piso en cero
// para no dejar stock negativo al deshacer una entrada ya consumida.
func (uc *UseCase) Delete(ctx context.Context, movementID string) error {
	return uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, itemRepo repository.ItemRepository) error {
		mov, err := movRepo.GetByID(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if err := uc.reverseLines(itemRepo, mov.Kind, mov.Lines, true); err != nil {
			return err
		}
		return movRepo.Delete(movementID)
	})
}

// Get devuelve un movimiento con sus líneas.
func (uc *UseCase) Get(ctx context.Context, movementID string) (*entity.Movement, error) {
	mov, err := uc.movRepo.GetByID(movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}

// List lista movimientos según filtro.
func (uc *UseCase) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	return uc.movRepo.List(filter)
}

// ClosingSummary devuelve el resumen de cierre de tienda del día indicado.
func (uc *UseCase) ClosingSummary(ctx context.Context, day time.Time) ([]repository.ClosingLine, error) {
	return uc.movRepo.ClosingSummary(day)
}

// CommitInTx aplica y persiste un movimiento usando los repositorios de la
// transacción del caller (integración compras→inventario: la recepción de una orden
// de compra confirma su movimiento en la misma transacción que marca la orden).
func (uc *UseCase) CommitInTx(movRepo repository.MovementRepository, itemRepo repository.ItemRepository, mov *entity.Movement) error {
	if err := uc.applyLines(itemRepo, mov); err != nil {
		return err
	}
	return movRepo.Create(mov)
}

func (uc *UseCase) buildMovement(id string, in *MovementInput, createdAt, updatedAt time.Time) *entity.Movement {
	date := in.Date
	if date.IsZero() {
		date = updatedAt
	}
	mov := &entity.Movement{
		ID:         id,
		Kind:       in.Kind,
		Reference:  in.Reference,
		SupplierID: in.SupplierID,
		Reason:     in.Reason,
		Notes:      in.Notes,
		Date:       date,
		CreatedBy:  in.UserID,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
	for _, li := range in.Lines {
		mov.Lines = append(mov.Lines, entity.MovementLine{
			ID:            uuid.New().String(),
			MovementID:    id,
			ItemID:        li.ItemID,
			Quantity:      li.Quantity,
			Unit:          li.Unit,
			LooseUnitQty:  li.LooseUnitQty,
			IsReturn:      li.IsReturn,
			AdjustedStock: li.AdjustedStock,
		})
	}
	return mov
}

// applyLines bloquea cada artículo, calcula delta y derivados, valida factibilidad
// para débitos y aplica el delta con la guarda de la BD. Deja BaseDelta y la
// economía unitaria vigente grabados en la línea para poder revertirla después.
func (uc *UseCase) applyLines(itemRepo repository.ItemRepository, mov *entity.Movement) error {
	for i := range mov.Lines {
		line := &mov.Lines[i]
		item, err := itemRepo.GetForUpdate(line.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if line.Unit == entity.UnitPack && item.ConversionUnit.LessThanOrEqual(decimal.Zero) {
			uc.log.Warn().
				Str("item_id", item.ID).
				Str("movement_id", mov.ID).
				Msg("artículo sin factor de conversión, degradando a 1")
		}
		delta := pharmacy.Delta(mov.Kind, line, item)
		if delta.IsNegative() {
			if err := pharmacy.CheckFeasible(item, delta.Neg()); err != nil {
				return err
			}
		}
		line.UnitCost = item.UnitCost
		switch mov.Kind {
		case entity.MovementKindConsumption:
			line.TotalCost = pharmacy.LineCost(item, line.Quantity)
		case entity.MovementKindMissedSale:
			line.EstimatedLoss = pharmacy.EstimatedLoss(item, line.Quantity)
		}
		line.BaseDelta = delta
		if !delta.IsZero() {
			if _, err := itemRepo.AdjustAvailable(line.ItemID, delta); err != nil {
				return err
			}
		}
	}
	return nil
}

// reverseLines deshace el delta grabado de cada línea, exacto y sin guarda. Solo la
// eliminación de una recepción usa la variante con piso en cero (clampReceipt): en
// una edición la reversa debe ser exacta aunque deje un saldo negativo transitorio,
// porque el efecto nuevo se aplica a continuación en la misma transacción y la
// guarda de AdjustAvailable rechaza el resultado final si no es factible.
func (uc *UseCase) reverseLines(itemRepo repository.ItemRepository, kind string, lines []entity.MovementLine, clampReceipt bool) error {
	for i := range lines {
		line := &lines[i]
		if line.BaseDelta.IsZero() {
			continue
		}
		reversal := line.BaseDelta.Neg()
		if clampReceipt && kind == entity.MovementKindReceipt {
			if _, err := itemRepo.AdjustAvailableClamped(line.ItemID, reversal); err != nil {
				return err
			}
			continue
		}
		if _, err := itemRepo.ForceAdjustAvailable(line.ItemID, reversal); err != nil {
			return err
		}
	}
	return nil
}
