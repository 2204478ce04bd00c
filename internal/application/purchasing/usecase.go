package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/application/ledger"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/pharmacy"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// UseCase administra órdenes de compra. Recibir una orden genera el movimiento
// PO_RECEIPT que acredita las unidades base requeridas de cada línea.
type UseCase struct {
	txRunner TxRunner
	poRepo   repository.PurchaseOrderRepository
	itemRepo repository.ItemRepository
	ledger   *ledger.UseCase
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, poRepo repository.PurchaseOrderRepository, itemRepo repository.ItemRepository, ledgerUC *ledger.UseCase) *UseCase {
	return &UseCase{txRunner: txRunner, poRepo: poRepo, itemRepo: itemRepo, ledger: ledgerUC}
}

// Create registra una orden de compra pendiente. UnitsRequired se fija al ordenar
// con el factor de conversión vigente del artículo, para que la recepción acredite
// exactamente lo pactado aunque el catálogo cambie después.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseOrderRequest) (*entity.PurchaseOrder, error) {
	if in.OrderNumber == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:          uuid.New().String(),
		OrderNumber: in.OrderNumber,
		SupplierID:  in.SupplierID,
		Status:      entity.PurchaseOrderPending,
		OrderedAt:   now,
		CreatedBy:   userID,
		CreatedAt:   now,
	}
	for _, l := range in.Lines {
		if l.ItemID == "" || !l.PacksOrdered.Decimal.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(l.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		po.Lines = append(po.Lines, entity.PurchaseOrderLine{
			ID:              uuid.New().String(),
			PurchaseOrderID: po.ID,
			ItemID:          l.ItemID,
			PacksOrdered:    l.PacksOrdered.Decimal,
			UnitsRequired:   pharmacy.ToBaseUnits(l.PacksOrdered.Decimal, entity.UnitPack, item),
			UnitCost:        l.UnitCost.Decimal,
		})
	}
	if err := uc.poRepo.Create(po); err != nil {
		return nil, err
	}
	return po, nil
}

// Get devuelve una orden con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := uc.poRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return po, nil
}

// List lista órdenes, opcionalmente por estado.
func (uc *UseCase) List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.poRepo.List(status, limit, offset)
}

// Receive marca la orden como recibida y confirma el movimiento PO_RECEIPT en la
// misma transacción. Una orden ya recibida devuelve ErrConflict.
func (uc *UseCase) Receive(ctx context.Context, poID, userID string) (*entity.Movement, error) {
	var mov *entity.Movement
	err := uc.txRunner.RunPurchasing(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		po, err := poRepo.GetForUpdate(poID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.PurchaseOrderPending {
			return domain.ErrConflict
		}
		now := time.Now()
		mov = &entity.Movement{
			ID:              uuid.New().String(),
			Kind:            entity.MovementKindPOReceipt,
			Reference:       po.OrderNumber,
			SupplierID:      po.SupplierID,
			PurchaseOrderID: po.ID,
			Date:            now,
			CreatedBy:       userID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		for _, l := range po.Lines {
			mov.Lines = append(mov.Lines, entity.MovementLine{
				ID:         uuid.New().String(),
				MovementID: mov.ID,
				ItemID:     l.ItemID,
				Quantity:   l.UnitsRequired,
				Unit:       entity.UnitSingle,
			})
		}
		if err := uc.ledger.CommitInTx(movRepo, itemRepo, mov); err != nil {
			return err
		}
		return poRepo.MarkReceived(po.ID, now)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}
