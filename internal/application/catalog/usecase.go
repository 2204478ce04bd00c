package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// UseCase administra el catálogo de artículos. El stock en mano no se edita por
// aquí: AvailableQuantity solo la mutan los movimientos del libro.
type UseCase struct {
	itemRepo repository.ItemRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(itemRepo repository.ItemRepository) *UseCase {
	return &UseCase{itemRepo: itemRepo}
}

// Create da de alta un artículo. Si el caller no fija el stock disponible
// explícitamente, se inicializa desde el stock de apertura.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*entity.Item, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	unit := in.Unit
	if unit == "" {
		unit = entity.UnitPack
	}
	now := time.Now()
	item := &entity.Item{
		ID:             uuid.New().String(),
		Name:           in.Name,
		CategoryID:     in.CategoryID,
		ManufacturerID: in.ManufacturerID,
		SupplierID:     in.SupplierID,
		RackID:         in.RackID,
		Unit:           unit,
		ConversionUnit: in.ConversionUnit.Decimal,
		UnitCost:       in.UnitCost.Decimal,
		RetailPrice:    in.RetailPrice.Decimal,
		ReOrderLevel:   in.ReOrderLevel.Decimal,
		OpeningStock:   in.OpeningStock.Decimal,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.AvailableQuantity != nil {
		item.AvailableQuantity = *in.AvailableQuantity
	} else {
		item.AvailableQuantity = in.OpeningStock.Decimal
	}
	if item.AvailableQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get devuelve el snapshot de un artículo (consumido por pantallas de reportes).
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// List lista artículos del catálogo.
func (uc *UseCase) List(ctx context.Context, onlyActive bool, limit, offset int) ([]*entity.Item, error) {
	return uc.itemRepo.List(onlyActive, limit, offset)
}

// ListBelowReorder lista artículos con stock por debajo de su punto de reorden.
func (uc *UseCase) ListBelowReorder(ctx context.Context) ([]*entity.Item, error) {
	return uc.itemRepo.ListBelowReorder()
}

// Update edita los campos de catálogo de un artículo.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		item.Name = in.Name
	}
	if in.Unit != "" {
		item.Unit = in.Unit
	}
	item.CategoryID = in.CategoryID
	item.ManufacturerID = in.ManufacturerID
	item.SupplierID = in.SupplierID
	item.RackID = in.RackID
	item.ConversionUnit = in.ConversionUnit.Decimal
	item.UnitCost = in.UnitCost.Decimal
	item.RetailPrice = in.RetailPrice.Decimal
	item.ReOrderLevel = in.ReOrderLevel.Decimal
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Deactivate desactiva un artículo (soft delete: el historial de movimientos lo
// sigue referenciando).
func (uc *UseCase) Deactivate(ctx context.Context, id string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Deactivate(id)
}
