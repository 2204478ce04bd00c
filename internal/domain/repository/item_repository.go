package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia del catálogo de artículos.
// Las mutaciones de AvailableQuantity pasan por AdjustAvailable, nunca por Update.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE) para el
	// read-modify-write de un movimiento.
	GetForUpdate(id string) (*entity.Item, error)
	// Update actualiza los campos de catálogo; no toca AvailableQuantity.
	Update(item *entity.Item) error
	// AdjustAvailable aplica un delta firmado con guarda de no-negatividad evaluada
	// por el almacenamiento. Devuelve la cantidad resultante, o ErrInsufficientStock
	// si la guarda rechaza el delta.
	AdjustAvailable(id string, delta decimal.Decimal) (decimal.Decimal, error)
	// ForceAdjustAvailable aplica el delta exacto sin guarda (reversas de edición y
	// eliminación, que nunca se rechazan).
	ForceAdjustAvailable(id string, delta decimal.Decimal) (decimal.Decimal, error)
	// AdjustAvailableClamped aplica el delta con piso en cero (reversa de recepción).
	AdjustAvailableClamped(id string, delta decimal.Decimal) (decimal.Decimal, error)
	List(onlyActive bool, limit, offset int) ([]*entity.Item, error)
	ListBelowReorder() ([]*entity.Item, error)
	Deactivate(id string) error
}
