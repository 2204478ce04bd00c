package ledger

import (
	"context"

	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que un movimiento multi-línea se aplique completo o no
// se aplique: cualquier línea que falle revierte todo el lote.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
	) error) error
}
