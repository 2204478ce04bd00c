package purchasing

import (
	"context"

	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los repositorios
// de compras e inventario atados a la misma tx: la recepción de una orden marca la
// orden y confirma su movimiento de entrada de forma atómica.
type TxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
		poRepo repository.PurchaseOrderRepository,
	) error) error
}
