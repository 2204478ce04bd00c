package repository

import (
	"time"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia de órdenes de compra.
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la orden para la recepción (evita doble recepción).
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	MarkReceived(id string, receivedAt time.Time) error
	List(status string, limit, offset int) ([]*entity.PurchaseOrder, error)
}
