package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// InsufficientStockError detalla un rechazo por stock insuficiente: cuánto hay
// disponible y cuánto requería el movimiento (en unidades base). Los handlers lo
// exponen tal cual para que la UI pueda explicar el rechazo al usuario.
type InsufficientStockError struct {
	ItemID    string
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %s, requerido %s", e.Available, e.Required)
}

// Is permite que errors.Is(err, ErrInsufficientStock) funcione sobre el error detallado.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
