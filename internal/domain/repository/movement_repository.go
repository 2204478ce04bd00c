package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos.
type MovementFilter struct {
	Kind   string
	ItemID string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// ClosingLine es el resumen de cierre de un artículo para un día: créditos,
// débitos y neto del día según el libro, más el stock en mano actual.
type ClosingLine struct {
	ItemID          string
	ItemName        string
	Credits         decimal.Decimal
	Debits          decimal.Decimal
	NetChange       decimal.Decimal
	ClosingQuantity decimal.Decimal
	Movements       int
}

// MovementRepository define el puerto de persistencia del libro de movimientos
// (cabecera + líneas).
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// Update reemplaza cabecera y líneas del movimiento.
	Update(movement *entity.Movement) error
	Delete(id string) error
	List(filter MovementFilter) ([]*entity.Movement, error)
	// ClosingSummary agrega los movimientos del día [day, day+24h) por artículo.
	ClosingSummary(day time.Time) ([]ClosingLine, error)
}
