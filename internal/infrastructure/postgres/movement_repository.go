package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, kind, reference, supplier_id, purchase_order_id, reason,
		notes, date, created_by, created_at, updated_at`

const lineColumns = `id, movement_id, item_id, quantity, unit, loose_unit_qty,
		is_return, adjusted_stock, base_delta, unit_cost, total_cost, estimated_loss`

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (cabecera + líneas, usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste la cabecera y las líneas de un movimiento.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Kind, movement.Reference, nullable(movement.SupplierID),
		nullable(movement.PurchaseOrderID), movement.Reason, movement.Notes,
		movement.Date, nullable(movement.CreatedBy), movement.CreatedAt, movement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return r.insertLines(movement.ID, movement.Lines)
}

// GetByID obtiene un movimiento con sus líneas. Devuelve nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	var supplierID, poID, createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Kind, &m.Reference, &supplierID, &poID, &m.Reason,
		&m.Notes, &m.Date, &createdBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	m.SupplierID = deref(supplierID)
	m.PurchaseOrderID = deref(poID)
	m.CreatedBy = deref(createdBy)

	lines, err := r.linesFor(m.ID)
	if err != nil {
		return nil, err
	}
	m.Lines = lines
	return &m, nil
}

// Update reemplaza la cabecera y las líneas del movimiento.
func (r *MovementRepo) Update(movement *entity.Movement) error {
	query := `
		UPDATE movements SET reference = $2, supplier_id = $3, reason = $4,
			notes = $5, date = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Reference, nullable(movement.SupplierID),
		movement.Reason, movement.Notes, movement.Date, movement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update movement: sin filas afectadas")
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM movement_lines WHERE movement_id = $1`, movement.ID); err != nil {
		return fmt.Errorf("delete movement lines: %w", err)
	}
	return r.insertLines(movement.ID, movement.Lines)
}

// Delete elimina el movimiento y sus líneas.
func (r *MovementRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM movement_lines WHERE movement_id = $1`, id); err != nil {
		return fmt.Errorf("delete movement lines: %w", err)
	}
	tag, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete movement: sin filas afectadas")
	}
	return nil
}

// List lista movimientos según filtro, líneas incluidas.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", pos)
		args = append(args, filter.Kind)
		pos++
	}
	if filter.ItemID != "" {
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM movement_lines l WHERE l.movement_id = movements.id AND l.item_id = $%d)", pos)
		args = append(args, filter.ItemID)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var supplierID, poID, createdBy *string
		if err := rows.Scan(
			&m.ID, &m.Kind, &m.Reference, &supplierID, &poID, &m.Reason,
			&m.Notes, &m.Date, &createdBy, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.SupplierID = deref(supplierID)
		m.PurchaseOrderID = deref(poID)
		m.CreatedBy = deref(createdBy)
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, m := range list {
		lines, err := r.linesFor(m.ID)
		if err != nil {
			return nil, err
		}
		m.Lines = lines
	}
	return list, nil
}

// ClosingSummary agrega créditos, débitos y neto por artículo para el día [day, day+24h),
// junto con el stock en mano actual.
func (r *MovementRepo) ClosingSummary(day time.Time) ([]repository.ClosingLine, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24 * time.Hour)
	query := `
		SELECT i.id, i.name,
			COALESCE(SUM(CASE WHEN l.base_delta > 0 THEN l.base_delta ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN l.base_delta < 0 THEN -l.base_delta ELSE 0 END), 0),
			COALESCE(SUM(l.base_delta), 0),
			i.available_quantity,
			COUNT(DISTINCT m.id)
		FROM movement_lines l
		JOIN movements m ON m.id = l.movement_id
		JOIN items i ON i.id = l.item_id
		WHERE m.date >= $1 AND m.date < $2
		GROUP BY i.id, i.name, i.available_quantity
		ORDER BY i.name`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("closing summary: %w", err)
	}
	defer rows.Close()

	var list []repository.ClosingLine
	for rows.Next() {
		var c repository.ClosingLine
		if err := rows.Scan(&c.ItemID, &c.ItemName, &c.Credits, &c.Debits,
			&c.NetChange, &c.ClosingQuantity, &c.Movements); err != nil {
			return nil, fmt.Errorf("scan closing line: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *MovementRepo) insertLines(movementID string, lines []entity.MovementLine) error {
	query := `
		INSERT INTO movement_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for i := range lines {
		l := &lines[i]
		_, err := r.q.Exec(context.Background(), query,
			l.ID, movementID, l.ItemID, l.Quantity, l.Unit, l.LooseUnitQty,
			l.IsReturn, l.AdjustedStock, l.BaseDelta, l.UnitCost, l.TotalCost,
			l.EstimatedLoss,
		)
		if err != nil {
			return fmt.Errorf("insert movement line: %w", err)
		}
	}
	return nil
}

func (r *MovementRepo) linesFor(movementID string) ([]entity.MovementLine, error) {
	query := `SELECT ` + lineColumns + ` FROM movement_lines WHERE movement_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, movementID)
	if err != nil {
		return nil, fmt.Errorf("list movement lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.MovementLine
	for rows.Next() {
		var l entity.MovementLine
		if err := rows.Scan(
			&l.ID, &l.MovementID, &l.ItemID, &l.Quantity, &l.Unit, &l.LooseUnitQty,
			&l.IsReturn, &l.AdjustedStock, &l.BaseDelta, &l.UnitCost, &l.TotalCost,
			&l.EstimatedLoss,
		); err != nil {
			return nil, fmt.Errorf("scan movement line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
