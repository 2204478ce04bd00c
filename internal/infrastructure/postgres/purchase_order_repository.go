package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const poColumns = `id, order_number, supplier_id, status, ordered_at, received_at, created_by, created_at`

// PurchaseOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la orden y sus líneas.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + poColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		po.ID, po.OrderNumber, nullable(po.SupplierID), po.Status,
		po.OrderedAt, po.ReceivedAt, nullable(po.CreatedBy), po.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	lineQuery := `
		INSERT INTO purchase_order_lines (id, purchase_order_id, item_id, packs_ordered, units_required, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range po.Lines {
		l := &po.Lines[i]
		if _, err := r.q.Exec(context.Background(), lineQuery,
			l.ID, po.ID, l.ItemID, l.PacksOrdered, l.UnitsRequired, l.UnitCost,
		); err != nil {
			return fmt.Errorf("insert purchase order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con sus líneas. Devuelve nil si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1`
	return r.scanOne(id, query)
}

// GetForUpdate obtiene la orden bloqueando la fila (evita doble recepción).
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	return r.scanOne(id, query)
}

// MarkReceived marca la orden como recibida.
func (r *PurchaseOrderRepo) MarkReceived(id string, receivedAt time.Time) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, received_at = $3 WHERE id = $1`,
		id, entity.PurchaseOrderReceived, receivedAt)
	if err != nil {
		return fmt.Errorf("mark received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes, opcionalmente por estado.
func (r *PurchaseOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY ordered_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPO(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, po := range list {
		lines, err := r.linesFor(po.ID)
		if err != nil {
			return nil, err
		}
		po.Lines = lines
	}
	return list, nil
}

func (r *PurchaseOrderRepo) scanOne(id, query string) (*entity.PurchaseOrder, error) {
	po, err := scanPO(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	lines, err := r.linesFor(po.ID)
	if err != nil {
		return nil, err
	}
	po.Lines = lines
	return po, nil
}

func scanPO(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	var supplierID, createdBy *string
	err := row.Scan(&po.ID, &po.OrderNumber, &supplierID, &po.Status,
		&po.OrderedAt, &po.ReceivedAt, &createdBy, &po.CreatedAt)
	if err != nil {
		return nil, err
	}
	po.SupplierID = deref(supplierID)
	po.CreatedBy = deref(createdBy)
	return &po, nil
}

func (r *PurchaseOrderRepo) linesFor(poID string) ([]entity.PurchaseOrderLine, error) {
	query := `
		SELECT id, purchase_order_id, item_id, packs_ordered, units_required, unit_cost
		FROM purchase_order_lines WHERE purchase_order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, poID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.PurchaseOrderID, &l.ItemID,
			&l.PacksOrdered, &l.UnitsRequired, &l.UnitCost); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
