package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, category_id, manufacturer_id, supplier_id, rack_id, unit,
		conversion_unit, unit_cost, retail_price, re_order_level, opening_stock,
		available_quantity, expired_quantity, active, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con
// pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, nullable(item.CategoryID), nullable(item.ManufacturerID),
		nullable(item.SupplierID), nullable(item.RackID), item.Unit,
		item.ConversionUnit, item.UnitCost, item.RetailPrice, item.ReOrderLevel,
		item.OpeningStock, item.AvailableQuantity, item.ExpiredQuantity, item.Active,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE) para el
// read-modify-write de un movimiento.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update actualiza los campos de catálogo. available_quantity queda fuera a
// propósito: el stock en mano solo lo mutan AdjustAvailable y variantes.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, category_id = $3, manufacturer_id = $4,
			supplier_id = $5, rack_id = $6, unit = $7, conversion_unit = $8,
			unit_cost = $9, retail_price = $10, re_order_level = $11,
			expired_quantity = $12, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, nullable(item.CategoryID), nullable(item.ManufacturerID),
		nullable(item.SupplierID), nullable(item.RackID), item.Unit,
		item.ConversionUnit, item.UnitCost, item.RetailPrice, item.ReOrderLevel,
		item.ExpiredQuantity,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustAvailable aplica un delta firmado con la guarda de no-negatividad evaluada
// por PostgreSQL en el mismo UPDATE. Bajo el bloqueo de fila del movimiento la
// guarda no debería fallar (la factibilidad ya se validó); si falla, es la red de
// seguridad contra escrituras concurrentes fuera del bloqueo.
func (r *ItemRepo) AdjustAvailable(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE items
		SET available_quantity = available_quantity + $2, updated_at = now()
		WHERE id = $1 AND available_quantity + $2 >= 0
		RETURNING available_quantity`
	var qty decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, id, delta).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrInsufficientStock
		}
		return decimal.Zero, fmt.Errorf("adjust available: %w", err)
	}
	return qty, nil
}

// ForceAdjustAvailable aplica el delta exacto sin guarda (reversas de edición y
// eliminación, que nunca se rechazan).
func (r *ItemRepo) ForceAdjustAvailable(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE items
		SET available_quantity = available_quantity + $2, updated_at = now()
		WHERE id = $1
		RETURNING available_quantity`
	var qty decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, id, delta).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("force adjust available: %w", err)
	}
	return qty, nil
}

// AdjustAvailableClamped aplica el delta con piso en cero (reversa de recepción de
// proveedor cuando parte de la entrada ya se consumió).
func (r *ItemRepo) AdjustAvailableClamped(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE items
		SET available_quantity = GREATEST(available_quantity + $2, 0), updated_at = now()
		WHERE id = $1
		RETURNING available_quantity`
	var qty decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, id, delta).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("clamp adjust available: %w", err)
	}
	return qty, nil
}

// List lista artículos, opcionalmente solo activos.
func (r *ItemRepo) List(onlyActive bool, limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListBelowReorder lista artículos activos con stock por debajo del punto de reorden.
func (r *ItemRepo) ListBelowReorder() ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		WHERE active AND available_quantity < re_order_level
		ORDER BY available_quantity - re_order_level`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list below reorder: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// Deactivate desactiva un artículo (soft delete).
func (r *ItemRepo) Deactivate(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE items SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) scanOne(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	var categoryID, manufacturerID, supplierID, rackID *string
	err := row.Scan(
		&i.ID, &i.Name, &categoryID, &manufacturerID, &supplierID, &rackID, &i.Unit,
		&i.ConversionUnit, &i.UnitCost, &i.RetailPrice, &i.ReOrderLevel,
		&i.OpeningStock, &i.AvailableQuantity, &i.ExpiredQuantity, &i.Active,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	i.CategoryID = deref(categoryID)
	i.ManufacturerID = deref(manufacturerID)
	i.SupplierID = deref(supplierID)
	i.RackID = deref(rackID)
	return &i, nil
}

func (r *ItemRepo) scanMany(rows pgx.Rows) ([]*entity.Item, error) {
	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		var categoryID, manufacturerID, supplierID, rackID *string
		if err := rows.Scan(
			&i.ID, &i.Name, &categoryID, &manufacturerID, &supplierID, &rackID, &i.Unit,
			&i.ConversionUnit, &i.UnitCost, &i.RetailPrice, &i.ReOrderLevel,
			&i.OpeningStock, &i.AvailableQuantity, &i.ExpiredQuantity, &i.Active,
			&i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		i.CategoryID = deref(categoryID)
		i.ManufacturerID = deref(manufacturerID)
		i.SupplierID = deref(supplierID)
		i.RackID = deref(rackID)
		list = append(list, &i)
	}
	return list, rows.Err()
}
