package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const itemColumns = `id, name, category, supplier_id, unit, current_stock, reorder_point, optimal_stock,
		unit_cost, expiry_date, storage_location, notes, created_at, updated_at`

// InventoryItemRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

func scanItem(row rowScanner) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var supplierID *string
	err := row.Scan(
		&it.ID, &it.Name, &it.Category, &supplierID, &it.Unit, &it.CurrentStock, &it.ReorderPoint,
		&it.OptimalStock, &it.UnitCost, &it.ExpiryDate, &it.StorageLocation, &it.Notes,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.SupplierID = derefString(supplierID)
	return &it, nil
}

// Create inserta el ítem con el stock que traiga (el servicio lo crea en 0).
func (r *InventoryItemRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Name, it.Category, nullString(it.SupplierID), it.Unit, it.CurrentStock, it.ReorderPoint,
		it.OptimalStock, it.UnitCost, it.ExpiryDate, it.StorageLocation, it.Notes, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return fmt.Errorf("%w: proveedor inexistente", domain.ErrNotFound)
		}
		return domain.Storage("insert inventory item", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get inventory item", err)
	}
	return it, nil
}

// GetForUpdate obtiene el ítem y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, wrapErr("get inventory item for update", err)
	}
	return it, nil
}

// Update persiste campos descriptivos y umbrales. current_stock no se toca aquí.
func (r *InventoryItemRepo) Update(ctx context.Context, it *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET
			name = $2, category = $3, supplier_id = $4, unit = $5, reorder_point = $6,
			optimal_stock = $7, unit_cost = $8, expiry_date = $9, storage_location = $10,
			notes = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		it.ID, it.Name, it.Category, nullString(it.SupplierID), it.Unit, it.ReorderPoint,
		it.OptimalStock, it.UnitCost, it.ExpiryDate, it.StorageLocation, it.Notes, it.UpdatedAt,
	)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return fmt.Errorf("%w: proveedor inexistente", domain.ErrNotFound)
		}
		return domain.Storage("update inventory item", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock persiste la proyección de stock y el costo promedio.
func (r *InventoryItemRepo) UpdateStock(ctx context.Context, id string, stock, unitCost decimal.Decimal, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET current_stock = $2, unit_cost = $3, updated_at = $4 WHERE id = $1`,
		id, stock, unitCost, at,
	)
	if err != nil {
		if pgCode(err) == codeCheckViolation {
			return domain.ErrInsufficientStock
		}
		return domain.Storage("update inventory stock", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListPage pagina por keyset (id > after) con filtros opcionales de categoría y proveedor.
func (r *InventoryItemRepo) ListPage(ctx context.Context, filter entity.ItemFilter, after string, limit int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE TRUE`
	var args []any
	pos := 1
	if after != "" {
		query += fmt.Sprintf(" AND id > $%d", pos)
		args = append(args, after)
		pos++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, filter.Category)
		pos++
	}
	if filter.SupplierID != "" {
		query += fmt.Sprintf(" AND supplier_id = $%d", pos)
		args = append(args, filter.SupplierID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d", pos)
	args = append(args, limit)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Storage("list inventory items", err)
	}
	defer rows.Close()

	var out []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, domain.Storage("scan inventory item", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("list inventory items", err)
	}
	return out, nil
}

// Delete borra el ítem; movimientos y alertas caen por ON DELETE CASCADE.
func (r *InventoryItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return domain.Storage("delete inventory item", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count devuelve el total de ítems.
func (r *InventoryItemRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_items`).Scan(&n); err != nil {
		return 0, domain.Storage("count inventory items", err)
	}
	return n, nil
}
