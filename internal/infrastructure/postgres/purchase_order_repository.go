package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const purchaseOrderColumns = `id, order_number, supplier_id, order_date, expected_delivery_date,
		actual_delivery_date, status, subtotal, tax_amount, total_amount, notes, created_by,
		created_at, updated_at, deleted_at`

// PurchaseOrderRepo implementación de órdenes de compra sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta la cabecera y sus líneas (llamar dentro de TxRunner.Run).
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `INSERT INTO purchase_orders (` + purchaseOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.OrderNumber, po.SupplierID, po.OrderDate, po.ExpectedDeliveryDate,
		po.ActualDeliveryDate, po.Status, po.Subtotal, po.TaxAmount, po.TotalAmount, po.Notes,
		nullString(po.CreatedBy), po.CreatedAt, po.UpdatedAt, po.DeletedAt,
	)
	if err != nil {
		switch pgCode(err) {
		case codeUniqueViolation:
			return domain.ErrDuplicate
		case codeForeignKeyViolation:
			return domain.ErrNotFound
		}
		return domain.Storage("insert purchase order", err)
	}

	lineQuery := `
		INSERT INTO purchase_order_items (id, purchase_order_id, inventory_item_id, item_name, description,
			quantity, unit_price, tax_rate, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, it := range po.Items {
		_, err := r.q.Exec(ctx, lineQuery,
			it.ID, po.ID, nullString(it.InventoryItemID), it.ItemName, it.Description,
			it.Quantity, it.UnitPrice, it.TaxRate, it.Amount,
		)
		if err != nil {
			if pgCode(err) == codeForeignKeyViolation {
				return domain.ErrNotFound
			}
			return domain.Storage("insert purchase order item", err)
		}
	}
	return nil
}

// GetByID obtiene una orden vigente con sus líneas.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1 AND deleted_at IS NULL`, id)
}

// GetForUpdate obtiene la orden bloqueando la cabecera (SELECT FOR UPDATE).
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) get(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	var createdBy *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&po.ID, &po.OrderNumber, &po.SupplierID, &po.OrderDate, &po.ExpectedDeliveryDate,
		&po.ActualDeliveryDate, &po.Status, &po.Subtotal, &po.TaxAmount, &po.TotalAmount, &po.Notes,
		&createdBy, &po.CreatedAt, &po.UpdatedAt, &po.DeletedAt,
	)
	if err != nil {
		return nil, wrapErr("get purchase order", err)
	}
	po.CreatedBy = derefString(createdBy)

	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_order_id, inventory_item_id, item_name, description, quantity, unit_price, tax_rate, amount
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id`, po.ID)
	if err != nil {
		return nil, domain.Storage("list purchase order items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseOrderItem
		var itemID *string
		if err := rows.Scan(
			&it.ID, &it.PurchaseOrderID, &itemID, &it.ItemName, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.TaxRate, &it.Amount,
		); err != nil {
			return nil, domain.Storage("scan purchase order item", err)
		}
		it.InventoryItemID = derefString(itemID)
		po.Items = append(po.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("list purchase order items", err)
	}
	return &po, nil
}

// UpdateStatus cambia el estado y, si se entrega, la fecha real de entrega.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id, status string, deliveredAt *time.Time, at time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET status = $2, actual_delivery_date = COALESCE($3, actual_delivery_date), updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL`,
		id, status, deliveredAt, at,
	)
	if err != nil {
		return wrapErr("update purchase order status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca la orden como borrada; sus líneas dejan de bloquear ítems.
func (r *PurchaseOrderRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE purchase_orders SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return wrapErr("delete purchase order", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HasLiveReference indica si alguna orden no borrada tiene una línea que apunta al ítem.
func (r *PurchaseOrderRepo) HasLiveReference(ctx context.Context, inventoryItemID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM purchase_order_items poi
			JOIN purchase_orders po ON po.id = poi.purchase_order_id
			WHERE poi.inventory_item_id = $1 AND po.deleted_at IS NULL
		)`, inventoryItemID).Scan(&exists)
	if err != nil {
		return false, domain.Storage("check purchase order references", err)
	}
	return exists, nil
}

// Count devuelve el total de órdenes, incluidas las borradas.
func (r *PurchaseOrderRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM purchase_orders`).Scan(&n); err != nil {
		return 0, domain.Storage("count purchase orders", err)
	}
	return n, nil
}
