package bolt

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.etcd.io/bbolt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

type itemRepo struct {
	tx *bbolt.Tx
}

func (r *itemRepo) Create(_ context.Context, it *entity.InventoryItem) error {
	b := r.tx.Bucket(bucketItems)
	if b.Get([]byte(it.ID)) != nil {
		return domain.ErrDuplicate
	}
	if it.SupplierID != "" && r.tx.Bucket(bucketSuppliers).Get([]byte(it.SupplierID)) == nil {
		return fmt.Errorf("%w: proveedor inexistente", domain.ErrNotFound)
	}
	return putJSON(b, []byte(it.ID), it, "insert inventory item")
}

func (r *itemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	ok, err := getJSON(r.tx.Bucket(bucketItems), []byte(id), &it)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

// GetForUpdate: bbolt serializa los escritores, basta con leer.
func (r *itemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *itemRepo) Update(ctx context.Context, it *entity.InventoryItem) error {
	cur, err := r.GetByID(ctx, it.ID)
	if err != nil {
		return err
	}
	if it.SupplierID != "" && r.tx.Bucket(bucketSuppliers).Get([]byte(it.SupplierID)) == nil {
		return fmt.Errorf("%w: proveedor inexistente", domain.ErrNotFound)
	}
	next := *it
	next.CurrentStock = cur.CurrentStock
	next.CreatedAt = cur.CreatedAt
	return putJSON(r.tx.Bucket(bucketItems), []byte(it.ID), &next, "update inventory item")
}

func (r *itemRepo) UpdateStock(ctx context.Context, id string, stock, unitCost decimal.Decimal, at time.Time) error {
	if stock.IsNegative() {
		return domain.ErrInsufficientStock
	}
	it, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	it.CurrentStock = stock
	it.UnitCost = unitCost
	it.UpdatedAt = at
	return putJSON(r.tx.Bucket(bucketItems), []byte(id), it, "update inventory stock")
}

func (r *itemRepo) ListPage(_ context.Context, filter entity.ItemFilter, after string, limit int) ([]*entity.InventoryItem, error) {
	c := r.tx.Bucket(bucketItems).Cursor()
	var k, v []byte
	if after == "" {
		k, v = c.First()
	} else {
		k, v = c.Seek([]byte(after))
		if k != nil && bytes.Equal(k, []byte(after)) {
			k, v = c.Next()
		}
	}
	var out []*entity.InventoryItem
	for ; k != nil && len(out) < limit; k, v = c.Next() {
		var it entity.InventoryItem
		if err := decode(v, &it, "inventory item"); err != nil {
			return nil, err
		}
		if filter.Matches(&it) {
			out = append(out, &it)
		}
	}
	return out, nil
}

// Delete borra el ítem en cascada: movimientos, alertas y referencias de líneas de compra.
func (r *itemRepo) Delete(ctx context.Context, id string) error {
	items := r.tx.Bucket(bucketItems)
	if items.Get([]byte(id)) == nil {
		return domain.ErrNotFound
	}
	if _, err := deletePrefix(r.tx.Bucket(bucketMovements), prefixKey(id)); err != nil {
		return err
	}
	alertIDs, err := deletePrefix(r.tx.Bucket(bucketAlertsByItem), prefixKey(id))
	if err != nil {
		return err
	}
	alerts := r.tx.Bucket(bucketAlerts)
	for _, aid := range alertIDs {
		if err := alerts.Delete([]byte(aid)); err != nil {
			return domain.Storage("delete stock alert", err)
		}
	}
	poIDs, err := deletePrefix(r.tx.Bucket(bucketPOItemRefs), prefixKey(id))
	if err != nil {
		return err
	}
	po := &purchaseOrderRepo{tx: r.tx}
	for _, poID := range poIDs {
		if err := po.unlinkItem(ctx, poID, id); err != nil {
			return err
		}
	}
	if err := items.Delete([]byte(id)); err != nil {
		return domain.Storage("delete inventory item", err)
	}
	return nil
}

func (r *itemRepo) Count(context.Context) (int, error) {
	return countKeys(r.tx.Bucket(bucketItems)), nil
}
