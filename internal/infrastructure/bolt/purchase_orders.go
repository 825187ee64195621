package bolt

import (
	"bytes"
	"context"
	"time"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

type purchaseOrderRepo struct {
	tx *bbolt.Tx
}

func (r *purchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	b := r.tx.Bucket(bucketPurchaseOrders)
	if b.Get([]byte(po.ID)) != nil {
		return domain.ErrDuplicate
	}
	if r.tx.Bucket(bucketSuppliers).Get([]byte(po.SupplierID)) == nil {
		return domain.ErrNotFound
	}
	dup := false
	err := b.ForEach(func(_, v []byte) error {
		var other entity.PurchaseOrder
		if err := decode(v, &other, "purchase order"); err != nil {
			return err
		}
		if other.OrderNumber == po.OrderNumber {
			dup = true
		}
		return nil
	})
	if err != nil {
		return err
	}
	if dup {
		return domain.ErrDuplicate
	}

	refs := r.tx.Bucket(bucketPOItemRefs)
	items := r.tx.Bucket(bucketItems)
	for _, it := range po.Items {
		if it.InventoryItemID == "" {
			continue
		}
		if items.Get([]byte(it.InventoryItemID)) == nil {
			return domain.ErrNotFound
		}
		if err := refs.Put(compositeKey(it.InventoryItemID, po.ID), nil); err != nil {
			return domain.Storage("index purchase order item", err)
		}
	}
	return putJSON(b, []byte(po.ID), po, "insert purchase order")
}

func (r *purchaseOrderRepo) load(id string) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	ok, err := getJSON(r.tx.Bucket(bucketPurchaseOrders), []byte(id), &po)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &po, nil
}

func (r *purchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := r.load(id)
	if err != nil {
		return nil, err
	}
	if !po.IsLive() {
		return nil, domain.ErrNotFound
	}
	return po, nil
}

func (r *purchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *purchaseOrderRepo) UpdateStatus(ctx context.Context, id, status string, deliveredAt *time.Time, at time.Time) error {
	po, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	po.Status = status
	if deliveredAt != nil {
		po.ActualDeliveryDate = deliveredAt
	}
	po.UpdatedAt = at
	return putJSON(r.tx.Bucket(bucketPurchaseOrders), []byte(id), po, "update purchase order status")
}

func (r *purchaseOrderRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	po, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	po.DeletedAt = &at
	po.UpdatedAt = at
	return putJSON(r.tx.Bucket(bucketPurchaseOrders), []byte(id), po, "delete purchase order")
}

func (r *purchaseOrderRepo) HasLiveReference(_ context.Context, inventoryItemID string) (bool, error) {
	prefix := prefixKey(inventoryItemID)
	c := r.tx.Bucket(bucketPOItemRefs).Cursor()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		po, err := r.load(lastPart(k))
		if err != nil {
			return false, err
		}
		if po.IsLive() {
			return true, nil
		}
	}
	return false, nil
}

func (r *purchaseOrderRepo) Count(context.Context) (int, error) {
	return countKeys(r.tx.Bucket(bucketPurchaseOrders)), nil
}

// unlinkItem deja en blanco las líneas que apuntaban a un ítem borrado (ON DELETE SET NULL).
func (r *purchaseOrderRepo) unlinkItem(_ context.Context, poID, itemID string) error {
	po, err := r.load(poID)
	if err != nil {
		return err
	}
	for i := range po.Items {
		if po.Items[i].InventoryItemID == itemID {
			po.Items[i].InventoryItemID = ""
		}
	}
	return putJSON(r.tx.Bucket(bucketPurchaseOrders), []byte(poID), po, "unlink purchase order item")
}
