package bolt

import (
	"bytes"
	"context"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

type movementRepo struct {
	tx *bbolt.Tx
}

func (r *movementRepo) Create(_ context.Context, m *entity.Movement) error {
	if r.tx.Bucket(bucketItems).Get([]byte(m.ItemID)) == nil {
		return domain.ErrNotFound
	}
	key := compositeKey(m.ItemID, m.ID)
	b := r.tx.Bucket(bucketMovements)
	if b.Get(key) != nil {
		return domain.ErrDuplicate
	}
	return putJSON(b, key, m, "insert inventory movement")
}

// ListPage recorre las claves itemID\x00movementID en orden (UUIDv7 = orden de creación).
func (r *movementRepo) ListPage(_ context.Context, page entity.MovementPage) ([]*entity.Movement, error) {
	prefix := prefixKey(page.ItemID)
	c := r.tx.Bucket(bucketMovements).Cursor()

	var k, v []byte
	if page.After == "" {
		k, v = c.Seek(prefix)
	} else {
		start := compositeKey(page.ItemID, page.After)
		k, v = c.Seek(start)
		if k != nil && bytes.Equal(k, start) {
			k, v = c.Next()
		}
	}

	var out []*entity.Movement
	for ; k != nil && bytes.HasPrefix(k, prefix) && len(out) < page.Limit; k, v = c.Next() {
		var m entity.Movement
		if err := decode(v, &m, "inventory movement"); err != nil {
			return nil, err
		}
		if page.Since != nil && m.PerformedAt.Before(*page.Since) {
			continue
		}
		out = append(out, &m)
	}
	return out, nil
}
