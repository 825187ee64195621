package bolt

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

type alertRepo struct {
	tx *bbolt.Tx
}

func (r *alertRepo) Create(ctx context.Context, a *entity.Alert) error {
	if r.tx.Bucket(bucketItems).Get([]byte(a.ItemID)) == nil {
		return domain.ErrNotFound
	}
	if !a.IsResolved {
		open, err := r.ListOpenByItem(ctx, a.ItemID)
		if err != nil {
			return err
		}
		for _, o := range open {
			if o.Type == a.Type {
				return fmt.Errorf("%w: ya existe una alerta abierta %s", domain.ErrConflict, a.Type)
			}
		}
	}
	if err := putJSON(r.tx.Bucket(bucketAlerts), []byte(a.ID), a, "insert stock alert"); err != nil {
		return err
	}
	if err := r.tx.Bucket(bucketAlertsByItem).Put(compositeKey(a.ItemID, a.ID), nil); err != nil {
		return domain.Storage("index stock alert", err)
	}
	return nil
}

func (r *alertRepo) GetByID(_ context.Context, id string) (*entity.Alert, error) {
	var a entity.Alert
	ok, err := getJSON(r.tx.Bucket(bucketAlerts), []byte(id), &a)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *alertRepo) ListOpenByItem(ctx context.Context, itemID string) ([]*entity.Alert, error) {
	return r.List(ctx, entity.AlertFilter{ItemID: itemID, OpenOnly: true})
}

func (r *alertRepo) List(ctx context.Context, filter entity.AlertFilter) ([]*entity.Alert, error) {
	var out []*entity.Alert
	keep := func(a *entity.Alert) {
		if filter.OpenOnly && a.IsResolved {
			return
		}
		out = append(out, a)
	}

	if filter.ItemID != "" {
		prefix := prefixKey(filter.ItemID)
		c := r.tx.Bucket(bucketAlertsByItem).Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			a, err := r.GetByID(ctx, lastPart(k))
			if err != nil {
				return nil, err
			}
			keep(a)
		}
	} else {
		err := r.tx.Bucket(bucketAlerts).ForEach(func(_, v []byte) error {
			var a entity.Alert
			if err := decode(v, &a, "stock alert"); err != nil {
				return err
			}
			keep(&a)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *alertRepo) Resolve(ctx context.Context, a *entity.Alert) error {
	cur, err := r.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if cur.IsResolved {
		return fmt.Errorf("%w: la alerta ya estaba resuelta", domain.ErrConflict)
	}
	cur.IsResolved = true
	cur.ResolvedAt = a.ResolvedAt
	cur.ResolvedBy = a.ResolvedBy
	return putJSON(r.tx.Bucket(bucketAlerts), []byte(cur.ID), cur, "resolve stock alert")
}
