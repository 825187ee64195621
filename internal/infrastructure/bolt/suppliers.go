package bolt

import (
	"context"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

type supplierRepo struct {
	tx *bbolt.Tx
}

func (r *supplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	b := r.tx.Bucket(bucketSuppliers)
	if b.Get([]byte(s.ID)) != nil {
		return domain.ErrDuplicate
	}
	return putJSON(b, []byte(s.ID), s, "insert supplier")
}

func (r *supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var s entity.Supplier
	ok, err := getJSON(r.tx.Bucket(bucketSuppliers), []byte(id), &s)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *supplierRepo) GetByName(ctx context.Context, name string) (*entity.Supplier, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range all {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *supplierRepo) List(context.Context) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.tx.Bucket(bucketSuppliers).ForEach(func(_, v []byte) error {
		var s entity.Supplier
		if err := decode(v, &s, "supplier"); err != nil {
			return err
		}
		out = append(out, &s)
		return nil
	})
	return out, err
}

func (r *supplierRepo) Count(context.Context) (int, error) {
	return countKeys(r.tx.Bucket(bucketSuppliers)), nil
}
