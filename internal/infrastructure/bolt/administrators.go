package bolt

import (
	"context"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

type administratorRepo struct {
	tx *bbolt.Tx
}

func (r *administratorRepo) Create(_ context.Context, a *entity.Administrator) error {
	byName := r.tx.Bucket(bucketAdminsByName)
	if byName.Get([]byte(a.Username)) != nil {
		return domain.ErrDuplicate
	}
	if err := putJSON(r.tx.Bucket(bucketAdministrators), []byte(a.ID), a, "insert administrator"); err != nil {
		return err
	}
	if err := byName.Put([]byte(a.Username), []byte(a.ID)); err != nil {
		return domain.Storage("index administrator", err)
	}
	return nil
}

func (r *administratorRepo) GetByID(_ context.Context, id string) (*entity.Administrator, error) {
	var a entity.Administrator
	ok, err := getJSON(r.tx.Bucket(bucketAdministrators), []byte(id), &a)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *administratorRepo) GetByUsername(ctx context.Context, username string) (*entity.Administrator, error) {
	id := r.tx.Bucket(bucketAdminsByName).Get([]byte(username))
	if id == nil {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, string(id))
}

func (r *administratorRepo) Count(context.Context) (int, error) {
	return countKeys(r.tx.Bucket(bucketAdministrators)), nil
}
