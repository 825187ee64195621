package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// AdministratorRepository define el puerto de persistencia para Administrator.
type AdministratorRepository interface {
	Create(ctx context.Context, a *entity.Administrator) error
	GetByID(ctx context.Context, id string) (*entity.Administrator, error)
	GetByUsername(ctx context.Context, username string) (*entity.Administrator, error)
	Count(ctx context.Context) (int, error)
}
