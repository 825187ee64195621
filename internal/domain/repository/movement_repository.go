package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// MovementRepository puerto del libro de movimientos: solo inserción y lectura.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	// ListPage devuelve movimientos del ítem con id > page.After (y performed_at >= Since),
	// del más antiguo al más reciente.
	ListPage(ctx context.Context, page entity.MovementPage) ([]*entity.Movement, error)
}
