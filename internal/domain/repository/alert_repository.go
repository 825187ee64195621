package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// AlertRepository puerto de persistencia de alertas de stock.
type AlertRepository interface {
	Create(ctx context.Context, a *entity.Alert) error
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	ListOpenByItem(ctx context.Context, itemID string) ([]*entity.Alert, error)
	// Resolve persiste la resolución; devuelve domain.ErrConflict si ya estaba resuelta.
	Resolve(ctx context.Context, a *entity.Alert) error
	List(ctx context.Context, filter entity.AlertFilter) ([]*entity.Alert, error)
}
