package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra y sus líneas.
// GetByID y GetForUpdate ignoran órdenes borradas lógicamente (domain.ErrNotFound).
type PurchaseOrderRepository interface {
	// Create inserta la cabecera y sus líneas.
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id, status string, deliveredAt *time.Time, at time.Time) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	// HasLiveReference indica si alguna línea de una orden no borrada apunta al ítem.
	HasLiveReference(ctx context.Context, inventoryItemID string) (bool, error)
	Count(ctx context.Context) (int, error)
}
