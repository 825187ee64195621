package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// InventoryItemRepository puerto de persistencia de ítems de inventario.
// GetByID y GetForUpdate devuelven domain.ErrNotFound si el ítem no existe.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea el ítem hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	// Update persiste los campos descriptivos y umbrales; nunca current_stock.
	Update(ctx context.Context, item *entity.InventoryItem) error
	// UpdateStock persiste la proyección de stock y el costo promedio.
	UpdateStock(ctx context.Context, id string, stock, unitCost decimal.Decimal, at time.Time) error
	// ListPage devuelve hasta limit ítems con id > after, en orden de id ascendente.
	ListPage(ctx context.Context, filter entity.ItemFilter, after string, limit int) ([]*entity.InventoryItem, error)
	// Delete borra el ítem junto con sus movimientos y alertas.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
