package purchasing

import (
	"context"
	"time"

	appinv "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// InventoryLedger integra compras con el libro de inventario.
// RecordInTx registra una entrada usando los repositorios del caller (misma transacción);
// si devuelve error el caller hace rollback.
type InventoryLedger interface {
	RecordInTx(ctx context.Context, r repository.Repositories, in appinv.MovementInput, now time.Time) (*entity.InventoryItem, *entity.Movement, error)
	ReconcileAlerts(ctx context.Context, itemID, actor string) error
}
