package inventory

import (
	"context"
	"iter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// MovementInput entrada para registrar un movimiento en el libro.
// Quantity siempre > 0; Direction solo en ajustes. UnitCost en inbound/initial
// recalcula el costo promedio ponderado del ítem.
type MovementInput struct {
	ItemID        string
	Type          string
	Direction     string
	Quantity      decimal.Decimal
	UnitCost      *decimal.Decimal
	ReferenceType string
	ReferenceID   string
	Notes         string
	Actor         string
}

// MovementResult resultado de ApplyMovement. AlertErr informa un fallo de la
// reconciliación de alertas posterior; el movimiento ya quedó confirmado.
type MovementResult struct {
	Item     *entity.InventoryItem
	Movement *entity.Movement
	AlertErr error
}

// Balance stock resultante tras el movimiento.
func (r *MovementResult) Balance() decimal.Decimal {
	return r.Movement.BalanceAfter
}

// ApplyMovement bloquea el ítem, agrega el movimiento al libro y actualiza la proyección
// de stock en una sola transacción; después reconcilia las alertas del ítem.
func (s *Service) ApplyMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	if err := inventory.ValidateMovement(in.Type, in.Direction, in.Quantity, in.UnitCost); err != nil {
		return nil, err
	}
	res := &MovementResult{}
	err := s.tx.Run(ctx, func(r repository.Repositories) error {
		item, mov, err := RecordInTx(ctx, r, in, s.opts.Now())
		if err != nil {
			return err
		}
		res.Item, res.Movement = item, mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("item_id", in.ItemID).
		Str("type", in.Type).
		Str("quantity", in.Quantity.String()).
		Str("balance", res.Movement.BalanceAfter.String()).
		Msg("movimiento registrado")

	if _, err := s.alerts.Reconcile(ctx, in.ItemID, in.Actor); err != nil {
		s.log.Warn().Err(err).Str("item_id", in.ItemID).Msg("reconciliación de alertas pendiente")
		res.AlertErr = err
	}
	return res, nil
}

// RecordInTx registra un movimiento usando los repositorios de la transacción del caller
// (recepción de órdenes de compra, carga inicial). Bloquea la fila del ítem
// (SELECT FOR UPDATE), valida que el stock no quede negativo, actualiza costo y stock
// y guarda el movimiento con su saldo resultante.
func RecordInTx(ctx context.Context, r repository.Repositories, in MovementInput, now time.Time) (*entity.InventoryItem, *entity.Movement, error) {
	if err := inventory.ValidateMovement(in.Type, in.Direction, in.Quantity, in.UnitCost); err != nil {
		return nil, nil, err
	}
	item, err := r.Items.GetForUpdate(ctx, in.ItemID)
	if err != nil {
		return nil, nil, err
	}
	next, err := inventory.Apply(item.CurrentStock, in.Type, in.Direction, in.Quantity)
	if err != nil {
		return nil, nil, err
	}

	cost := item.UnitCost
	if in.UnitCost != nil && (in.Type == entity.MovementTypeInbound || in.Type == entity.MovementTypeInitial) {
		cost = inventory.WeightedCost(item.CurrentStock, item.UnitCost, in.Quantity, *in.UnitCost)
	}

	mov := &entity.Movement{
		ID:            newID(),
		ItemID:        item.ID,
		Type:          in.Type,
		Direction:     in.Direction,
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Notes:         in.Notes,
		PerformedBy:   in.Actor,
		PerformedAt:   now,
		BalanceAfter:  next,
	}
	if err := r.Movements.Create(ctx, mov); err != nil {
		return nil, nil, err
	}
	if err := r.Items.UpdateStock(ctx, item.ID, next, cost, now); err != nil {
		return nil, nil, err
	}
	item.CurrentStock = next
	item.UnitCost = cost
	item.UpdatedAt = now
	return item, mov, nil
}

// History recorre los movimientos del ítem del más antiguo al más reciente,
// opcionalmente desde since. Devuelve domain.ErrNotFound si el ítem no existe.
func (s *Service) History(ctx context.Context, itemID string, since *time.Time) iter.Seq2[*entity.Movement, error] {
	return func(yield func(*entity.Movement, error) bool) {
		page := entity.MovementPage{ItemID: itemID, Since: since, Limit: s.opts.PageSize}
		first := true
		for {
			var movs []*entity.Movement
			err := s.tx.View(ctx, func(r repository.Repositories) error {
				if first {
					if _, err := r.Items.GetByID(ctx, itemID); err != nil {
						return err
					}
				}
				var err error
				movs, err = r.Movements.ListPage(ctx, page)
				return err
			})
			if err != nil {
				yield(nil, err)
				return
			}
			first = false
			for _, m := range movs {
				if !yield(m, nil) {
					return
				}
			}
			if len(movs) < page.Limit {
				return
			}
			page.After = movs[len(movs)-1].ID
		}
	}
}

// Reconcile reconstruye el stock del ítem desde su historial completo y lo compara con
// el almacenado. Todo se lee en una sola transacción de lectura.
func (s *Service) Reconcile(ctx context.Context, itemID string) (inventory.ReconciliationReport, error) {
	var report inventory.ReconciliationReport
	err := s.tx.View(ctx, func(r repository.Repositories) error {
		var err error
		report, err = reconcileInTx(ctx, r, itemID, s.opts.PageSize)
		return err
	})
	return report, err
}

func reconcileInTx(ctx context.Context, r repository.Repositories, itemID string, pageSize int) (inventory.ReconciliationReport, error) {
	item, err := r.Items.GetByID(ctx, itemID)
	if err != nil {
		return inventory.ReconciliationReport{}, err
	}
	replayed := decimal.Zero
	count := 0
	page := entity.MovementPage{ItemID: itemID, Limit: pageSize}
	for {
		movs, err := r.Movements.ListPage(ctx, page)
		if err != nil {
			return inventory.ReconciliationReport{}, err
		}
		replayed = replayed.Add(inventory.Replay(movs))
		count += len(movs)
		if len(movs) < pageSize {
			break
		}
		page.After = movs[len(movs)-1].ID
	}
	return inventory.NewReconciliationReport(item.ID, item.CurrentStock, replayed, count), nil
}

// ReconcileAll verifica todos los ítems y devuelve un informe por ítem.
func (s *Service) ReconcileAll(ctx context.Context) ([]inventory.ReconciliationReport, error) {
	var reports []inventory.ReconciliationReport
	for item, err := range s.ListItems(ctx, entity.ItemFilter{}) {
		if err != nil {
			return reports, err
		}
		report, err := s.Reconcile(ctx, item.ID)
		if err != nil {
			return reports, err
		}
		if !report.InSync() {
			s.log.Error().
				Str("item_id", report.ItemID).
				Str("stored", report.StoredStock.String()).
				Str("replayed", report.ReplayedStock.String()).
				Msg("stock desincronizado con el libro")
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// RecordInTx expone RecordInTx para casos de uso que comparten la transacción
// (recepción de órdenes de compra).
func (s *Service) RecordInTx(ctx context.Context, r repository.Repositories, in MovementInput, now time.Time) (*entity.InventoryItem, *entity.Movement, error) {
	return RecordInTx(ctx, r, in, now)
}

// ReconcileAlerts reconcilia las alertas del ítem tras un cambio confirmado por otro caso de uso.
func (s *Service) ReconcileAlerts(ctx context.Context, itemID, actor string) error {
	if _, err := s.alerts.Reconcile(ctx, itemID, actor); err != nil {
		s.log.Warn().Err(err).Str("item_id", itemID).Msg("reconciliación de alertas pendiente")
		return err
	}
	return nil
}
