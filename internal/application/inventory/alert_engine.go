package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// AlertEngine abre y resuelve alertas de stock según el estado actual de cada ítem.
type AlertEngine struct {
	tx   repository.TxRunner
	log  zerolog.Logger
	opts Options
}

func newAlertEngine(tx repository.TxRunner, log zerolog.Logger, opts Options) *AlertEngine {
	return &AlertEngine{tx: tx, log: log.With().Str("engine", "alerts").Logger(), opts: opts}
}

// ReconcileOutcome alertas creadas y resueltas en una reconciliación.
type ReconcileOutcome struct {
	Created  []*entity.Alert
	Resolved []*entity.Alert
}

// Changed indica si la reconciliación modificó algo.
func (o ReconcileOutcome) Changed() bool {
	return len(o.Created) > 0 || len(o.Resolved) > 0
}

// Evaluate devuelve las condiciones de alerta que cumple el ítem ahora.
func (e *AlertEngine) Evaluate(item *entity.InventoryItem, now time.Time) []inventory.Condition {
	return inventory.Evaluate(item, now, e.opts.ExpiryWindowDays, e.opts.Location)
}

// Reconcile vuelve a leer el ítem bloqueado y ajusta sus alertas abiertas: crea las que
// faltan y resuelve las que ya no aplican. Repetirlo sin cambios de estado no hace nada.
func (e *AlertEngine) Reconcile(ctx context.Context, itemID, actor string) (ReconcileOutcome, error) {
	var out ReconcileOutcome
	err := e.tx.Run(ctx, func(r repository.Repositories) error {
		item, err := r.Items.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		out, err = e.ReconcileInTx(ctx, r, item, actor, e.opts.Now())
		return err
	})
	if err != nil {
		return ReconcileOutcome{}, err
	}
	for _, a := range out.Created {
		e.log.Info().Str("item_id", itemID).Str("type", a.Type).Str("level", a.Level).Msg("alerta abierta")
	}
	for _, a := range out.Resolved {
		e.log.Info().Str("item_id", itemID).Str("type", a.Type).Msg("alerta resuelta")
	}
	return out, nil
}

// ReconcileInTx reconcilia las alertas de item dentro de la transacción del caller.
func (e *AlertEngine) ReconcileInTx(ctx context.Context, r repository.Repositories, item *entity.InventoryItem, actor string, now time.Time) (ReconcileOutcome, error) {
	open, err := r.Alerts.ListOpenByItem(ctx, item.ID)
	if err != nil {
		return ReconcileOutcome{}, err
	}
	toCreate, toResolve := inventory.Plan(e.Evaluate(item, now), open)

	var out ReconcileOutcome
	for _, a := range toResolve {
		a.Resolve(now, actor)
		if err := r.Alerts.Resolve(ctx, a); err != nil {
			return ReconcileOutcome{}, err
		}
		out.Resolved = append(out.Resolved, a)
	}
	for _, c := range toCreate {
		a := &entity.Alert{
			ID:        newID(),
			ItemID:    item.ID,
			Type:      c.Type,
			Level:     c.Level,
			Message:   c.Message,
			CreatedAt: now,
		}
		if err := r.Alerts.Create(ctx, a); err != nil {
			return ReconcileOutcome{}, err
		}
		out.Created = append(out.Created, a)
	}
	return out, nil
}

// ResolveAlert marca una alerta como resuelta por un administrador.
// domain.ErrNotFound si no existe, domain.ErrConflict si ya estaba resuelta.
func (e *AlertEngine) ResolveAlert(ctx context.Context, alertID, actor string) (*entity.Alert, error) {
	var alert *entity.Alert
	err := e.tx.Run(ctx, func(r repository.Repositories) error {
		a, err := r.Alerts.GetByID(ctx, alertID)
		if err != nil {
			return err
		}
		a.Resolve(e.opts.Now(), actor)
		if err := r.Alerts.Resolve(ctx, a); err != nil {
			return err
		}
		alert = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.log.Info().Str("alert_id", alertID).Str("actor", actor).Msg("alerta resuelta manualmente")
	return alert, nil
}

// ListAlerts lista alertas por ítem y/o solo abiertas, de la más antigua a la más reciente.
func (e *AlertEngine) ListAlerts(ctx context.Context, filter entity.AlertFilter) ([]*entity.Alert, error) {
	if err := checkQueryID("item_id", filter.ItemID); err != nil {
		return nil, err
	}
	var alerts []*entity.Alert
	err := e.tx.View(ctx, func(r repository.Repositories) error {
		var err error
		alerts, err = r.Alerts.List(ctx, filter)
		return err
	})
	return alerts, err
}

// SweepReport resumen de un barrido periódico.
type SweepReport struct {
	Items    int `json:"items"`
	Created  int `json:"created"`
	Resolved int `json:"resolved"`
	Failed   int `json:"failed"`
}

// Sweep reconcilia las alertas de todos los ítems, cada uno en su propia transacción.
// Un fallo en un ítem se registra y el barrido sigue; solo el error de listado corta.
func (e *AlertEngine) Sweep(ctx context.Context) (SweepReport, error) {
	var rep SweepReport
	after := ""
	for {
		var page []*entity.InventoryItem
		err := e.tx.View(ctx, func(r repository.Repositories) error {
			var err error
			page, err = r.Items.ListPage(ctx, entity.ItemFilter{}, after, e.opts.PageSize)
			return err
		})
		if err != nil {
			return rep, err
		}
		for _, item := range page {
			rep.Items++
			out, err := e.Reconcile(ctx, item.ID, "")
			if errors.Is(err, domain.ErrNotFound) {
				continue // borrado entre páginas
			}
			if err != nil {
				rep.Failed++
				e.log.Warn().Err(err).Str("item_id", item.ID).Msg("barrido: reconciliación fallida")
				continue
			}
			rep.Created += len(out.Created)
			rep.Resolved += len(out.Resolved)
		}
		if len(page) < e.opts.PageSize {
			break
		}
		after = page[len(page)-1].ID
	}
	e.log.Debug().
		Int("items", rep.Items).
		Int("created", rep.Created).
		Int("resolved", rep.Resolved).
		Int("failed", rep.Failed).
		Msg("barrido de alertas")
	return rep, nil
}
