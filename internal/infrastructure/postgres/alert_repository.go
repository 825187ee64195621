package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertColumns = `id, item_id, alert_type, alert_level, message, is_resolved, resolved_at, resolved_by, created_at`

// AlertRepo implementación de alertas sobre PostgreSQL. El índice único parcial
// ux_stock_alerts_open garantiza una sola alerta abierta por (ítem, tipo).
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

func scanAlert(row rowScanner) (*entity.Alert, error) {
	var a entity.Alert
	var resolvedBy *string
	if err := row.Scan(
		&a.ID, &a.ItemID, &a.Type, &a.Level, &a.Message, &a.IsResolved, &a.ResolvedAt, &resolvedBy, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	a.ResolvedBy = derefString(resolvedBy)
	return &a, nil
}

// Create inserta una alerta abierta.
func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	query := `INSERT INTO stock_alerts (` + alertColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.ItemID, a.Type, a.Level, a.Message, a.IsResolved, a.ResolvedAt, nullString(a.ResolvedBy), a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe una alerta abierta %s", domain.ErrConflict, a.Type)
		}
		return domain.Storage("insert stock alert", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID.
func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	a, err := scanAlert(r.q.QueryRow(ctx, `SELECT `+alertColumns+` FROM stock_alerts WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr("get stock alert", err)
	}
	return a, nil
}

// ListOpenByItem devuelve las alertas no resueltas del ítem.
func (r *AlertRepo) ListOpenByItem(ctx context.Context, itemID string) ([]*entity.Alert, error) {
	return r.list(ctx, entity.AlertFilter{ItemID: itemID, OpenOnly: true})
}

// List devuelve alertas filtradas, más antiguas primero.
func (r *AlertRepo) List(ctx context.Context, filter entity.AlertFilter) ([]*entity.Alert, error) {
	return r.list(ctx, filter)
}

func (r *AlertRepo) list(ctx context.Context, filter entity.AlertFilter) ([]*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts WHERE TRUE`
	var args []any
	if filter.ItemID != "" {
		args = append(args, filter.ItemID)
		query += fmt.Sprintf(" AND item_id = $%d", len(args))
	}
	if filter.OpenOnly {
		query += " AND NOT is_resolved"
	}
	query += " ORDER BY created_at, id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Storage("list stock alerts", err)
	}
	defer rows.Close()

	var out []*entity.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, domain.Storage("scan stock alert", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("list stock alerts", err)
	}
	return out, nil
}

// Resolve marca la alerta como resuelta solo si seguía abierta (resolución monótona).
func (r *AlertRepo) Resolve(ctx context.Context, a *entity.Alert) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE stock_alerts SET is_resolved = TRUE, resolved_at = $2, resolved_by = $3
		WHERE id = $1 AND NOT is_resolved`,
		a.ID, a.ResolvedAt, nullString(a.ResolvedBy),
	)
	if err != nil {
		return domain.Storage("resolve stock alert", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: la alerta ya estaba resuelta o no existe", domain.ErrConflict)
	}
	return nil
}
