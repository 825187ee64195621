package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro sobre PostgreSQL. Solo INSERT y SELECT;
// un trigger impide UPDATE sobre inventory_movements.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO inventory_movements (id, item_id, movement_type, direction, quantity, unit_cost,
			reference_type, reference_id, notes, performed_by, performed_at, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemID, m.Type, m.Direction, m.Quantity, m.UnitCost,
		m.ReferenceType, m.ReferenceID, m.Notes, nullString(m.PerformedBy), m.PerformedAt, m.BalanceAfter,
	)
	if err != nil {
		return domain.Storage("insert inventory movement", err)
	}
	return nil
}

// ListPage devuelve una página del historial del ítem, del más antiguo al más reciente.
func (r *MovementRepo) ListPage(ctx context.Context, page entity.MovementPage) ([]*entity.Movement, error) {
	query := `
		SELECT id, item_id, movement_type, direction, quantity, unit_cost, reference_type,
			reference_id, notes, performed_by, performed_at, balance_after
		FROM inventory_movements WHERE item_id = $1`
	args := []any{page.ItemID}
	pos := 2
	if page.Since != nil {
		query += fmt.Sprintf(" AND performed_at >= $%d", pos)
		args = append(args, *page.Since)
		pos++
	}
	if page.After != "" {
		query += fmt.Sprintf(" AND id > $%d", pos)
		args = append(args, page.After)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d", pos)
	args = append(args, page.Limit)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Storage("list inventory movements", err)
	}
	defer rows.Close()

	var out []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var performedBy *string
		if err := rows.Scan(
			&m.ID, &m.ItemID, &m.Type, &m.Direction, &m.Quantity, &m.UnitCost, &m.ReferenceType,
			&m.ReferenceID, &m.Notes, &performedBy, &m.PerformedAt, &m.BalanceAfter,
		); err != nil {
			return nil, domain.Storage("scan inventory movement", err)
		}
		m.PerformedBy = derefString(performedBy)
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("list inventory movements", err)
	}
	return out, nil
}
