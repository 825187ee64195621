package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ValidateMovement valida tipo, dirección, cantidad y costo de un movimiento.
// La cantidad es siempre positiva: el sentido lo da el tipo (y la dirección en ajustes).
func ValidateMovement(typ, direction string, qty decimal.Decimal, unitCost *decimal.Decimal) error {
	switch typ {
	case entity.MovementTypeAdjustment:
		if direction != entity.DirectionIncrease && direction != entity.DirectionDecrease {
			return domain.Invalid("direction debe ser increase o decrease en un ajuste")
		}
	case entity.MovementTypeInitial, entity.MovementTypeInbound,
		entity.MovementTypeOutbound, entity.MovementTypeWaste:
		if direction != "" {
			return domain.Invalid("direction solo aplica a ajustes")
		}
	default:
		return domain.Invalid("tipo de movimiento desconocido %q", typ)
	}
	if !qty.IsPositive() {
		return domain.Invalid("quantity debe ser > 0 (recibido %s)", qty.String())
	}
	if unitCost != nil && unitCost.IsNegative() {
		return domain.Invalid("unit_cost no puede ser negativo")
	}
	return nil
}

// SignedDelta devuelve el efecto del movimiento sobre el stock.
// +q: initial, inbound, adjustment(increase); -q: outbound, waste, adjustment(decrease).
func SignedDelta(typ, direction string, qty decimal.Decimal) decimal.Decimal {
	switch typ {
	case entity.MovementTypeOutbound, entity.MovementTypeWaste:
		return qty.Neg()
	case entity.MovementTypeAdjustment:
		if direction == entity.DirectionDecrease {
			return qty.Neg()
		}
	}
	return qty
}

// Apply calcula el stock prospectivo. Si queda por debajo de cero devuelve
// domain.ErrInsufficientStock y el stock actual sin cambios.
func Apply(current decimal.Decimal, typ, direction string, qty decimal.Decimal) (decimal.Decimal, error) {
	next := current.Add(SignedDelta(typ, direction, qty))
	if next.IsNegative() {
		return current, domain.ErrInsufficientStock
	}
	return next, nil
}

// Replay reduce un historial a su saldo: suma de deltas con signo.
func Replay(movements []*entity.Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(SignedDelta(m.Type, m.Direction, m.Quantity))
	}
	return total
}

// ReconciliationReport compara el stock almacenado con el reconstruido desde el libro.
type ReconciliationReport struct {
	ItemID        string
	StoredStock   decimal.Decimal
	ReplayedStock decimal.Decimal
	MovementCount int
	Drift         decimal.Decimal // stored - replayed
}

// InSync indica si no hay diferencia entre proyección y libro.
func (r ReconciliationReport) InSync() bool {
	return r.Drift.IsZero()
}

// NewReconciliationReport arma el informe para un ítem.
func NewReconciliationReport(itemID string, stored, replayed decimal.Decimal, count int) ReconciliationReport {
	return ReconciliationReport{
		ItemID:        itemID,
		StoredStock:   stored,
		ReplayedStock: replayed,
		MovementCount: count,
		Drift:         stored.Sub(replayed),
	}
}
