package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// DefaultExpiryWindowDays ventana de aviso de vencimiento.
const DefaultExpiryWindowDays = 7

// Condition es una condición de alerta que se cumple sobre el estado del ítem,
// exista o no una alerta abierta para ella.
type Condition struct {
	Type    string
	Level   string
	Message string
}

// Evaluate es una función pura del estado del ítem:
//   - low_stock si current_stock <= reorder_point
//   - expiry_warning si hay fecha de vencimiento y cae en o antes de hoy + windowDays
//     (días calendario en loc; los ya vencidos mantienen la condición)
func Evaluate(it *entity.InventoryItem, now time.Time, windowDays int, loc *time.Location) []Condition {
	var out []Condition
	if it.CurrentStock.LessThanOrEqual(it.ReorderPoint) {
		out = append(out, Condition{
			Type:  entity.AlertTypeLowStock,
			Level: entity.AlertLevelWarning,
			Message: fmt.Sprintf("%sの在庫が発注点（%s%s）以下です。現在在庫：%s%s",
				it.Name, it.ReorderPoint.String(), it.Unit, it.CurrentStock.String(), it.Unit),
		})
	}
	if it.ExpiryDate != nil {
		expiry := CalendarDate(*it.ExpiryDate, time.UTC)
		limit := CalendarDate(now, loc).AddDate(0, 0, windowDays)
		if !expiry.After(limit) {
			out = append(out, Condition{
				Type:    entity.AlertTypeExpiryWarning,
				Level:   entity.AlertLevelUrgent,
				Message: fmt.Sprintf("%sの賞味期限が近づいています（%s）", it.Name, expiry.Format(time.DateOnly)),
			})
		}
	}
	return out
}

// CalendarDate devuelve la fecha (a las 00:00 UTC) que corresponde a t en loc.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Plan compara condiciones vigentes con alertas abiertas:
// toCreate = condiciones sin alerta abierta de su tipo; toResolve = alertas abiertas
// cuyo tipo ya no se cumple. Con estado sin cambios el plan es vacío.
func Plan(conditions []Condition, open []*entity.Alert) (toCreate []Condition, toResolve []*entity.Alert) {
	active := make(map[string]bool, len(conditions))
	for _, c := range conditions {
		active[c.Type] = true
	}
	seen := make(map[string]bool, len(open))
	for _, a := range open {
		if a.IsResolved {
			continue
		}
		if !active[a.Type] || seen[a.Type] {
			toResolve = append(toResolve, a)
			continue
		}
		seen[a.Type] = true
	}
	for _, c := range conditions {
		if !seen[c.Type] {
			toCreate = append(toCreate, c)
			seen[c.Type] = true
		}
	}
	return toCreate, toResolve
}
