package entity

import "time"

// Tipos y niveles de alerta.
const (
	AlertTypeLowStock      = "low_stock"
	AlertTypeExpiryWarning = "expiry_warning"

	AlertLevelWarning = "warning"
	AlertLevelUrgent  = "urgent"
)

// Alert es una alerta de stock. Nunca se borra (salvo en cascada con su ítem);
// una vez resuelta conserva ResolvedAt/ResolvedBy.
type Alert struct {
	ID         string
	ItemID     string
	Type       string
	Level      string
	Message    string
	IsResolved bool
	ResolvedAt *time.Time
	ResolvedBy string // vacío = sistema
	CreatedAt  time.Time
}

// Resolve marca la alerta como resuelta. No hace nada si ya lo estaba.
func (a *Alert) Resolve(at time.Time, by string) bool {
	if a.IsResolved {
		return false
	}
	a.IsResolved = true
	a.ResolvedAt = &at
	a.ResolvedBy = by
	return true
}

// AlertFilter filtra ListAlerts.
type AlertFilter struct {
	ItemID   string
	OpenOnly bool
}
