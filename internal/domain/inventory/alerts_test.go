package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

var tokyo = time.FixedZone("JST", 9*3600)

func dateOnly(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func types(conds []inventory.Condition) []string {
	out := make([]string, 0, len(conds))
	for _, c := range conds {
		out = append(out, c.Type)
	}
	return out
}

func TestEvaluate_LowStock(t *testing.T) {
	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	it := &entity.InventoryItem{Name: "サーロインステーキ", Unit: "kg", CurrentStock: d("1"), ReorderPoint: d("2")}

	conds := inventory.Evaluate(it, now, 7, time.UTC)
	require.Len(t, conds, 1)
	assert.Equal(t, entity.AlertTypeLowStock, conds[0].Type)
	assert.Equal(t, entity.AlertLevelWarning, conds[0].Level)
	assert.Contains(t, conds[0].Message, "サーロインステーキ")

	it.CurrentStock = d("2")
	assert.Equal(t, []string{entity.AlertTypeLowStock}, types(inventory.Evaluate(it, now, 7, time.UTC)), "igual al punto de pedido cuenta")

	it.CurrentStock = d("2.0001")
	assert.Empty(t, inventory.Evaluate(it, now, 7, time.UTC))
}

func TestEvaluate_Expiry(t *testing.T) {
	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	it := &entity.InventoryItem{Name: "イカ", Unit: "kg", CurrentStock: d("10"), ReorderPoint: d("2")}

	it.ExpiryDate = dateOnly("2025-01-23") // hoy + 3
	conds := inventory.Evaluate(it, now, 7, time.UTC)
	require.Len(t, conds, 1)
	assert.Equal(t, entity.AlertTypeExpiryWarning, conds[0].Type)
	assert.Equal(t, entity.AlertLevelUrgent, conds[0].Level)
	assert.Contains(t, conds[0].Message, "2025-01-23")

	it.ExpiryDate = dateOnly("2025-01-30") // hoy + 10
	assert.Empty(t, inventory.Evaluate(it, now, 7, time.UTC))

	it.ExpiryDate = dateOnly("2025-01-27") // hoy + 7, inclusivo
	assert.Len(t, inventory.Evaluate(it, now, 7, time.UTC), 1)

	it.ExpiryDate = dateOnly("2025-01-28") // hoy + 8
	assert.Empty(t, inventory.Evaluate(it, now, 7, time.UTC))

	it.ExpiryDate = dateOnly("2025-01-01") // ya vencido
	assert.Len(t, inventory.Evaluate(it, now, 7, time.UTC), 1)

	it.ExpiryDate = nil
	assert.Empty(t, inventory.Evaluate(it, now, 7, time.UTC))
}

func TestEvaluate_ExpiryUsaDiaCalendarioLocal(t *testing.T) {
	// 2025-01-20 20:00 UTC ya es 2025-01-21 en Tokio.
	now := time.Date(2025, 1, 20, 20, 0, 0, 0, time.UTC)
	it := &entity.InventoryItem{Name: "もやし", CurrentStock: d("10"), ExpiryDate: dateOnly("2025-01-28")}

	assert.Empty(t, inventory.Evaluate(it, now, 7, time.UTC))
	assert.Len(t, inventory.Evaluate(it, now, 7, tokyo), 1)
}

func TestPlan(t *testing.T) {
	low := inventory.Condition{Type: entity.AlertTypeLowStock, Level: entity.AlertLevelWarning}
	exp := inventory.Condition{Type: entity.AlertTypeExpiryWarning, Level: entity.AlertLevelUrgent}
	openLow := &entity.Alert{ID: "a1", Type: entity.AlertTypeLowStock}

	create, resolve := inventory.Plan([]inventory.Condition{low}, nil)
	assert.Equal(t, []inventory.Condition{low}, create)
	assert.Empty(t, resolve)

	create, resolve = inventory.Plan([]inventory.Condition{low}, []*entity.Alert{openLow})
	assert.Empty(t, create, "idempotente: ya existe la alerta abierta")
	assert.Empty(t, resolve)

	create, resolve = inventory.Plan(nil, []*entity.Alert{openLow})
	assert.Empty(t, create)
	assert.Equal(t, []*entity.Alert{openLow}, resolve)

	create, resolve = inventory.Plan([]inventory.Condition{low, exp}, []*entity.Alert{openLow})
	assert.Equal(t, []inventory.Condition{exp}, create)
	assert.Empty(t, resolve)
}

func TestPlan_DuplicadoAbiertoSeResuelve(t *testing.T) {
	low := inventory.Condition{Type: entity.AlertTypeLowStock}
	a1 := &entity.Alert{ID: "a1", Type: entity.AlertTypeLowStock}
	a2 := &entity.Alert{ID: "a2", Type: entity.AlertTypeLowStock}

	create, resolve := inventory.Plan([]inventory.Condition{low}, []*entity.Alert{a1, a2})
	assert.Empty(t, create)
	assert.Equal(t, []*entity.Alert{a2}, resolve)
}

func TestAlertResolve_Monotono(t *testing.T) {
	a := &entity.Alert{Type: entity.AlertTypeLowStock}
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, a.Resolve(first, "admin"))
	assert.False(t, a.Resolve(first.Add(time.Hour), "otro"))
	assert.Equal(t, first, *a.ResolvedAt)
	assert.Equal(t, "admin", a.ResolvedBy)
}
