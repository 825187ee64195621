package inventory_test

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestValidateMovement(t *testing.T) {
	neg := d("-1")
	cases := []struct {
		name      string
		typ, dir  string
		qty       decimal.Decimal
		unitCost  *decimal.Decimal
		wantValid bool
	}{
		{"inbound ok", entity.MovementTypeInbound, "", d("1"), nil, true},
		{"waste ok", entity.MovementTypeWaste, "", d("0.5"), nil, true},
		{"ajuste sin dirección", entity.MovementTypeAdjustment, "", d("1"), nil, false},
		{"ajuste decrease", entity.MovementTypeAdjustment, entity.DirectionDecrease, d("1"), nil, true},
		{"dirección fuera de ajuste", entity.MovementTypeOutbound, entity.DirectionIncrease, d("1"), nil, false},
		{"cantidad cero", entity.MovementTypeOutbound, "", d("0"), nil, false},
		{"cantidad negativa", entity.MovementTypeInbound, "", d("-3"), nil, false},
		{"tipo desconocido", "transfer", "", d("1"), nil, false},
		{"costo negativo", entity.MovementTypeInbound, "", d("1"), &neg, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := inventory.ValidateMovement(tc.typ, tc.dir, tc.qty, tc.unitCost)
			if tc.wantValid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}

func TestSignedDelta(t *testing.T) {
	q := d("2.5")
	assert.True(t, inventory.SignedDelta(entity.MovementTypeInitial, "", q).Equal(q))
	assert.True(t, inventory.SignedDelta(entity.MovementTypeInbound, "", q).Equal(q))
	assert.True(t, inventory.SignedDelta(entity.MovementTypeAdjustment, entity.DirectionIncrease, q).Equal(q))
	assert.True(t, inventory.SignedDelta(entity.MovementTypeOutbound, "", q).Equal(q.Neg()))
	assert.True(t, inventory.SignedDelta(entity.MovementTypeWaste, "", q).Equal(q.Neg()))
	assert.True(t, inventory.SignedDelta(entity.MovementTypeAdjustment, entity.DirectionDecrease, q).Equal(q.Neg()))
}

func TestApply_LimiteExactoYEpsilon(t *testing.T) {
	got, err := inventory.Apply(d("4"), entity.MovementTypeOutbound, "", d("4"))
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = inventory.Apply(d("4"), entity.MovementTypeWaste, "", d("4.0000000001"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, got.Equal(d("4")), "el stock no cambia al rechazar")

	_, err = inventory.Apply(d("1"), entity.MovementTypeAdjustment, entity.DirectionDecrease, d("2"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestReplay_SecuenciaAleatoria(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	types := []string{entity.MovementTypeInbound, entity.MovementTypeOutbound, entity.MovementTypeWaste, entity.MovementTypeAdjustment}

	stock := decimal.Zero
	var history []*entity.Movement
	for i := 0; i < 500; i++ {
		typ := types[r.IntN(len(types))]
		dir := ""
		if typ == entity.MovementTypeAdjustment {
			dir = entity.DirectionIncrease
			if r.IntN(2) == 0 {
				dir = entity.DirectionDecrease
			}
		}
		qty := decimal.New(int64(r.IntN(1000)+1), -2)
		next, err := inventory.Apply(stock, typ, dir, qty)
		if err != nil {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			continue
		}
		stock = next
		require.False(t, stock.IsNegative())
		history = append(history, &entity.Movement{Type: typ, Direction: dir, Quantity: qty})
	}
	assert.True(t, inventory.Replay(history).Equal(stock))
}

func TestReconciliationReport(t *testing.T) {
	r := inventory.NewReconciliationReport("x", d("5"), d("5.0"), 3)
	assert.True(t, r.InSync())

	r = inventory.NewReconciliationReport("x", d("5"), d("4"), 3)
	assert.False(t, r.InSync())
	assert.True(t, r.Drift.Equal(d("1")))
}

func TestWeightedCost(t *testing.T) {
	// 4 kg a 5800 + 4 kg a 6000 -> 5900
	assert.True(t, inventory.WeightedCost(d("4"), d("5800"), d("4"), d("6000")).Equal(d("5900")))
	// sin stock previo toma el costo de la entrada
	assert.True(t, inventory.WeightedCost(d("0"), d("100"), d("2"), d("300")).Equal(d("300")))
	// cantidad resultante cero conserva el costo
	assert.True(t, inventory.WeightedCost(d("0"), d("100"), d("0"), d("300")).Equal(d("100")))
	// 1 a 1 + 2 a 2 -> 5/3 redondeado a 4 decimales
	assert.True(t, inventory.WeightedCost(d("1"), d("1"), d("2"), d("2")).Equal(d("1.6667")))
}
