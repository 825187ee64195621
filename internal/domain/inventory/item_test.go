package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

func TestValidateItem(t *testing.T) {
	ok := func() *entity.InventoryItem {
		return &entity.InventoryItem{Name: " カルビ ", ReorderPoint: d("3"), OptimalStock: d("10"), UnitCost: d("3800")}
	}

	it := ok()
	require.NoError(t, inventory.ValidateItem(it))
	assert.Equal(t, "カルビ", it.Name)
	assert.Equal(t, inventory.DefaultUnit, it.Unit)

	it = ok()
	it.Name = "  "
	assert.ErrorIs(t, inventory.ValidateItem(it), domain.ErrInvalidInput)

	it = ok()
	it.ReorderPoint = d("-1")
	it.OptimalStock = d("0")
	assert.ErrorIs(t, inventory.ValidateItem(it), domain.ErrInvalidInput)

	it = ok()
	it.OptimalStock = d("2.99")
	assert.ErrorIs(t, inventory.ValidateItem(it), domain.ErrInvalidInput)

	it = ok()
	it.OptimalStock = d("3")
	assert.NoError(t, inventory.ValidateItem(it), "optimal == reorder es válido")

	it = ok()
	it.UnitCost = d("-0.01")
	assert.ErrorIs(t, inventory.ValidateItem(it), domain.ErrInvalidInput)
}
