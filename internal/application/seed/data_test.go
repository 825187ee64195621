package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

func TestBuildOrder_Totales(t *testing.T) {
	want := map[string][3]int64{
		"PO-2025-001": {41400, 4140, 45540},
		"PO-2025-002": {54800, 5480, 60280},
		"PO-2025-003": {15300, 1530, 16830},
		"PO-2025-004": {30600, 3060, 33660},
		"PO-2025-005": {30600, 3060, 33660},
	}
	require.Len(t, defaultOrders, len(want))

	now := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	for _, o := range defaultOrders {
		po, err := buildOrder(o, "sup", "admin", now)
		require.NoError(t, err)
		w := want[o.Number]
		assert.Equal(t, w[0], po.Subtotal.IntPart(), o.Number)
		assert.Equal(t, w[1], po.TaxAmount.IntPart(), o.Number)
		assert.Equal(t, w[2], po.TotalAmount.IntPart(), o.Number)

		if o.Status == entity.PurchaseOrderDelivered {
			require.NotNil(t, po.ActualDeliveryDate)
			assert.Equal(t, o.ExpectedDate, po.ActualDeliveryDate.Format(time.DateOnly))
		} else {
			assert.Nil(t, po.ActualDeliveryDate)
		}
	}
}

func TestBuildItem(t *testing.T) {
	sup := map[string]*entity.Supplier{supplierMeat: {ID: "meat"}}
	now := time.Now()

	it, err := buildItem(defaultItems[1], sup, now)
	require.NoError(t, err)
	assert.Equal(t, "リブロース", it.Name)
	assert.Equal(t, "meat", it.SupplierID)
	assert.True(t, it.CurrentStock.IsZero())
	require.NotNil(t, it.ExpiryDate)
	assert.Equal(t, "2025-01-27", it.ExpiryDate.Format(time.DateOnly))

	sauce, err := buildItem(defaultItems[12], sup, now)
	require.NoError(t, err)
	assert.Nil(t, sauce.ExpiryDate)
	assert.Empty(t, sauce.SupplierID)
	assert.Len(t, defaultItems, 16)
}
