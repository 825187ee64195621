package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/report"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

func TestGenerateStockReport(t *testing.T) {
	now := time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)
	expiry := time.Date(2025, 1, 22, 0, 0, 0, 0, time.UTC)
	items := []*entity.InventoryItem{
		{ID: "a", Name: "Kalbi", Category: "Carnes", Unit: "kg", CurrentStock: decimal.NewFromInt(2), ReorderPoint: decimal.NewFromInt(5), ExpiryDate: &expiry},
		{ID: "b", Name: "Repollo", Category: "Verduras", Unit: "u", CurrentStock: decimal.NewFromInt(8), ReorderPoint: decimal.NewFromInt(4)},
	}
	open := []*entity.Alert{
		{ID: "x", ItemID: "a", Type: entity.AlertTypeLowStock, Level: entity.AlertLevelWarning, Message: "stock bajo", CreatedAt: now},
		{ID: "y", ItemID: "a", Type: entity.AlertTypeExpiryWarning, Level: entity.AlertLevelUrgent, Message: "vence en 2 dias", CreatedAt: now},
	}
	r := &report.StockReport{
		Title: "Inventario",
		Summary: &dto.InventorySummaryDTO{
			GeneratedAt: now, ItemCount: 2, LowStockCount: 1, OpenAlerts: 2,
			StockValue: decimal.NewFromInt(1234567),
			Categories: []dto.CategoryValueDTO{{Category: "Carnes", ItemCount: 1, Value: decimal.NewFromInt(1200000)}},
		},
		Items:      items,
		OpenAlerts: open,
	}

	b, err := NewMarotoReportGenerator().GenerateStockReport(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestGenerateStockReport_SinDatos(t *testing.T) {
	_, err := NewMarotoReportGenerator().GenerateStockReport(context.Background(), &report.StockReport{})
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":        "0",
		"999":      "999",
		"25000":    "25,000",
		"1000000":  "1,000,000",
		"-1000000": "-1,000,000",
		"-120":     "-120",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(in), in)
	}
}

func TestWorstLevelByItem(t *testing.T) {
	got := worstLevelByItem([]*entity.Alert{
		{ItemID: "a", Level: entity.AlertLevelUrgent},
		{ItemID: "a", Level: entity.AlertLevelWarning},
		{ItemID: "b", Level: entity.AlertLevelWarning},
	})
	assert.Equal(t, entity.AlertLevelUrgent, got["a"])
	assert.Equal(t, entity.AlertLevelWarning, got["b"])
}
