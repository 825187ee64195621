package report_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/report"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/testsupport"
)

var t0 = time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)

type captureGenerator struct {
	got *report.StockReport
	err error
}

func (g *captureGenerator) GenerateStockReport(_ context.Context, r *report.StockReport) ([]byte, error) {
	g.got = r
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func setup(t *testing.T) (*appinv.Service, context.Context) {
	t.Helper()
	clock := testsupport.NewClock(t0)
	svc := appinv.NewService(testsupport.NewBoltStore(t), zerolog.Nop(), appinv.Options{Now: clock.Now})
	ctx := context.Background()

	for _, in := range []appinv.ItemInput{
		{Name: "カルビ", Category: "肉類", Unit: "kg", InitialStock: decimal.NewFromInt(2), ReorderPoint: decimal.NewFromInt(5), OptimalStock: decimal.NewFromInt(15), UnitCost: decimal.NewFromInt(3000)},
		{Name: "ハラミ", Category: "肉類", Unit: "kg", InitialStock: decimal.NewFromInt(10), ReorderPoint: decimal.NewFromInt(3), OptimalStock: decimal.NewFromInt(12), UnitCost: decimal.NewFromInt(2500)},
		{Name: "キャベツ", Category: "野菜", Unit: "玉", InitialStock: decimal.NewFromInt(1), ReorderPoint: decimal.NewFromInt(4), OptimalStock: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(150)},
	} {
		_, err := svc.CreateItem(ctx, in)
		require.NoError(t, err)
	}
	return svc, ctx
}

func TestDownloadStockReport(t *testing.T) {
	svc, ctx := setup(t)
	gen := &captureGenerator{}
	uc := report.NewUseCase(svc, gen, "なかまる 在庫", nil)

	b, name, err := uc.DownloadStockReport(ctx, entity.ItemFilter{})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(b))
	assert.Equal(t, "inventario_20250120_0900.pdf", name)

	require.NotNil(t, gen.got)
	assert.Equal(t, "なかまる 在庫", gen.got.Title)
	assert.Len(t, gen.got.Items, 3)
	assert.Len(t, gen.got.OpenAlerts, 2)
	assert.Equal(t, 3, gen.got.Summary.ItemCount)
	assert.Equal(t, 2, gen.got.Summary.LowStockCount)
	assert.Equal(t, time.UTC, gen.got.Location)
}

func TestCollect_FiltraAlertasPorCategoria(t *testing.T) {
	svc, ctx := setup(t)
	uc := report.NewUseCase(svc, &captureGenerator{}, "x", nil)

	r, err := uc.Collect(ctx, entity.ItemFilter{Category: "野菜"})
	require.NoError(t, err)
	require.Len(t, r.Items, 1)
	assert.Equal(t, "キャベツ", r.Items[0].Name)
	require.Len(t, r.OpenAlerts, 1)
	assert.Equal(t, r.Items[0].ID, r.OpenAlerts[0].ItemID)
	// el resumen siempre cubre todo el inventario
	assert.Equal(t, 3, r.Summary.ItemCount)
}

func TestDownloadStockReport_ErrorDelGenerador(t *testing.T) {
	svc, ctx := setup(t)
	boom := errors.New("boom")
	uc := report.NewUseCase(svc, &captureGenerator{err: boom}, "x", nil)

	_, _, err := uc.DownloadStockReport(ctx, entity.ItemFilter{})
	assert.ErrorIs(t, err, boom)
	assert.True(t, strings.HasPrefix(err.Error(), "report:"))
}
