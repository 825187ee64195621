package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	appinv "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/testsupport"
)

var (
	tokyo, _ = time.LoadLocation("Asia/Tokyo")
	t0       = time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC) // 18:00 en Tokio
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func dp(v string) *decimal.Decimal {
	x := d(v)
	return &x
}

type fixture struct {
	ctx   context.Context
	store repository.TxRunner
	clock *testsupport.Clock
	svc   *appinv.Service
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWith(t, testsupport.NewBoltStore(t), 0)
}

func newFixtureWith(t *testing.T, store repository.TxRunner, pageSize int) *fixture {
	t.Helper()
	clock := testsupport.NewClock(t0)
	svc := appinv.NewService(store, zerolog.Nop(), appinv.Options{
		Location: tokyo,
		PageSize: pageSize,
		Now:      clock.Now,
	})
	return &fixture{ctx: context.Background(), store: store, clock: clock, svc: svc}
}

func (f *fixture) item(t *testing.T, name, stock, reorder string) *entity.InventoryItem {
	t.Helper()
	it, err := f.svc.CreateItem(f.ctx, appinv.ItemInput{
		Name:         name,
		Category:     "肉類",
		Unit:         "kg",
		ReorderPoint: d(reorder),
		OptimalStock: d(reorder).Mul(d("3")),
		UnitCost:     d("1000"),
		InitialStock: d(stock),
	})
	require.NoError(t, err)
	return it
}

func (f *fixture) openAlerts(t *testing.T, itemID string) []*entity.Alert {
	t.Helper()
	alerts, err := f.svc.Alerts().ListAlerts(f.ctx, entity.AlertFilter{ItemID: itemID, OpenOnly: true})
	require.NoError(t, err)
	return alerts
}

func TestCreateItem_ConStockInicial(t *testing.T) {
	f := newFixture(t)
	it := f.item(t, "カルビ", "12.5", "5")

	assert.True(t, it.CurrentStock.Equal(d("12.5")))

	var movs []*entity.Movement
	for m, err := range f.svc.History(f.ctx, it.ID, nil) {
		require.NoError(t, err)
		movs = append(movs, m)
	}
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeInitial, movs[0].Type)
	assert.Equal(t, entity.ReferenceInitialSetup, movs[0].ReferenceType)
	assert.True(t, movs[0].BalanceAfter.Equal(d("12.5")))
	assert.Empty(t, f.openAlerts(t, it.ID))
}

func TestCreateItem_SinStockNoRegistraMovimientoYAlerta(t *testing.T) {
	f := newFixture(t)
	it := f.item(t, "ハラミ", "0", "2")

	report, err := f.svc.Reconcile(f.ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, report.MovementCount)
	assert.True(t, report.InSync())

	open := f.openAlerts(t, it.ID)
	require.Len(t, open, 1)
	assert.Equal(t, entity.AlertTypeLowStock, open[0].Type)
}

func TestCreateItem_Validacion(t *testing.T) {
	f := newFixture(t)
	cases := map[string]appinv.ItemInput{
		"sin nombre":        {Name: "  "},
		"reorder negativo":  {Name: "x", ReorderPoint: d("-1")},
		"optimal < reorder": {Name: "x", ReorderPoint: d("5"), OptimalStock: d("4")},
		"stock negativo":    {Name: "x", InitialStock: d("-1")},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.CreateItem(f.ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestGetItem_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetItem(f.ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// A: stock 4, reorder 2, salida 3 -> saldo 1 -> una alerta low_stock warning.
// B: entrada 5 -> saldo 6 -> se resuelve la alerta, no se crea otra.
func TestScenarioAB_AlertaBajoStockYResolucion(t *testing.T) {
	f := newFixture(t)
	it := f.item(t, "牛タン", "4", "2")
	assert.Empty(t, f.openAlerts(t, it.ID))

	res, err := f.svc.ApplyMovement(f.ctx, appinv.MovementInput{
		ItemID: it.ID, Type: entity.MovementTypeOutbound, Quantity: d("3"), Actor: "admin-1",
	})
	require.NoError(t, err)
	require.NoError(t, res.AlertErr)
	assert.True(t, res.Balance().Equal(d("1")))

	open := f.openAlerts(t, it.ID)
	require.Len(t, open, 1)
	assert.Equal(t, entity.AlertTypeLowStock, open[0].Type)
	assert.Equal(t, entity.AlertLevelWarning, open[0].Level)
	assert.Contains(t, open[0].Message, "牛タン")
	lowID := open[0].ID

	f.clock.Advance(time.Hour)
	res, err = f.svc.ApplyMovement(f.ctx, appinv.MovementInput{
		ItemID: it.ID, Type: entity.MovementTypeInbound, Quantity: d("5"), Actor: "admin-2",
	})
	require.NoError(t, err)
	assert.True(t, res.Balance().Equal(d("6")))
	assert.Empty(t, f.openAlerts(t, it.ID))

	all, err := f.svc.Alerts().ListAlerts(f.ctx, entity.AlertFilter{ItemID: it.ID})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, lowID, all[0].ID)
	assert.True(t, all[0].IsResolved)
	assert.Equal(t, "admin-2", all[0].ResolvedBy)
	require.NotNil(t, all[0].ResolvedAt)
	assert.True(t, all[0].ResolvedAt.Equal(t0.Add(time.Hour)))
}

// C: vencimiento a hoy+3 genera expiry_warning; a hoy+10 no.
func TestScenarioC_Vencimiento(t *testing.T) {
	f := newFixture(t)
	soon := time.Date(2025, 1, 23, 0, 0, 0, 0, time.UTC)
	later := time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC)

	a, err := f.svc.CreateItem(f.ctx, appinv.ItemInput{Name: "生ホルモン", InitialStock: d("10"), ExpiryDate: &soon})
	require.NoError(t, err)
	b, err := f.svc.CreateItem(f.ctx, appinv.ItemInput{Name: "冷凍エビ", InitialStock: d("10"), ExpiryDate: &later})
	require.NoError(t, err)

	open := f.openAlerts(t, a.ID)
	require.Len(t, open, 1)
	assert.Equal(t, entity.AlertTypeExpiryWarning, open[0].Type)
	assert.Equal(t, entity.AlertLevelUrgent, open[0].Level)
	assert.Contains(t, open[0].Message, "2025-01-23")

	assert.Empty(t, f.openAlerts(t, b.ID))
}

// D: salida 10 contra stock 4 falla; stock sigue en 4 y no hay movimiento nuevo.
func TestScenarioD_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	it := f.item(t, "サーロイン", "4", "1")

	_, err := f.svc.ApplyMovement(f.ctx, appinv.MovementInput{
		ItemID: it.ID, Type: entity.MovementTypeOutbound, Quantity: d("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := f.svc.GetItem(f.ctx, it.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.Equal(d("4")))

	report, err := f.svc.Reconcile(f.ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.MovementCount)
	assert.True(t, report.InSync())
}

func TestApplyMovement_LimiteExactoYEpsilon(t *testing.T) {
	f := newFixture(t)
	it := f.item(t, "イカ", "2.5", "0")

	_, err := f.svc.ApplyMovement(f.ctx, appinv.MovementInput{
		ItemID: it.ID, Type: entity.MovementTypeWaste, Quantity: d("2.5000000001"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	res, err := f.svc.ApplyMovement(f.ctx, appinv.MovementInput{
		ItemID: it.ID, Type: entity.MovementTypeWaste, Quantity: d("2.5"),
	})
	require.NoError(t, err)
	assert.True(t, res.Balance().IsZero())
}

func TestApplyMovement_Validacion(t *testing.T) {
	f := newFixture(t)
	it := f.item(t, "ネギ", "3", "1")

	cases := map[string]appinv.MovementInput{
		"cantidad cero":      {ItemID: it.ID, Type: entity.MovementTypeInbound, Quantity: d("0")},
		"cantidad negativa":  {ItemID: it.ID, Type: entity.MovementTypeOutbound, Quantity: d("-1")},
		"tipo desconocido":   {ItemID: it.ID, Type: "transfer", Quantity: d("1")},
		"ajuste sin sentido": {ItemID: it.ID, Type: entity.MovementTypeAdjustment, Quantity: d("1")},
		"costo negativo":     {ItemID: it.ID, Type: entity.MovementTypeInbound, Quantity: d("1"), UnitCost: dp("-5")},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.ApplyMovement(f.ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := f.svc.ApplyMovement(f.ctx, appinv.MovementInput{ItemID: "nope", Type: entity.MovementTypeInbound, Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyMovement_AjustesYCostoPromedio(t *testing.T) {
	f := newFixture(t)
	it := f.item(t, "和牛", "10", "1") // costo 1000

	res, err := f.svc.ApplyMovement(f.ctx, appinv.MovementInput{
		ItemID: it.ID, Type: entity.MovementTypeInbound, Quantity: d("10"), UnitCost: dp("2000"),
	})
	require.NoError(t, err)
	assert.True(t, res.Item.UnitCost.Equal(d("1500")), res.Item.UnitCost.String())

	res, err = f.svc.ApplyMovement(f.ctx, appinv.MovementInput{
		ItemID: it.ID, Type: entity.MovementTypeAdjustment, Direction: entity.DirectionDecrease, Quantity: d("0.75"),
	})
	require.NoError(t, err)
	assert.True(t, res.Balance().Equal(d("19.25")))
	assert.True(t, res.Item.UnitCost.Equal(d("1500")))

	res, err = f.svc.ApplyMovement(f.ctx, appinv.MovementInput{
		ItemID: it.ID, Type: entity.MovementTypeAdjustment, Direction: entity.DirectionIncrease, Quantity: d("0.25"),
	})
	require.NoError(t, err)
	assert.True(t, res.Balance().Equal(d("19.5")))

	got, err := f.svc.GetItem(f.ctx, it.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.Equal(d("19.5")))
	assert.True(t, got.UnitCost.Equal(d("1500")))
}

func TestReconcileAlerts_Idempotente(t *testing.T) {
	f := newFixture(t)
	soon := time.Date(2025, 1, 21, 0, 0, 0, 0, time.UTC)
	it, err := f.svc.CreateItem(f.ctx, appinv.ItemInput{Name: "刺身用マグロ", ReorderPoint: d("1"), OptimalStock: d("1"), ExpiryDate: &soon})
	require.NoError(t, err)
	require.Len(t, f.openAlerts(t, it.ID), 2)

	for range 3 {
		out, err := f.svc.Alerts().Reconcile(f.ctx, it.ID, "")
		require.NoError(t, err)
		assert.False(t, out.Changed())
	}
	assert.Len(t, f.openAlerts(t, it.ID), 2)
}

func TestUpdateItem_UmbralDisparaAlertaSinTocarStock(t *testing.T) {
	f := newFixture(t)
	it := f.item(t, "レバー", "3", "1")
	assert.Empty(t, f.openAlerts(t, it.ID))

	reorder, optimal, name := d("5"), d("10"), "上レバー"
	got, err := f.svc.UpdateItem(f.ctx, it.ID, appinv.ItemPatch{ReorderPoint: &reorder, OptimalStock: &optimal, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "上レバー", got.Name)
	assert.True(t, got.CurrentStock.Equal(d("3")))

	open := f.openAlerts(t, it.ID)
	require.Len(t, open, 1)
	assert.Equal(t, entity.AlertTypeLowStock, open[0].Type)

	bad := d("20")
	_, err = f.svc.UpdateItem(f.ctx, it.ID, appinv.ItemPatch{ReorderPoint: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.UpdateItem(f.ctx, "nope", appinv.ItemPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveAlert(t *testing.T) {
	f := newFixture(t)
	it := f.item(t, "ミノ", "0", "1")
	open := f.openAlerts(t, it.ID)
	require.Len(t, open, 1)

	a, err := f.svc.Alerts().ResolveAlert(f.ctx, open[0].ID, "admin-1")
	require.NoError(t, err)
	assert.True(t, a.IsResolved)
	assert.Equal(t, "admin-1", a.ResolvedBy)

	_, err = f.svc.Alerts().ResolveAlert(f.ctx, open[0].ID, "admin-1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.svc.Alerts().ResolveAlert(f.ctx, "nope", "admin-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// La condición sigue vigente: la siguiente reconciliación vuelve a abrirla.
	out, err := f.svc.Alerts().Reconcile(f.ctx, it.ID, "")
	require.NoError(t, err)
	assert.Len(t, out.Created, 1)
}

func TestSweep_DetectaVencimientoConElTiempo(t *testing.T) {
	f := newFixture(t)
	expiry := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	it, err := f.svc.CreateItem(f.ctx, appinv.ItemInput{Name: "チーズ", InitialStock: d("5"), ExpiryDate: &expiry})
	require.NoError(t, err)
	assert.Empty(t, f.openAlerts(t, it.ID))

	f.clock.Advance(5 * 24 * time.Hour) // 2025-01-25 en Tokio: 1/25+7 >= 2/1
	rep, err := f.svc.Alerts().Sweep(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Items)
	assert.Equal(t, 1, rep.Created)
	assert.Equal(t, 0, rep.Failed)

	rep, err = f.svc.Alerts().Sweep(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Created)
	assert.Len(t, f.openAlerts(t, it.ID), 1)
}

func TestDeleteItem(t *testing.T) {
	f := newFixture(t)
	it := f.item(t, "ホタテ", "1", "2")
	require.Len(t, f.openAlerts(t, it.ID), 1)

	sup := &entity.Supplier{ID: "0190a0f2-0000-7000-8000-00000000aaaa", Name: "魚河岸", CreatedAt: t0}
	po := &entity.PurchaseOrder{
		ID: "0190a0f2-0000-7000-8000-00000000bbbb", OrderNumber: "PO-100", SupplierID: sup.ID,
		Status: entity.PurchaseOrderOrdered, OrderDate: t0, CreatedAt: t0, UpdatedAt: t0,
		Items: []entity.PurchaseOrderItem{{ID: "0190a0f2-0000-7000-8000-00000000cccc", InventoryItemID: it.ID, Quantity: d("1")}},
	}
	require.NoError(t, f.store.Run(f.ctx, func(r repository.Repositories) error {
		if err := r.Suppliers.Create(f.ctx, sup); err != nil {
			return err
		}
		return r.PurchaseOrders.Create(f.ctx, po)
	}))

	assert.ErrorIs(t, f.svc.DeleteItem(f.ctx, it.ID), domain.ErrConflict)

	require.NoError(t, f.store.Run(f.ctx, func(r repository.Repositories) error {
		return r.PurchaseOrders.SoftDelete(f.ctx, po.ID, t0)
	}))
	require.NoError(t, f.svc.DeleteItem(f.ctx, it.ID))

	_, err := f.svc.GetItem(f.ctx, it.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	alerts, err := f.svc.Alerts().ListAlerts(f.ctx, entity.AlertFilter{ItemID: it.ID})
	require.NoError(t, err)
	assert.Empty(t, alerts)

	for _, err := range f.svc.History(f.ctx, it.ID, nil) {
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
	assert.ErrorIs(t, f.svc.DeleteItem(f.ctx, it.ID), domain.ErrNotFound)
}

func TestListItems_PaginadoFiltroYReinicio(t *testing.T) {
	f := newFixtureWith(t, testsupport.NewBoltStore(t), 2)
	var ids []string
	for i, name := range []string{"A", "B", "C", "D", "E"} {
		cat := "肉類"
		if i%2 == 0 {
			cat = "野菜"
		}
		it, err := f.svc.CreateItem(f.ctx, appinv.ItemInput{Name: name, Category: cat})
		require.NoError(t, err)
		ids = append(ids, it.ID)
	}

	seq := f.svc.ListItems(f.ctx, entity.ItemFilter{})
	collect := func() []string {
		var out []string
		for it, err := range seq {
			require.NoError(t, err)
			out = append(out, it.ID)
		}
		return out
	}
	assert.Equal(t, ids, collect())
	assert.Equal(t, ids, collect(), "cada range vuelve a consultar")

	var first []string
	for it, err := range seq {
		require.NoError(t, err)
		first = append(first, it.ID)
		if len(first) == 3 {
			break
		}
	}
	assert.Equal(t, ids[:3], first)

	var veg []string
	for it, err := range f.svc.ListItems(f.ctx, entity.ItemFilter{Category: "野菜"}) {
		require.NoError(t, err)
		veg = append(veg, it.Name)
	}
	assert.Equal(t, []string{"A", "C", "E"}, veg)
}

func TestHistory_SinceYPaginado(t *testing.T) {
	f := newFixtureWith(t, testsupport.NewBoltStore(t), 2)
	it := f.item(t, "豚バラ", "10", "1")
	for range 4 {
		f.clock.Advance(time.Hour)
		_, err := f.svc.ApplyMovement(f.ctx, appinv.MovementInput{ItemID: it.ID, Type: entity.MovementTypeOutbound, Quantity: d("1")})
		require.NoError(t, err)
	}

	var all []*entity.Movement
	for m, err := range f.svc.History(f.ctx, it.ID, nil) {
		require.NoError(t, err)
		all = append(all, m)
	}
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].PerformedAt.Before(all[i-1].PerformedAt))
	}
	assert.True(t, all[4].BalanceAfter.Equal(d("6")))

	since := t0.Add(3 * time.Hour)
	n := 0
	for _, err := range f.svc.History(f.ctx, it.ID, &since) {
		require.NoError(t, err)
		n++
	}
	assert.Equal(t, 2, n)
}

func TestReplenishmentYSummary(t *testing.T) {
	f := newFixture(t)
	f.item(t, "カルビ", "1", "4")  // déficit 75%
	f.item(t, "ロース", "2", "4")  // déficit 50%
	f.item(t, "ハラミ", "10", "4") // sin reposición

	sug, err := f.svc.Replenishment(f.ctx, entity.ItemFilter{})
	require.NoError(t, err)
	require.Len(t, sug, 2)
	assert.Equal(t, "カルビ", sug[0].ItemName)
	assert.Equal(t, 1, sug[0].Priority)
	assert.True(t, sug[0].SuggestedOrderQty.Equal(d("11")))
	assert.True(t, sug[0].EstimatedOrderCost.Equal(d("11000")))
	assert.Equal(t, "ロース", sug[1].ItemName)

	sum, err := f.svc.Summary(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.ItemCount)
	assert.Equal(t, 2, sum.LowStockCount)
	assert.Equal(t, 2, sum.OpenAlerts)
	assert.True(t, sum.StockValue.Equal(d("13000")))
	require.Len(t, sum.Categories, 1)
	assert.Equal(t, "肉類", sum.Categories[0].Category)
}

func TestFiltrosYCursores_IDMalFormado(t *testing.T) {
	f := newFixture(t)
	it := f.item(t, "鶏もも", "5", "1")

	_, err := f.svc.ListItemsPage(f.ctx, entity.ItemFilter{}, dto.PageRequest{After: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.ListItemsPage(f.ctx, entity.ItemFilter{SupplierID: "proveedor-1"}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	for _, err := range f.svc.ListItems(f.ctx, entity.ItemFilter{SupplierID: "proveedor-1"}) {
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	_, err = f.svc.HistoryPage(f.ctx, it.ID, nil, dto.PageRequest{After: "xyz"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.Alerts().ListAlerts(f.ctx, entity.AlertFilter{ItemID: "xyz"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	page, err := f.svc.ListItemsPage(f.ctx, entity.ItemFilter{}, dto.PageRequest{After: it.ID})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}
