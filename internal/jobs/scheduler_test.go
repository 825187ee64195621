package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/jobs"
	"github.com/jhoicas/inventario-ledger/internal/testsupport"
)

type MockSweeper struct {
	mock.Mock
	calls chan struct{}
}

func newMockSweeper() *MockSweeper {
	return &MockSweeper{calls: make(chan struct{}, 16)}
}

func (m *MockSweeper) Sweep(ctx context.Context) (appinv.SweepReport, error) {
	args := m.Called(ctx)
	select {
	case m.calls <- struct{}{}:
	default:
	}
	return args.Get(0).(appinv.SweepReport), args.Error(1)
}

func waitCall(t *testing.T, m *MockSweeper) {
	t.Helper()
	select {
	case <-m.calls:
	case <-time.After(3 * time.Second):
		t.Fatal("el barrido no se ejecutó")
	}
}

func TestScheduler_RunNow(t *testing.T) {
	m := newMockSweeper()
	m.On("Sweep", mock.Anything).Return(appinv.SweepReport{Items: 3, Created: 1}, nil)

	s, err := jobs.NewScheduler(m, time.Hour, zerolog.Nop())
	require.NoError(t, err)
	require.True(t, s.Enabled())
	s.Start()
	t.Cleanup(func() { _ = s.Stop() })

	assert.Nil(t, s.LastReport())
	require.NoError(t, s.RunNow())
	waitCall(t, m)

	assert.Eventually(t, func() bool { return s.LastReport() != nil }, time.Second, 10*time.Millisecond)
	rep := s.LastReport()
	assert.Equal(t, 3, rep.Items)
	assert.Equal(t, 1, rep.Created)
	m.AssertExpectations(t)
}

func TestScheduler_Intervalo(t *testing.T) {
	m := newMockSweeper()
	m.On("Sweep", mock.Anything).Return(appinv.SweepReport{}, nil)

	s, err := jobs.NewScheduler(m, 50*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	s.Start()
	t.Cleanup(func() { _ = s.Stop() })

	waitCall(t, m)
	waitCall(t, m)
}

func TestScheduler_ErrorNoActualizaInforme(t *testing.T) {
	m := newMockSweeper()
	m.On("Sweep", mock.Anything).Return(appinv.SweepReport{}, errors.New("db caída"))

	s, err := jobs.NewScheduler(m, time.Hour, zerolog.Nop())
	require.NoError(t, err)
	s.Start()
	t.Cleanup(func() { _ = s.Stop() })

	require.NoError(t, s.RunNow())
	waitCall(t, m)
	time.Sleep(20 * time.Millisecond)
	assert.Nil(t, s.LastReport())
}

func TestScheduler_Deshabilitado(t *testing.T) {
	m := newMockSweeper()
	s, err := jobs.NewScheduler(m, 0, zerolog.Nop())
	require.NoError(t, err)
	s.Start()

	assert.False(t, s.Enabled())
	assert.ErrorIs(t, s.RunNow(), jobs.ErrSweepDisabled)
	require.NoError(t, s.Stop())
	m.AssertNotCalled(t, "Sweep", mock.Anything)
}

// Con el servicio real: el barrido crea la alerta de vencimiento cuando el ítem entra en la ventana.
func TestScheduler_BarridoReal(t *testing.T) {
	clock := testsupport.NewClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	svc := appinv.NewService(testsupport.NewBoltStore(t), zerolog.Nop(), appinv.Options{Now: clock.Now})
	ctx := context.Background()

	expiry := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	it, err := svc.CreateItem(ctx, appinv.ItemInput{
		Name: "生ガキ", Category: "魚介類", Unit: "個",
		InitialStock: decimal.NewFromInt(40), ReorderPoint: decimal.NewFromInt(10), OptimalStock: decimal.NewFromInt(60),
		UnitCost: decimal.NewFromInt(200), ExpiryDate: &expiry,
	})
	require.NoError(t, err)

	s, err := jobs.NewScheduler(svc.Alerts(), time.Hour, zerolog.Nop())
	require.NoError(t, err)
	s.Start()
	t.Cleanup(func() { _ = s.Stop() })

	clock.Advance(15 * 24 * time.Hour)
	require.NoError(t, s.RunNow())
	require.Eventually(t, func() bool { return s.LastReport() != nil }, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, s.LastReport().Created)

	open, err := svc.Alerts().ListAlerts(ctx, entity.AlertFilter{ItemID: it.ID, OpenOnly: true})
	require.NoError(t, err)
	require.Len(t, open, 1)
}
