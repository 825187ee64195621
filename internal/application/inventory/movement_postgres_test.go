package inventory_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
)

const pgItemID = "0190a0f2-0000-7000-8000-000000000001"

func lockedItemRows(stock string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "name", "category", "supplier_id", "unit", "current_stock", "reorder_point", "optimal_stock",
		"unit_cost", "expiry_date", "storage_location", "notes", "created_at", "updated_at",
	}).AddRow(pgItemID, "カルビ", "肉類", nil, "kg", d(stock), d("2"), d("6"), d("1000"), nil, "冷蔵庫", "", t0, t0)
}

// En Postgres el movimiento toma el lock de la fila antes de escribir libro y proyección,
// todo dentro de la misma transacción.
func TestRecordInTx_Postgres_BloqueaAntesDeEscribir(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBeginTx(pgx.TxOptions{})
	mock.ExpectQuery("FROM inventory_items WHERE id = \\$1 FOR UPDATE").
		WithArgs(pgItemID).
		WillReturnRows(lockedItemRows("10"))
	mock.ExpectExec("INSERT INTO inventory_movements").
		WithArgs(pgxmock.AnyArg(), pgItemID, entity.MovementTypeOutbound, "", pgxmock.AnyArg(), pgxmock.AnyArg(),
			"", "", "", "admin-1", t0, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("UPDATE inventory_items SET current_stock").
		WithArgs(pgItemID, pgxmock.AnyArg(), pgxmock.AnyArg(), t0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	var mov *entity.Movement
	err = postgres.NewTxRunner(mock).Run(context.Background(), func(r repository.Repositories) error {
		var err error
		_, mov, err = appinv.RecordInTx(context.Background(), r, appinv.MovementInput{
			ItemID: pgItemID, Type: entity.MovementTypeOutbound, Quantity: d("3"), Actor: "admin-1",
		}, t0)
		return err
	})
	require.NoError(t, err)
	assert.True(t, mov.BalanceAfter.Equal(d("7")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordInTx_Postgres_StockInsuficienteNoEscribe(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBeginTx(pgx.TxOptions{})
	mock.ExpectQuery("FROM inventory_items WHERE id = \\$1 FOR UPDATE").
		WithArgs(pgItemID).
		WillReturnRows(lockedItemRows("2"))
	mock.ExpectRollback()

	err = postgres.NewTxRunner(mock).Run(context.Background(), func(r repository.Repositories) error {
		_, _, err := appinv.RecordInTx(context.Background(), r, appinv.MovementInput{
			ItemID: pgItemID, Type: entity.MovementTypeOutbound, Quantity: d("3"),
		}, t0)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}
