package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db TxBeginner
}

// NewTxRunner construye el runner con el pool (o un mock).
func NewTxRunner(db TxBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// NewRepositories ata todos los repositorios a q (pool o tx).
func NewRepositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Items:          NewInventoryItemRepository(q),
		Movements:      NewMovementRepository(q),
		Alerts:         NewAlertRepository(q),
		Suppliers:      NewSupplierRepository(q),
		Administrators: NewAdministratorRepository(q),
		PurchaseOrders: NewPurchaseOrderRepository(q),
	}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repository.Repositories) error) error {
	return r.run(ctx, pgx.TxOptions{}, fn)
}

// View igual que Run pero en modo solo lectura.
func (r *TxRunner) View(ctx context.Context, fn func(repository.Repositories) error) error {
	return r.run(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (r *TxRunner) run(ctx context.Context, opts pgx.TxOptions, fn func(repository.Repositories) error) error {
	tx, err := r.db.BeginTx(ctx, opts)
	if err != nil {
		return domain.Storage("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Storage("commit transaction", err)
	}
	return nil
}
