package repository

import "context"

// Repositories agrupa los repositorios atados a una misma transacción.
type Repositories struct {
	Items          InventoryItemRepository
	Movements      MovementRepository
	Alerts         AlertRepository
	Suppliers      SupplierRepository
	Administrators AdministratorRepository
	PurchaseOrders PurchaseOrderRepository
}

// TxRunner ejecuta una función dentro de una transacción del almacenamiento, pasando
// repositorios atados a esa tx. Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	// Run abre una transacción de escritura.
	Run(ctx context.Context, fn func(r Repositories) error) error
	// View abre una transacción de solo lectura (snapshot consistente).
	View(ctx context.Context, fn func(r Repositories) error) error
}
