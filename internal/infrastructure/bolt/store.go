package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

var (
	bucketItems          = []byte("items")
	bucketMovements      = []byte("movements")       // itemID \x00 movementID
	bucketAlerts         = []byte("alerts")          // alertID
	bucketAlertsByItem   = []byte("alerts_by_item")  // itemID \x00 alertID
	bucketSuppliers      = []byte("suppliers")       // supplierID
	bucketAdministrators = []byte("administrators")  // adminID
	bucketAdminsByName   = []byte("admins_by_name")  // username -> adminID
	bucketPurchaseOrders = []byte("purchase_orders") // poID (cabecera + líneas)
	bucketPOItemRefs     = []byte("po_item_refs")    // inventoryItemID \x00 poID
)

var allBuckets = [][]byte{
	bucketItems, bucketMovements, bucketAlerts, bucketAlertsByItem, bucketSuppliers,
	bucketAdministrators, bucketAdminsByName, bucketPurchaseOrders, bucketPOItemRefs,
}

// Store almacenamiento embebido en un único archivo bbolt. bbolt admite un solo
// escritor a la vez, así que cada Run es serializable frente a los demás.
type Store struct {
	db *bbolt.DB
}

// Open abre (o crea) el archivo y sus buckets.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de bolt: %w", err)
		}
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{
		Timeout:      time.Second,
		FreelistType: bbolt.FreelistMapType,
	})
	if err != nil {
		return nil, fmt.Errorf("abrir bolt: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("crear bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close cierra el archivo.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping comprueba que el archivo siga abierto.
func (s *Store) Ping(ctx context.Context) error {
	return s.View(ctx, func(repository.Repositories) error { return nil })
}

// Run ejecuta fn en una transacción de escritura; Commit si fn devuelve nil.
func (s *Store) Run(ctx context.Context, fn func(repository.Repositories) error) error {
	return s.run(ctx, true, fn)
}

// View ejecuta fn en una transacción de solo lectura.
func (s *Store) View(ctx context.Context, fn func(repository.Repositories) error) error {
	return s.run(ctx, false, fn)
}

func (s *Store) run(ctx context.Context, writable bool, fn func(repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var fnErr error
	body := func(tx *bbolt.Tx) error {
		fnErr = fn(newRepositories(tx))
		return fnErr
	}
	var err error
	if writable {
		err = s.db.Update(body)
	} else {
		err = s.db.View(body)
	}
	if err != nil && fnErr == nil {
		return domain.Storage("bolt transaction", err)
	}
	return err
}

func newRepositories(tx *bbolt.Tx) repository.Repositories {
	return repository.Repositories{
		Items:          &itemRepo{tx: tx},
		Movements:      &movementRepo{tx: tx},
		Alerts:         &alertRepo{tx: tx},
		Suppliers:      &supplierRepo{tx: tx},
		Administrators: &administratorRepo{tx: tx},
		PurchaseOrders: &purchaseOrderRepo{tx: tx},
	}
}
