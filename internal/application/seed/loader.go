// Package seed carga los datos iniciales del restaurante. Cada sección se salta si
// ya tiene datos, así que Load puede ejecutarse en cada arranque.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	appinv "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// AlertSweeper evalúa las alertas de todos los ítems.
type AlertSweeper interface {
	Sweep(ctx context.Context) (appinv.SweepReport, error)
}

// Config administrador por defecto.
type Config struct {
	AdminUsername string
	AdminPassword string
	AdminEmail    string
	BcryptCost    int // 0 = bcrypt.DefaultCost
}

// Report qué secciones se poblaron en esta ejecución.
type Report struct {
	AdminCreated   bool
	Suppliers      int
	PurchaseOrders int
	Items          int
	Alerts         appinv.SweepReport
}

// Loader inicializador idempotente.
type Loader struct {
	tx     repository.TxRunner
	alerts AlertSweeper
	cfg    Config
	log    zerolog.Logger
	now    func() time.Time
}

// NewLoader construye el cargador. now nil = time.Now.
func NewLoader(tx repository.TxRunner, alerts AlertSweeper, cfg Config, log zerolog.Logger, now func() time.Time) *Loader {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if now == nil {
		now = time.Now
	}
	return &Loader{tx: tx, alerts: alerts, cfg: cfg, log: log.With().Str("component", "seed").Logger(), now: now}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Load puebla, en orden, administrador, proveedores, órdenes de compra e inventario.
// Los ítems se crean con su movimiento initial en una sola transacción y después se
// hace una única pasada de alertas sobre todos los ítems.
func (l *Loader) Load(ctx context.Context) (Report, error) {
	var rep Report
	var err error

	if rep.AdminCreated, err = l.loadAdmin(ctx); err != nil {
		return rep, fmt.Errorf("seed administrador: %w", err)
	}
	if rep.Suppliers, err = l.loadSuppliers(ctx); err != nil {
		return rep, fmt.Errorf("seed proveedores: %w", err)
	}
	if rep.PurchaseOrders, err = l.loadPurchaseOrders(ctx); err != nil {
		return rep, fmt.Errorf("seed órdenes de compra: %w", err)
	}
	if rep.Items, err = l.loadInventory(ctx); err != nil {
		return rep, fmt.Errorf("seed inventario: %w", err)
	}
	if rep.Items > 0 {
		if rep.Alerts, err = l.alerts.Sweep(ctx); err != nil {
			return rep, fmt.Errorf("seed alertas: %w", err)
		}
	}
	l.log.Info().
		Bool("admin", rep.AdminCreated).
		Int("suppliers", rep.Suppliers).
		Int("purchase_orders", rep.PurchaseOrders).
		Int("items", rep.Items).
		Int("alerts", rep.Alerts.Created).
		Msg("seed completado")
	return rep, nil
}

func (l *Loader) loadAdmin(ctx context.Context) (bool, error) {
	if l.cfg.AdminUsername == "" || l.cfg.AdminPassword == "" {
		return false, domain.Invalid("usuario y password del administrador son obligatorios")
	}
	created := false
	err := l.tx.Run(ctx, func(r repository.Repositories) error {
		_, err := r.Administrators.GetByUsername(ctx, l.cfg.AdminUsername)
		if err == nil {
			return nil
		}
		if !isNotFound(err) {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(l.cfg.AdminPassword), l.cfg.BcryptCost)
		if err != nil {
			return err
		}
		now := l.now()
		created = true
		return r.Administrators.Create(ctx, &entity.Administrator{
			ID:           newID(),
			Username:     l.cfg.AdminUsername,
			PasswordHash: string(hash),
			Email:        l.cfg.AdminEmail,
			Role:         "admin",
			Permissions:  "all",
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	})
	return created, err
}

func (l *Loader) loadSuppliers(ctx context.Context) (int, error) {
	n := 0
	err := l.tx.Run(ctx, func(r repository.Repositories) error {
		count, err := r.Suppliers.Count(ctx)
		if err != nil || count > 0 {
			return err
		}
		now := l.now()
		for _, s := range defaultSuppliers {
			err := r.Suppliers.Create(ctx, &entity.Supplier{
				ID:            newID(),
				SupplierType:  s.Type,
				Name:          s.Name,
				PostalCode:    s.PostalCode,
				Address:       s.Address,
				Phone:         s.Phone,
				Email:         s.Email,
				PaymentTerms:  s.PaymentTerms,
				BankName:      s.BankName,
				BranchName:    s.BranchName,
				AccountType:   s.AccountType,
				AccountNumber: s.AccountNumber,
				AccountHolder: s.AccountHolder,
				Notes:         s.Notes,
				CreatedAt:     now,
				UpdatedAt:     now,
			})
			if err != nil {
				return err
			}
		}
		n = len(defaultSuppliers)
		return nil
	})
	return n, err
}

// loadPurchaseOrders requiere proveedores y administrador; si falta alguno no crea nada.
func (l *Loader) loadPurchaseOrders(ctx context.Context) (int, error) {
	n := 0
	err := l.tx.Run(ctx, func(r repository.Repositories) error {
		count, err := r.PurchaseOrders.Count(ctx)
		if err != nil || count > 0 {
			return err
		}
		admin, err := r.Administrators.GetByUsername(ctx, l.cfg.AdminUsername)
		if isNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}

		now := l.now()
		orders := make([]*entity.PurchaseOrder, 0, len(defaultOrders))
		for _, o := range defaultOrders {
			sup, err := r.Suppliers.GetByName(ctx, o.Supplier)
			if isNotFound(err) {
				l.log.Warn().Str("supplier", o.Supplier).Msg("proveedor no encontrado, órdenes omitidas")
				return nil
			}
			if err != nil {
				return err
			}
			po, err := buildOrder(o, sup.ID, admin.ID, now)
			if err != nil {
				return err
			}
			orders = append(orders, po)
		}
		for _, po := range orders {
			if err := r.PurchaseOrders.Create(ctx, po); err != nil {
				return err
			}
		}
		n = len(orders)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func buildOrder(o orderSeed, supplierID, adminID string, now time.Time) (*entity.PurchaseOrder, error) {
	orderDate, err := time.Parse(time.DateOnly, o.OrderDate)
	if err != nil {
		return nil, err
	}
	expected, err := time.Parse(time.DateOnly, o.ExpectedDate)
	if err != nil {
		return nil, err
	}
	po := &entity.PurchaseOrder{
		ID:                   newID(),
		OrderNumber:          o.Number,
		SupplierID:           supplierID,
		OrderDate:            orderDate,
		ExpectedDeliveryDate: &expected,
		Status:               o.Status,
		CreatedBy:            adminID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if o.Status == entity.PurchaseOrderDelivered {
		delivered := expected
		po.ActualDeliveryDate = &delivered
	}
	for _, line := range o.Lines {
		po.Items = append(po.Items, entity.PurchaseOrderItem{
			ID:              newID(),
			PurchaseOrderID: po.ID,
			ItemName:        line.Name,
			Description:     line.Description,
			Quantity:        decimal.NewFromInt(line.Quantity),
			UnitPrice:       decimal.NewFromInt(line.UnitPrice),
			TaxRate:         inventory.DefaultTaxRate,
		})
	}
	po.Subtotal, po.TaxAmount, po.TotalAmount, err = inventory.PurchaseTotals(po.Items)
	if err != nil {
		return nil, err
	}
	return po, nil
}

func (l *Loader) loadInventory(ctx context.Context) (int, error) {
	n := 0
	err := l.tx.Run(ctx, func(r repository.Repositories) error {
		count, err := r.Items.Count(ctx)
		if err != nil || count > 0 {
			return err
		}
		suppliers, err := suppliersByName(ctx, r)
		if err != nil {
			return err
		}
		actor := ""
		if admin, err := r.Administrators.GetByUsername(ctx, l.cfg.AdminUsername); err == nil {
			actor = admin.ID
		} else if !isNotFound(err) {
			return err
		}

		now := l.now()
		for _, s := range defaultItems {
			item, err := buildItem(s, suppliers, now)
			if err != nil {
				return err
			}
			if err := inventory.ValidateItem(item); err != nil {
				return err
			}
			if err := r.Items.Create(ctx, item); err != nil {
				return err
			}
			cost := item.UnitCost
			_, _, err = appinv.RecordInTx(ctx, r, appinv.MovementInput{
				ItemID:        item.ID,
				Type:          entity.MovementTypeInitial,
				Quantity:      decimal.RequireFromString(s.Stock),
				UnitCost:      &cost,
				ReferenceType: entity.ReferenceInitialSetup,
				Notes:         "初期在庫登録",
				Actor:         actor,
			}, now)
			if err != nil {
				return fmt.Errorf("%s: %w", s.Name, err)
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func buildItem(s itemSeed, suppliers map[string]*entity.Supplier, now time.Time) (*entity.InventoryItem, error) {
	item := &entity.InventoryItem{
		ID:              newID(),
		Name:            s.Name,
		Category:        s.Category,
		Unit:            s.Unit,
		CurrentStock:    decimal.Zero,
		ReorderPoint:    decimal.RequireFromString(s.Reorder),
		OptimalStock:    decimal.RequireFromString(s.Optimal),
		UnitCost:        decimal.RequireFromString(s.Cost),
		StorageLocation: s.Location,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if sup, ok := suppliers[s.Supplier]; ok {
		item.SupplierID = sup.ID
	}
	if s.Expiry != "" {
		exp, err := time.Parse(time.DateOnly, s.Expiry)
		if err != nil {
			return nil, err
		}
		item.ExpiryDate = &exp
	}
	return item, nil
}

func suppliersByName(ctx context.Context, r repository.Repositories) (map[string]*entity.Supplier, error) {
	list, err := r.Suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*entity.Supplier, len(list))
	for _, s := range list {
		out[s.Name] = s
	}
	return out, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
