package purchasing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	appinv "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// UseCase órdenes de compra: alta con totales, recepción (entradas al libro) y borrado lógico.
type UseCase struct {
	tx     repository.TxRunner
	ledger InventoryLedger
	log    zerolog.Logger
	now    func() time.Time
}

// NewUseCase construye el caso de uso de compras. now nil = time.Now.
func NewUseCase(tx repository.TxRunner, ledger InventoryLedger, log zerolog.Logger, now func() time.Time) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{
		tx:     tx,
		ledger: ledger,
		log:    log.With().Str("component", "purchasing").Logger(),
		now:    now,
	}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// CreateOrder crea la orden con sus líneas; calcula importes, impuesto (redondeo a yen) y total.
func (uc *UseCase) CreateOrder(ctx context.Context, actor string, in dto.CreatePurchaseOrderRequest) (*entity.PurchaseOrder, error) {
	in.OrderNumber = strings.TrimSpace(in.OrderNumber)
	if in.OrderNumber == "" {
		return nil, domain.Invalid("order_number es obligatorio")
	}
	if in.SupplierID == "" {
		return nil, domain.Invalid("supplier_id es obligatorio")
	}
	if in.OrderDate.IsZero() {
		return nil, domain.Invalid("order_date es obligatorio")
	}

	now := uc.now()
	po := &entity.PurchaseOrder{
		ID:                   newID(),
		OrderNumber:          in.OrderNumber,
		SupplierID:           in.SupplierID,
		OrderDate:            in.OrderDate.Time,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate.Ptr(),
		Status:               entity.PurchaseOrderOrdered,
		Notes:                in.Notes,
		CreatedBy:            actor,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	for _, line := range in.Items {
		rate := inventory.DefaultTaxRate
		if line.TaxRate != nil {
			rate = *line.TaxRate
		}
		po.Items = append(po.Items, entity.PurchaseOrderItem{
			ID:              newID(),
			PurchaseOrderID: po.ID,
			InventoryItemID: line.InventoryItemID,
			ItemName:        line.ItemName,
			Description:     line.Description,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			TaxRate:         rate,
		})
	}
	var err error
	po.Subtotal, po.TaxAmount, po.TotalAmount, err = inventory.PurchaseTotals(po.Items)
	if err != nil {
		return nil, err
	}

	err = uc.tx.Run(ctx, func(r repository.Repositories) error {
		return r.PurchaseOrders.Create(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_number", po.OrderNumber).Str("total", po.TotalAmount.String()).Msg("orden de compra creada")
	return po, nil
}

// GetOrder devuelve una orden vigente o domain.ErrNotFound.
func (uc *UseCase) GetOrder(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	var po *entity.PurchaseOrder
	err := uc.tx.View(ctx, func(r repository.Repositories) error {
		var err error
		po, err = r.PurchaseOrders.GetByID(ctx, id)
		return err
	})
	return po, err
}

// ReceiveResult resultado de recibir una orden. AlertErr no nil indica que la orden y sus
// entradas quedaron registradas pero la reconciliación de alertas falló en algún ítem.
type ReceiveResult struct {
	Order     *entity.PurchaseOrder
	Movements []*entity.Movement
	AlertErr  error
}

// ReceiveOrder marca la orden como entregada y registra una entrada (inbound) por cada
// línea vinculada a un ítem, al precio de la línea. Todo en una transacción: si una
// línea falla no se recibe nada. Luego reconcilia las alertas de los ítems tocados.
func (uc *UseCase) ReceiveOrder(ctx context.Context, id, actor string) (*ReceiveResult, error) {
	now := uc.now()
	var (
		po   *entity.PurchaseOrder
		movs []*entity.Movement
	)
	err := uc.tx.Run(ctx, func(r repository.Repositories) error {
		movs = nil
		var err error
		po, err = r.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po.Status != entity.PurchaseOrderOrdered {
			return fmt.Errorf("%w: la orden está %s", domain.ErrConflict, po.Status)
		}
		for _, line := range po.Items {
			if line.InventoryItemID == "" {
				continue
			}
			price := line.UnitPrice
			_, mov, err := uc.ledger.RecordInTx(ctx, r, appinv.MovementInput{
				ItemID:        line.InventoryItemID,
				Type:          entity.MovementTypeInbound,
				Quantity:      line.Quantity,
				UnitCost:      &price,
				ReferenceType: entity.ReferencePurchaseOrder,
				ReferenceID:   po.ID,
				Notes:         po.OrderNumber,
				Actor:         actor,
			}, now)
			if err != nil {
				return fmt.Errorf("línea %s: %w", line.ItemName, err)
			}
			movs = append(movs, mov)
		}
		delivered := calendarDay(now)
		if err := r.PurchaseOrders.UpdateStatus(ctx, po.ID, entity.PurchaseOrderDelivered, &delivered, now); err != nil {
			return err
		}
		po.Status = entity.PurchaseOrderDelivered
		po.ActualDeliveryDate = &delivered
		po.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_number", po.OrderNumber).Int("movements", len(movs)).Msg("orden de compra recibida")

	res := &ReceiveResult{Order: po, Movements: movs}
	var alertErrs []error
	for _, m := range movs {
		if err := uc.ledger.ReconcileAlerts(ctx, m.ItemID, actor); err != nil {
			uc.log.Warn().Err(err).Str("item_id", m.ItemID).Msg("reconciliación de alertas pendiente")
			alertErrs = append(alertErrs, fmt.Errorf("ítem %s: %w", m.ItemID, err))
		}
	}
	res.AlertErr = errors.Join(alertErrs...)
	return res, nil
}

// CancelOrder cancela una orden aún no recibida.
func (uc *UseCase) CancelOrder(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	now := uc.now()
	var po *entity.PurchaseOrder
	err := uc.tx.Run(ctx, func(r repository.Repositories) error {
		var err error
		po, err = r.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po.Status != entity.PurchaseOrderOrdered {
			return fmt.Errorf("%w: la orden está %s", domain.ErrConflict, po.Status)
		}
		po.Status = entity.PurchaseOrderCancelled
		po.UpdatedAt = now
		return r.PurchaseOrders.UpdateStatus(ctx, id, po.Status, nil, now)
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

// DeleteOrder borra lógicamente la orden; deja de bloquear el borrado de ítems.
func (uc *UseCase) DeleteOrder(ctx context.Context, id string) error {
	err := uc.tx.Run(ctx, func(r repository.Repositories) error {
		return r.PurchaseOrders.SoftDelete(ctx, id, uc.now())
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("purchase_order_id", id).Msg("orden de compra eliminada")
	return nil
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
