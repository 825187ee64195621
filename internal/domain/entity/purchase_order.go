package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseOrderOrdered   = "ordered"
	PurchaseOrderDelivered = "delivered"
	PurchaseOrderCancelled = "cancelled"
)

// PurchaseOrder orden de compra a un proveedor. DeletedAt != nil = borrado lógico;
// una orden borrada deja de bloquear el borrado de ítems de inventario.
type PurchaseOrder struct {
	ID                   string
	OrderNumber          string
	SupplierID           string
	OrderDate            time.Time
	ExpectedDeliveryDate *time.Time
	ActualDeliveryDate   *time.Time
	Status               string
	Subtotal             decimal.Decimal
	TaxAmount            decimal.Decimal
	TotalAmount          decimal.Decimal
	Notes                string
	CreatedBy            string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time
	Items                []PurchaseOrderItem
}

// PurchaseOrderItem línea de la orden. InventoryItemID vacío = línea sin vínculo a inventario
// (no genera movimiento al recibir).
type PurchaseOrderItem struct {
	ID              string
	PurchaseOrderID string
	InventoryItemID string
	ItemName        string
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	TaxRate         decimal.Decimal // porcentaje, ej. 10
	Amount          decimal.Decimal
}

// IsLive indica si la orden cuenta como documento vigente.
func (po *PurchaseOrder) IsLive() bool {
	return po.DeletedAt == nil
}
