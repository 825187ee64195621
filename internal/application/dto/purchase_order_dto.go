package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	OrderNumber          string                   `json:"order_number"`
	SupplierID           string                   `json:"supplier_id"`
	OrderDate            Date                     `json:"order_date"`
	ExpectedDeliveryDate *Date                    `json:"expected_delivery_date,omitempty"`
	Notes                string                   `json:"notes"`
	Items                []PurchaseOrderItemInput `json:"items"`
}

// PurchaseOrderItemInput línea de una orden. TaxRate nil = impuesto por defecto (10%).
type PurchaseOrderItemInput struct {
	InventoryItemID string           `json:"inventory_item_id,omitempty"`
	ItemName        string           `json:"item_name"`
	Description     string           `json:"description"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	TaxRate         *decimal.Decimal `json:"tax_rate,omitempty"`
}

// PurchaseOrderItemResponse línea de una orden con su importe.
type PurchaseOrderItemResponse struct {
	ID              string          `json:"id"`
	InventoryItemID string          `json:"inventory_item_id,omitempty"`
	ItemName        string          `json:"item_name"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Amount          decimal.Decimal `json:"amount"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID                   string                      `json:"id"`
	OrderNumber          string                      `json:"order_number"`
	SupplierID           string                      `json:"supplier_id"`
	OrderDate            Date                        `json:"order_date"`
	ExpectedDeliveryDate *Date                       `json:"expected_delivery_date,omitempty"`
	ActualDeliveryDate   *Date                       `json:"actual_delivery_date,omitempty"`
	Status               string                      `json:"status"`
	Subtotal             decimal.Decimal             `json:"subtotal"`
	TaxAmount            decimal.Decimal             `json:"tax_amount"`
	TotalAmount          decimal.Decimal             `json:"total_amount"`
	Notes                string                      `json:"notes"`
	CreatedBy            string                      `json:"created_by,omitempty"`
	CreatedAt            time.Time                   `json:"created_at"`
	Items                []PurchaseOrderItemResponse `json:"items"`
}

// ReceiveOrderResponse resultado de recibir una orden: la orden y los movimientos generados.
// AlertWarning igual que en MovementResultResponse.
type ReceiveOrderResponse struct {
	Order        PurchaseOrderResponse `json:"order"`
	Movements    []MovementResponse    `json:"movements"`
	AlertWarning string                `json:"alert_warning,omitempty"`
}
