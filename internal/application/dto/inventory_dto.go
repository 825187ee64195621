package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/inventory/items.
type CreateItemRequest struct {
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	Unit            string          `json:"unit"`
	InitialStock    decimal.Decimal `json:"initial_stock"`
	ReorderPoint    decimal.Decimal `json:"reorder_point"`
	OptimalStock    decimal.Decimal `json:"optimal_stock"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	ExpiryDate      *Date           `json:"expiry_date,omitempty"`
	StorageLocation string          `json:"storage_location"`
	Notes           string          `json:"notes"`
}

// UpdateItemRequest body para PUT /api/inventory/items/:id (sin stock ni costo).
type UpdateItemRequest struct {
	Name            *string          `json:"name"`
	Category        *string          `json:"category"`
	SupplierID      *string          `json:"supplier_id"`
	Unit            *string          `json:"unit"`
	ReorderPoint    *decimal.Decimal `json:"reorder_point"`
	OptimalStock    *decimal.Decimal `json:"optimal_stock"`
	ExpiryDate      *Date            `json:"expiry_date"`
	ClearExpiry     bool             `json:"clear_expiry"`
	StorageLocation *string          `json:"storage_location"`
	Notes           *string          `json:"notes"`
}

// ItemResponse salida de un ítem de inventario.
type ItemResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	Unit            string          `json:"unit"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	ReorderPoint    decimal.Decimal `json:"reorder_point"`
	OptimalStock    decimal.Decimal `json:"optimal_stock"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	ExpiryDate      *Date           `json:"expiry_date,omitempty"`
	StorageLocation string          `json:"storage_location"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ItemListResponse página de ítems; NextAfter vacío indica la última página.
type ItemListResponse struct {
	Items     []ItemResponse `json:"items"`
	NextAfter string         `json:"next_after,omitempty"`
}

// RegisterMovementRequest body para POST /api/inventory/items/:id/movements.
type RegisterMovementRequest struct {
	Type          string           `json:"type"`
	Direction     string           `json:"direction,omitempty"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceType string           `json:"reference_type,omitempty"`
	ReferenceID   string           `json:"reference_id,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID            string           `json:"id"`
	ItemID        string           `json:"item_id"`
	Type          string           `json:"type"`
	Direction     string           `json:"direction,omitempty"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceType string           `json:"reference_type,omitempty"`
	ReferenceID   string           `json:"reference_id,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	PerformedBy   string           `json:"performed_by,omitempty"`
	PerformedAt   time.Time        `json:"performed_at"`
	BalanceAfter  decimal.Decimal  `json:"balance_after"`
}

// MovementListResponse página del historial; NextAfter vacío indica la última página.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextAfter string             `json:"next_after,omitempty"`
}

// MovementResultResponse salida de POST movements. AlertWarning se informa cuando
// el movimiento quedó registrado pero la reconciliación de alertas falló.
type MovementResultResponse struct {
	Movement     MovementResponse `json:"movement"`
	Balance      decimal.Decimal  `json:"balance"`
	AlertWarning string           `json:"alert_warning,omitempty"`
}

// AlertResponse salida de una alerta de stock.
type AlertResponse struct {
	ID         string     `json:"id"`
	ItemID     string     `json:"item_id"`
	Type       string     `json:"alert_type"`
	Level      string     `json:"alert_level"`
	Message    string     `json:"message"`
	IsResolved bool       `json:"is_resolved"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy string     `json:"resolved_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ReconciliationResponse compara stock almacenado contra el libro.
type ReconciliationResponse struct {
	ItemID        string          `json:"item_id"`
	StoredStock   decimal.Decimal `json:"stored_stock"`
	ReplayedStock decimal.Decimal `json:"replayed_stock"`
	MovementCount int             `json:"movement_count"`
	Drift         decimal.Decimal `json:"drift"`
	InSync        bool            `json:"in_sync"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un ítem en o bajo su punto de pedido.
type ReplenishmentSuggestionDTO struct {
	ItemID             string          `json:"item_id"`
	ItemName           string          `json:"item_name"`
	Category           string          `json:"category"`
	SupplierID         string          `json:"supplier_id,omitempty"`
	Unit               string          `json:"unit"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	ReorderPoint       decimal.Decimal `json:"reorder_point"`
	OptimalStock       decimal.Decimal `json:"optimal_stock"`
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // OptimalStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`            // costo promedio ponderado
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	Priority           int             `json:"priority"`             // 1 = más urgente
}
