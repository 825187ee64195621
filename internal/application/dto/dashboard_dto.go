package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventorySummaryDTO respuesta de GET /api/inventory/summary y cabecera del informe PDF.
type InventorySummaryDTO struct {
	GeneratedAt time.Time `json:"generated_at"`

	ItemCount     int             `json:"item_count"`
	LowStockCount int             `json:"low_stock_count"` // ítems con stock <= punto de pedido
	OpenAlerts    int             `json:"open_alerts"`
	StockValue    decimal.Decimal `json:"stock_value"` // Σ current_stock * unit_cost

	// Valor por categoría (肉類, 魚介類...), ordenado de mayor a menor
	Categories []CategoryValueDTO `json:"categories"`
}

// CategoryValueDTO valor de inventario de una categoría.
type CategoryValueDTO struct {
	Category  string          `json:"category"`
	ItemCount int             `json:"item_count"`
	Value     decimal.Decimal `json:"value"`
}
