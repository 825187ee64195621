package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un insumo del restaurante (carne, pescado, verdura, salsa...).
// CurrentStock es una proyección del libro de movimientos: nunca se asigna directamente,
// solo cambia al registrar un Movement en la misma transacción.
type InventoryItem struct {
	ID              string
	Name            string
	Category        string
	SupplierID      string // vacío = sin proveedor
	Unit            string // kg, 本, 玉...
	CurrentStock    decimal.Decimal
	ReorderPoint    decimal.Decimal
	OptimalStock    decimal.Decimal
	UnitCost        decimal.Decimal // costo promedio ponderado
	ExpiryDate      *time.Time      // fecha calendario (00:00 UTC); nil = no vence
	StorageLocation string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ItemFilter filtra ListItems. Campos vacíos no filtran.
type ItemFilter struct {
	Category   string
	SupplierID string
}

// Matches indica si el ítem cumple el filtro.
func (f ItemFilter) Matches(it *InventoryItem) bool {
	if f.Category != "" && it.Category != f.Category {
		return false
	}
	if f.SupplierID != "" && it.SupplierID != f.SupplierID {
		return false
	}
	return true
}
