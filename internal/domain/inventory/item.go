package inventory

import (
	"strings"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// DefaultUnit unidad usada cuando no se indica ninguna.
const DefaultUnit = "個"

// ValidateItem valida nombre y umbrales de un ítem y normaliza la unidad.
func ValidateItem(it *entity.InventoryItem) error {
	it.Name = strings.TrimSpace(it.Name)
	if it.Name == "" {
		return domain.Invalid("name es obligatorio")
	}
	if strings.TrimSpace(it.Unit) == "" {
		it.Unit = DefaultUnit
	}
	if it.ReorderPoint.IsNegative() {
		return domain.Invalid("reorder_point no puede ser negativo")
	}
	if it.OptimalStock.LessThan(it.ReorderPoint) {
		return domain.Invalid("optimal_stock (%s) debe ser >= reorder_point (%s)",
			it.OptimalStock.String(), it.ReorderPoint.String())
	}
	if it.UnitCost.IsNegative() {
		return domain.Invalid("unit_cost no puede ser negativo")
	}
	return nil
}
