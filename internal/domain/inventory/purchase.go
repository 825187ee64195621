package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// DefaultTaxRate impuesto al consumo (porcentaje) si la línea no indica otro.
var DefaultTaxRate = decimal.NewFromInt(10)

var hundred = decimal.NewFromInt(100)

// PurchaseTotals calcula importe por línea, subtotal, impuesto y total de una orden.
// El impuesto se redondea a yenes enteros, mitad hacia arriba (decimal.Round).
// Completa Amount de cada línea.
func PurchaseTotals(items []entity.PurchaseOrderItem) (subtotal, tax, total decimal.Decimal, err error) {
	if len(items) == 0 {
		return subtotal, tax, total, domain.Invalid("la orden debe tener al menos una línea")
	}
	rawTax := decimal.Zero
	for i := range items {
		it := &items[i]
		if !it.Quantity.IsPositive() {
			return subtotal, tax, total, domain.Invalid("línea %d: quantity debe ser > 0", i+1)
		}
		if it.UnitPrice.IsNegative() {
			return subtotal, tax, total, domain.Invalid("línea %d: unit_price no puede ser negativo", i+1)
		}
		if it.TaxRate.IsNegative() {
			return subtotal, tax, total, domain.Invalid("línea %d: tax_rate no puede ser negativo", i+1)
		}
		it.Amount = it.Quantity.Mul(it.UnitPrice)
		subtotal = subtotal.Add(it.Amount)
		rawTax = rawTax.Add(it.Amount.Mul(it.TaxRate).Div(hundred))
	}
	tax = rawTax.Round(0)
	total = subtotal.Add(tax)
	return subtotal, tax, total, nil
}
