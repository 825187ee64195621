package inventory

import "github.com/shopspring/decimal"

// costScale decimales con que se guarda el costo promedio.
const costScale = 4

// WeightedCost implementa el costo promedio ponderado tras una entrada.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedCost(stock, cost, qtyIn, costIn decimal.Decimal) decimal.Decimal {
	if stock.IsNegative() {
		stock = decimal.Zero
	}
	sum := stock.Add(qtyIn)
	if !sum.IsPositive() {
		return cost
	}
	num := stock.Mul(cost).Add(qtyIn.Mul(costIn))
	return num.DivRound(sum, costScale)
}
