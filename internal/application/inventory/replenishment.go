package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// Replenishment devuelve los ítems en o bajo su punto de pedido con la cantidad sugerida
// para volver al stock óptimo. Prioridad: mayor déficit relativo primero.
func (s *Service) Replenishment(ctx context.Context, filter entity.ItemFilter) ([]dto.ReplenishmentSuggestionDTO, error) {
	type row struct {
		s       dto.ReplenishmentSuggestionDTO
		deficit decimal.Decimal // (reorder - current) / reorder
	}
	var rows []row
	for item, err := range s.ListItems(ctx, filter) {
		if err != nil {
			return nil, err
		}
		if item.CurrentStock.GreaterThan(item.ReorderPoint) {
			continue
		}
		suggested := item.OptimalStock.Sub(item.CurrentStock)
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		deficit := decimal.Zero
		if item.ReorderPoint.IsPositive() {
			deficit = item.ReorderPoint.Sub(item.CurrentStock).DivRound(item.ReorderPoint, 4)
		}
		rows = append(rows, row{
			s: dto.ReplenishmentSuggestionDTO{
				ItemID:             item.ID,
				ItemName:           item.Name,
				Category:           item.Category,
				SupplierID:         item.SupplierID,
				Unit:               item.Unit,
				CurrentStock:       item.CurrentStock,
				ReorderPoint:       item.ReorderPoint,
				OptimalStock:       item.OptimalStock,
				SuggestedOrderQty:  suggested,
				UnitCost:           item.UnitCost,
				EstimatedOrderCost: suggested.Mul(item.UnitCost).Round(0),
			},
			deficit: deficit,
		})
	}

	// Mayor déficit relativo; desempate por costo estimado y luego nombre.
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.deficit.Equal(b.deficit) {
			return a.deficit.GreaterThan(b.deficit)
		}
		if !a.s.EstimatedOrderCost.Equal(b.s.EstimatedOrderCost) {
			return a.s.EstimatedOrderCost.GreaterThan(b.s.EstimatedOrderCost)
		}
		return a.s.ItemName < b.s.ItemName
	})

	out := make([]dto.ReplenishmentSuggestionDTO, len(rows))
	for i, r := range rows {
		r.s.Priority = i + 1
		out[i] = r.s
	}
	return out, nil
}

// Summary resume el valor del inventario y el estado de alertas.
func (s *Service) Summary(ctx context.Context) (*dto.InventorySummaryDTO, error) {
	sum := &dto.InventorySummaryDTO{GeneratedAt: s.opts.Now(), StockValue: decimal.Zero}
	byCat := map[string]*dto.CategoryValueDTO{}
	for item, err := range s.ListItems(ctx, entity.ItemFilter{}) {
		if err != nil {
			return nil, err
		}
		value := item.CurrentStock.Mul(item.UnitCost)
		sum.ItemCount++
		sum.StockValue = sum.StockValue.Add(value)
		if item.CurrentStock.LessThanOrEqual(item.ReorderPoint) {
			sum.LowStockCount++
		}
		c, ok := byCat[item.Category]
		if !ok {
			c = &dto.CategoryValueDTO{Category: item.Category, Value: decimal.Zero}
			byCat[item.Category] = c
		}
		c.ItemCount++
		c.Value = c.Value.Add(value)
	}
	open, err := s.alerts.ListAlerts(ctx, entity.AlertFilter{OpenOnly: true})
	if err != nil {
		return nil, err
	}
	sum.OpenAlerts = len(open)
	sum.StockValue = sum.StockValue.Round(0)

	sum.Categories = make([]dto.CategoryValueDTO, 0, len(byCat))
	for _, c := range byCat {
		c.Value = c.Value.Round(0)
		sum.Categories = append(sum.Categories, *c)
	}
	sort.Slice(sum.Categories, func(i, j int) bool {
		a, b := sum.Categories[i], sum.Categories[j]
		if !a.Value.Equal(b.Value) {
			return a.Value.GreaterThan(b.Value)
		}
		return a.Category < b.Category
	})
	return sum, nil
}
