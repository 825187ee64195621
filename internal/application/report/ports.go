package report

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// StockReport datos consolidados para el informe de estado del inventario.
type StockReport struct {
	Title      string
	Summary    *dto.InventorySummaryDTO
	Items      []*entity.InventoryItem
	OpenAlerts []*entity.Alert
	Location   *time.Location // zona para imprimir fechas
}

// ReportGenerator genera el documento del informe (PDF) a partir de los datos consolidados.
type ReportGenerator interface {
	GenerateStockReport(ctx context.Context, r *StockReport) ([]byte, error)
}
