package report

import (
	"context"
	"fmt"
	"time"

	appinv "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// UseCase arma el informe de estado del inventario: resumen, ítems y alertas abiertas.
type UseCase struct {
	inv       *appinv.Service
	generator ReportGenerator
	title     string
	loc       *time.Location
}

// NewUseCase construye el caso de uso. loc nil = UTC.
func NewUseCase(inv *appinv.Service, generator ReportGenerator, title string, loc *time.Location) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{inv: inv, generator: generator, title: title, loc: loc}
}

// Collect reúne los datos del informe sin generar el documento.
func (uc *UseCase) Collect(ctx context.Context, filter entity.ItemFilter) (*StockReport, error) {
	sum, err := uc.inv.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: resumen: %w", err)
	}

	var items []*entity.InventoryItem
	for it, err := range uc.inv.ListItems(ctx, filter) {
		if err != nil {
			return nil, fmt.Errorf("report: listar ítems: %w", err)
		}
		items = append(items, it)
	}

	open, err := uc.inv.Alerts().ListAlerts(ctx, entity.AlertFilter{OpenOnly: true})
	if err != nil {
		return nil, fmt.Errorf("report: listar alertas: %w", err)
	}
	if filter != (entity.ItemFilter{}) {
		keep := make(map[string]bool, len(items))
		for _, it := range items {
			keep[it.ID] = true
		}
		filtered := open[:0]
		for _, a := range open {
			if keep[a.ItemID] {
				filtered = append(filtered, a)
			}
		}
		open = filtered
	}

	return &StockReport{
		Title:      uc.title,
		Summary:    sum,
		Items:      items,
		OpenAlerts: open,
		Location:   uc.loc,
	}, nil
}

// DownloadStockReport genera el PDF y devuelve (bytes, nombre de archivo).
func (uc *UseCase) DownloadStockReport(ctx context.Context, filter entity.ItemFilter) ([]byte, string, error) {
	data, err := uc.Collect(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateStockReport(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("report: generación fallida: %w", err)
	}
	filename := fmt.Sprintf("inventario_%s.pdf", data.Summary.GeneratedAt.In(uc.loc).Format("20060102_1504"))
	return pdfBytes, filename, nil
}
