package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/report"
)

// ReportHandler descarga el informe de estado del inventario.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// DownloadPDF godoc
// @Summary      Informe de inventario en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        category     query  string  false  "categoría"
// @Param        supplier_id  query  string  false  "proveedor"
// @Success      200  {file}  binary
// @Router       /api/inventory/report.pdf [get]
func (h *ReportHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.DownloadStockReport(c.Context(), itemFilter(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
