package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-suministros/internal/application/analytics"
	"github.com/jhoicas/Inventario-suministros/internal/application/inventory"
	"github.com/jhoicas/Inventario-suministros/internal/application/report"
)

// ReportHandler alertas, KPIs, consolidado y exportaciones PDF/Excel.
type ReportHandler struct {
	replenishment *inventory.ReplenishmentUseCase
	dashboard     *analytics.DashboardUseCase
	export        *report.ExportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(replenishment *inventory.ReplenishmentUseCase, dashboard *analytics.DashboardUseCase, export *report.ExportUseCase) *ReportHandler {
	return &ReportHandler{replenishment: replenishment, dashboard: dashboard, export: export}
}

// Alerts godoc
// @Summary      Productos en alerta de stock
// @Description  Productos activos con stock <= stock mínimo, con reposición sugerida, ordenados por urgencia.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockAlertDTO
// @Router       /api/reports/alerts [get]
func (h *ReportHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateAlertList(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// KPIs godoc
// @Summary      Indicadores de stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.KPIsDTO
// @Router       /api/reports/kpis [get]
func (h *ReportHandler) KPIs(c *fiber.Ctx) error {
	out, err := h.dashboard.GetKPIs(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Consolidated godoc
// @Summary      Reporte consolidado
// @Description  Por producto: stock inicial, ingresos, salidas, stock actual y discrepancia.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockReconciliationDTO
// @Router       /api/reports/consolidated [get]
func (h *ReportHandler) Consolidated(c *fiber.Ctx) error {
	out, err := h.export.Consolidated(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar reporte
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        kind        path   string  true   "issues | receipts | inactive-products | consolidated"
// @Param        format      path   string  true   "pdf | excel"
// @Param        product_id  query  string  false  "Producto (ingresos/salidas)"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/{kind}/{format} [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	filter, err := movementFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	file, err := h.export.Export(c.UserContext(), report.Kind(c.Params("kind")), report.Format(c.Params("format")), filter)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Attachment(file.Name)
	return c.Send(file.Data)
}
