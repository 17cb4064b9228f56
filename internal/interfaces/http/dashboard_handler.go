package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
)

// DashboardHandler dashboards de ventas y de reportes, y comisiones del mes.
type DashboardHandler struct {
	sales       *analytics.SalesDashboardUseCase
	reports     *analytics.ReportsDashboardUseCase
	commissions *analytics.CommissionUseCase
}

func NewDashboardHandler(sales *analytics.SalesDashboardUseCase, reports *analytics.ReportsDashboardUseCase, commissions *analytics.CommissionUseCase) *DashboardHandler {
	return &DashboardHandler{sales: sales, reports: reports, commissions: commissions}
}

// Sales godoc
// @Summary      Dashboard de ventas
// @Description  Un preset mal formado se resuelve como "all".
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        preset          query  string  false  "today, yesterday, last7, thisWeek, thisMonth, thisYear, month:YYYY-MM, YYYY-Www, custom:A:B, all"
// @Param        closer          query  string  false  "Closer"
// @Param        setter          query  string  false  "Setter"
// @Param        product         query  string  false  "Producto"
// @Param        payment_method  query  string  false  "Método de pago"
// @Success      200  {object}  dto.SalesDashboardResponse
// @Router       /api/dashboard/sales [get]
func (h *DashboardHandler) Sales(c *fiber.Ctx) error {
	var q dto.DashboardQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.sales.Get(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reports godoc
// @Summary      Dashboard de reportes de actividad
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        preset  query  string  false  "Preset de fechas"
// @Param        closer  query  string  false  "Closer"
// @Param        setter  query  string  false  "Setter"
// @Success      200  {object}  dto.ReportsDashboardResponse
// @Router       /api/dashboard/reports [get]
func (h *DashboardHandler) Reports(c *fiber.Ctx) error {
	var q dto.DashboardQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.reports.Get(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Commissions godoc
// @Summary      Comisiones del mes
// @Description  Closers y setters reciben solo su fila.
// @Tags         commissions
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  false  "YYYY-MM (vacío = mes en curso)"
// @Success      200  {object}  dto.CommissionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/commissions [get]
func (h *DashboardHandler) Commissions(c *fiber.Ctx) error {
	out, err := h.commissions.Get(c.UserContext(), c.Query("month"), GetViewer(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CommissionStatement godoc
// @Summary      Liquidación de comisiones en PDF
// @Tags         commissions
// @Security     Bearer
// @Produce      application/pdf
// @Param        month  query  string  false  "YYYY-MM (vacío = mes en curso)"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/commissions/statement [get]
func (h *DashboardHandler) CommissionStatement(c *fiber.Ctx) error {
	data, filename, err := h.commissions.Statement(c.UserContext(), c.Query("month"), GetViewer(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(data)
}
