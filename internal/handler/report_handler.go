package handler

import (
	"net/http"

	"coinnecta/internal/service"
	"coinnecta/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService    service.ReportService
	referenceService service.ReferenceService
}

func NewReportHandler(reportService service.ReportService, referenceService service.ReferenceService) *ReportHandler {
	return &ReportHandler{reportService: reportService, referenceService: referenceService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/reference", h.GetReference)
	router.GET("/api/imports/:id/report", h.GetReport)
	router.GET("/api/summary", h.GetSummary)
}

// GetReference lists countries, currencies and exchange rates
// @Summary      Reference data
// @Tags         reference
// @Produce      json
// @Success      200  {object}  response.Response{data=service.ReferenceResponse}
// @Router       /api/reference [get]
func (h *ReportHandler) GetReference(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.referenceService.GetReference(c.Request.Context())))
}

// GetReport returns the profit report of one import in its country's currency
// @Summary      Import profit report
// @Tags         reports
// @Produce      json
// @Param        id   path      string  true  "Import ID"
// @Success      200  {object}  response.Response{data=model.ProfitReport}
// @Failure      404  {object}  response.Response
// @Router       /api/imports/{id}/report [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, err := h.reportService.GetReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// GetSummary aggregates every import in USD
// @Summary      Portfolio summary
// @Tags         reports
// @Produce      json
// @Success      200  {object}  response.Response{data=model.PortfolioSummary}
// @Router       /api/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.reportService.GetSummary(c.Request.Context())))
}
