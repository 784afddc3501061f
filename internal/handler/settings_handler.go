package handler

import (
	"net/http"

	"coinnecta/internal/middleware"
	"coinnecta/internal/service"
	"coinnecta/pkg/response"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService service.SettingsService
}

func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/api/settings")
	{
		settings.GET("/investment", h.GetInvestment)
		settings.PUT("/investment", h.UpdateInvestment)
		settings.GET("/expenses", h.GetExpenses)
		settings.PUT("/expenses", h.UpdateExpenses)
		settings.GET("/average-cpa", h.GetAverageCPA)
		settings.PUT("/average-cpa", h.UpdateAverageCPA)
	}
}

// @Summary      Get working investment
// @Tags         settings
// @Produce      json
// @Success      200  {object}  response.Response{data=model.Investment}
// @Router       /api/settings/investment [get]
func (h *SettingsHandler) GetInvestment(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.settingsService.GetInvestment(c.Request.Context())))
}

// UpdateInvestment sets the ad spend frozen into the next import
// @Summary      Update working investment
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.InvestmentRequest  true  "Investment"
// @Success      200      {object}  response.Response{data=model.Investment}
// @Router       /api/settings/investment [put]
func (h *SettingsHandler) UpdateInvestment(c *gin.Context) {
	var req service.InvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	inv, err := h.settingsService.UpdateInvestment(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, inv))
}

// @Summary      Get operating expenses
// @Tags         settings
// @Produce      json
// @Success      200  {object}  response.Response{data=model.OperatingExpenses}
// @Router       /api/settings/expenses [get]
func (h *SettingsHandler) GetExpenses(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.settingsService.GetExpenses(c.Request.Context())))
}

// UpdateExpenses replaces the whole expense list
// @Summary      Replace operating expenses
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.ExpensesRequest  true  "Expenses"
// @Success      200      {object}  response.Response{data=model.OperatingExpenses}
// @Router       /api/settings/expenses [put]
func (h *SettingsHandler) UpdateExpenses(c *gin.Context) {
	var req service.ExpensesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	exp, err := h.settingsService.UpdateExpenses(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, exp))
}

// @Summary      Get average CPA
// @Tags         settings
// @Produce      json
// @Success      200  {object}  response.Response{data=model.AverageCPA}
// @Router       /api/settings/average-cpa [get]
func (h *SettingsHandler) GetAverageCPA(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.settingsService.GetAverageCPA(c.Request.Context())))
}

// @Summary      Update average CPA
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      service.AverageCPARequest  true  "Average CPA"
// @Success      200      {object}  response.Response{data=model.AverageCPA}
// @Router       /api/settings/average-cpa [put]
func (h *SettingsHandler) UpdateAverageCPA(c *gin.Context) {
	var req service.AverageCPARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	avg, err := h.settingsService.UpdateAverageCPA(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, avg))
}
