package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"coinnecta/internal/middleware"
	"coinnecta/internal/service"
	"coinnecta/pkg/pagination"
	"coinnecta/pkg/response"

	"github.com/gin-gonic/gin"
)

// formOverhead is the room left for multipart boundaries, headers and the country field.
const formOverhead = 64 << 10

type ImportHandler struct {
	importService service.ImportService
	maxUpload     int64
}

func NewImportHandler(importService service.ImportService, maxUpload int64) *ImportHandler {
	return &ImportHandler{importService: importService, maxUpload: maxUpload}
}

func (h *ImportHandler) RegisterRoutes(router *gin.RouterGroup) {
	imports := router.Group("/api/imports")
	{
		imports.POST("", h.CreateImport)
		imports.GET("", h.ListImports)
		imports.GET("/:id", h.GetImport)
		imports.PUT("/:id/investment", h.UpdateInvestment)
	}
}

// CreateImport uploads a courier order report for one country
// @Summary      Import order report
// @Description  Accepts an .xlsx or .csv report and freezes the current investment and expenses into it
// @Tags         imports
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData  file    true  "Order report"
// @Param        country  formData  string  true  "Country code"
// @Success      201      {object}  response.Response{data=model.ImportRecord}
// @Failure      400      {object}  response.Response
// @Failure      413      {object}  response.Response
// @Router       /api/imports [post]
func (h *ImportHandler) CreateImport(c *gin.Context) {
	if h.maxUpload > 0 {
		if c.Request.ContentLength > h.maxUpload+formOverhead {
			h.tooLarge(c)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+formOverhead)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.tooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "file is required"))
		return
	}
	if h.maxUpload > 0 && fileHeader.Size > h.maxUpload {
		h.tooLarge(c)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "failed to open upload: "+err.Error()))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "failed to read upload: "+err.Error()))
		return
	}

	rec, err := h.importService.CreateImport(c.Request.Context(), service.ImportRequest{
		Filename: fileHeader.Filename,
		Country:  c.PostForm("country"),
		Data:     data,
	}, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rec))
}

func (h *ImportHandler) tooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, response.Error(http.StatusRequestEntityTooLarge,
		fmt.Sprintf("file exceeds the %d byte limit", h.maxUpload)))
}

// @Summary      List imports
// @Tags         imports
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=response.Page}
// @Router       /api/imports [get]
func (h *ImportHandler) ListImports(c *gin.Context) {
	p := pagination.Parse(c)

	imports, total, err := h.importService.ListImports(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, imports, total, p))
}

// @Summary      Get import
// @Tags         imports
// @Produce      json
// @Param        id   path      string  true  "Import ID"
// @Success      200  {object}  response.Response{data=model.ImportRecord}
// @Failure      404  {object}  response.Response
// @Router       /api/imports/{id} [get]
func (h *ImportHandler) GetImport(c *gin.Context) {
	rec, err := h.importService.GetImport(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rec))
}

// UpdateInvestment edits the investment frozen into one import
// @Summary      Update import investment
// @Tags         imports
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Import ID"
// @Param        request  body      service.ImportInvestmentRequest  true  "Investment"
// @Success      200      {object}  response.Response{data=model.ImportRecord}
// @Failure      404      {object}  response.Response
// @Router       /api/imports/{id}/investment [put]
func (h *ImportHandler) UpdateInvestment(c *gin.Context) {
	var req service.ImportInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	rec, err := h.importService.UpdateInvestment(c.Request.Context(), c.Param("id"), req, middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rec))
}
