package handler

import (
	"errors"
	"net/http"
	"strings"

	"coinnecta/internal/orders"
	"coinnecta/internal/service"
	"coinnecta/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeError maps service errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	var importErr *orders.ImportError
	switch {
	case errors.As(err, &importErr):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, importErr.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		msg := strings.TrimSuffix(err.Error(), ": "+service.ErrInvalidInput.Error())
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, msg))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
}
