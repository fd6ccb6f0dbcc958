package http

import (
	"net/http"

	"goodwill-valuation/internal/dto"
	"goodwill-valuation/pkg/logger"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) Health(c echo.Context) error {
	if h.health == nil {
		return c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: "unknown"})
	}
	if err := h.health.Ping(c.Request().Context()); err != nil {
		h.log.WarnContext(c.Request().Context(), "health check failed", logger.ErrorField(err))
		return c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable", Database: "down"})
	}
	return c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: "up"})
}
