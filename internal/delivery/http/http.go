package http

import (
	"context"

	"goodwill-valuation/config"
	"goodwill-valuation/internal/service"
	"goodwill-valuation/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
	health    HealthChecker
	cfg       config.API
	log       *logger.Logger
}

func NewHttpAPIHandler(
	cfg config.API,
	log *logger.Logger,
	echo *echo.Echo,
	validator *goValidator.Validate,
	service *service.Service,
	health HealthChecker,
) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		validator: validator,
		service:   service,
		health:    health,
		cfg:       cfg,
		log:       log.Named("http"),
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	// "/api/valuations/" and "/api/valuations" reach the same handler
	h.echo.Pre(middleware.RemoveTrailingSlash())

	h.echo.GET("/healthz", h.Health)

	base := h.echo.Group("/api")
	h.SetupValuations(base.Group("/v1/valuations"))
	if h.cfg.BasePath != "" && h.cfg.BasePath != "/api/v1/valuations" {
		h.SetupValuations(h.echo.Group(h.cfg.BasePath))
	}
}
