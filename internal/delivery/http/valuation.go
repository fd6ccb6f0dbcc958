package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"goodwill-valuation/internal/dto"
	"goodwill-valuation/pkg/apperrors"
	"goodwill-valuation/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupValuations(g *echo.Group) {
	g.GET("", h.ListValuations)
	g.POST("", h.CreateValuation)
	g.GET("/:id", h.GetValuation)
	g.PATCH("/:id", h.UpdateValuation)
	g.DELETE("/:id", h.DeleteValuation)
}

func (h *HttpAPIHandler) ListValuations(c echo.Context) error {
	valuations, err := h.service.ValuationService.List(c.Request().Context())
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewValuationListResponse(valuations))
}

func (h *HttpAPIHandler) CreateValuation(c echo.Context) error {
	var req dto.ValuationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewMessageResponse(bindMessage(err)))
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewMessageResponse(err.Error()))
	}

	valuation, err := req.ToModel()
	if err != nil {
		return h.errorResponse(c, err)
	}

	created, err := h.service.ValuationService.Create(c.Request().Context(), valuation)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewValuationResponse(created))
}

func (h *HttpAPIHandler) GetValuation(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	valuation, err := h.service.ValuationService.Get(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewValuationResponse(valuation))
}

func (h *HttpAPIHandler) UpdateValuation(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewMessageResponse(err.Error()))
	}
	patch, err := dto.ParseValuationPatch(body)
	if err != nil {
		return h.errorResponse(c, err)
	}

	updated, err := h.service.ValuationService.Update(c.Request().Context(), id, patch)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewValuationResponse(updated))
}

func (h *HttpAPIHandler) DeleteValuation(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}

	if err := h.service.ValuationService.Delete(c.Request().Context(), id); err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewMessageResponse(dto.MessageValuationDeleted))
}

// errorResponse maps service errors onto the three response classes.
func (h *HttpAPIHandler) errorResponse(c echo.Context, err error) error {
	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, dto.NewMessageResponse(verr.Message))
	case errors.Is(err, apperrors.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, dto.NewMessageResponse(err.Error()))
	case errors.Is(err, apperrors.ErrNotFound):
		return notFound(c)
	default:
		h.log.ErrorContext(c.Request().Context(), "valuation request failed",
			logger.ErrorField(err),
			logger.StringField("path", c.Path()),
		)
		return c.JSON(http.StatusInternalServerError, dto.NewMessageResponse(err.Error()))
	}
}

// parseID treats a malformed id like an unknown one.
func parseID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, dto.NewMessageResponse(dto.MessageValuationNotFound))
}

func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return fmt.Sprint(he.Message)
	}
	return err.Error()
}
