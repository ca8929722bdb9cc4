package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rkundra/farecalendar/internal/calendar"
	"github.com/rkundra/farecalendar/internal/models"
	"github.com/rkundra/farecalendar/internal/provider"
)

// Window presets for the two calendar endpoints.
var (
	Window45Day = models.Window{BeforeDays: 30, AfterDays: 15}
	Window15Day = models.Window{BeforeDays: 0, AfterDays: 15}
)

type CalendarEngine interface {
	Compute(ctx context.Context, req *models.CalendarRequest, win models.Window) (*calendar.Result, error)
}

type CalendarHandler struct {
	engine CalendarEngine
}

func NewCalendarHandler(engine CalendarEngine) *CalendarHandler {
	return &CalendarHandler{engine: engine}
}

func (h *CalendarHandler) FortyFiveDay(c echo.Context) error {
	return h.compute(c, Window45Day)
}

func (h *CalendarHandler) FifteenDay(c echo.Context) error {
	return h.compute(c, Window15Day)
}

func (h *CalendarHandler) compute(c echo.Context, win models.Window) error {
	var req models.CalendarRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	result, err := h.engine.Compute(c.Request().Context(), &req, win)
	if err != nil {
		return calendarError(c, err)
	}

	return c.JSON(http.StatusOK, buildResponse(req, result))
}

func calendarError(c echo.Context, err error) error {
	var validationErr models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: validationErr.Error(),
			Code:    http.StatusBadRequest,
		})
	case errors.Is(err, calendar.ErrProviderNotConfigured):
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "configuration_error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	case errors.Is(err, provider.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "upstream_auth_error",
			Message: "Offer search provider rejected the configured credentials",
			Code:    http.StatusUnauthorized,
		})
	default:
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "calendar_error",
			Message: "Failed to compute price calendar: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
}

func buildResponse(req models.CalendarRequest, result *calendar.Result) models.CalendarResponse {
	priceData := make([]models.DayPrice, 0, len(result.Records))
	for _, rec := range result.Records {
		day := models.DayPrice{
			Date:           rec.Date.Format(models.DateLayout),
			Status:         string(rec.Status),
			DaysFromSearch: rec.Offset,
		}
		if rec.Status == models.StatusSuccess {
			price := rec.Price
			day.Price = &price
			day.FlightData = rec.Offer
		}
		priceData = append(priceData, day)
	}

	return models.CalendarResponse{
		Success:    true,
		Route:      req.Origin + " → " + req.Destination,
		SearchDate: req.DepartDate,
		PriceData:  priceData,
		Stats:      result.Stats,
		Meta: models.CalendarMeta{
			TotalDays:       result.Meta.TotalDays,
			ValidDataPoints: result.Meta.ValidDays,
			Duration:        result.Meta.Elapsed.Round(10 * time.Millisecond).String(),
			Cancelled:       result.Meta.Cancelled,
			DateRange: models.DateRange{
				Start: result.Meta.Start.Format(models.DateLayout),
				End:   result.Meta.End.Format(models.DateLayout),
			},
		},
	}
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
