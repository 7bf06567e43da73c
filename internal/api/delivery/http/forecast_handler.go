package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/internal/api/service"
	"github.com/kismat91/FinDocGPT/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ForecastHandler handles HTTP requests for financial forecasts.
type ForecastHandler struct {
	forecastService service.ForecastService
	logger          *logger.Logger
}

// NewForecastHandler creates a new ForecastHandler.
func NewForecastHandler(forecastService service.ForecastService, logger *logger.Logger) *ForecastHandler {
	return &ForecastHandler{forecastService: forecastService, logger: logger}
}

// RegisterRoutes registers the forecast routes to the Echo group.
func (h *ForecastHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateForecast)
	g.GET("/:symbol", h.GetForecasts)
	g.GET("/:symbol/latest", h.GetLatestForecast)
}

// CreateForecast godoc
// @Summary Generate a financial forecast
// @Description Generate and persist a stock price, earnings or revenue forecast for a symbol
// @Tags forecast
// @Accept  json
// @Produce  json
// @Param   request body dto.ForecastRequest true "Forecast to generate"
// @Success 200 {object} dto.ForecastResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /forecast [post]
func (h *ForecastHandler) CreateForecast(c echo.Context) error {
	var req dto.ForecastRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	resp, err := h.forecastService.GenerateForecast(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Failed to generate forecast", logger.ErrorField(err), logger.StringField("symbol", req.Symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to generate forecast"})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetForecasts godoc
// @Summary List forecasts for a symbol
// @Description Get stored forecasts for a symbol, newest first
// @Tags forecast
// @Produce  json
// @Param   symbol path string true "Ticker symbol"
// @Param   forecast_type query string false "Filter by forecast type"
// @Param   limit query int false "Maximum rows to return"
// @Success 200 {array} dto.ForecastResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /forecast/{symbol} [get]
func (h *ForecastHandler) GetForecasts(c echo.Context) error {
	symbol := c.Param("symbol")
	forecastType := c.QueryParam("forecast_type")
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	forecasts, err := h.forecastService.GetForecasts(c.Request().Context(), symbol, forecastType, limit)
	if err != nil {
		h.logger.Error("Failed to list forecasts", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get forecasts"})
	}
	return c.JSON(http.StatusOK, forecasts)
}

// GetLatestForecast godoc
// @Summary Get the latest forecast for a symbol
// @Description Get the most recent stored forecast for a symbol
// @Tags forecast
// @Produce  json
// @Param   symbol path string true "Ticker symbol"
// @Param   forecast_type query string false "Filter by forecast type"
// @Success 200 {object} dto.ForecastResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /forecast/{symbol}/latest [get]
func (h *ForecastHandler) GetLatestForecast(c echo.Context) error {
	symbol := c.Param("symbol")
	forecastType := c.QueryParam("forecast_type")

	resp, err := h.forecastService.GetLatestForecast(c.Request().Context(), symbol, forecastType)
	if err != nil {
		if errors.Is(err, service.ErrForecastNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No forecast found for this symbol"})
		}
		h.logger.Error("Failed to get latest forecast", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get latest forecast"})
	}
	return c.JSON(http.StatusOK, resp)
}
