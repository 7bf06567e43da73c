package http

import (
	"net/http"
	"strconv"

	"github.com/kismat91/FinDocGPT/internal/api/service"
	"github.com/kismat91/FinDocGPT/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MarketHandler handles HTTP requests for market data.
type MarketHandler struct {
	marketService service.MarketService
	logger        *logger.Logger
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketService service.MarketService, logger *logger.Logger) *MarketHandler {
	return &MarketHandler{marketService: marketService, logger: logger}
}

// RegisterRoutes registers the market routes to the Echo group.
func (h *MarketHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/bars/:symbol", h.GetBars)
	g.GET("/data/:symbol", h.GetStoredMarketData)
}

// GetBars godoc
// @Summary Get daily bars for a symbol
// @Description Get daily OHLCV bars for a symbol over a timeframe
// @Tags market
// @Produce  json
// @Param   symbol path string true "Ticker symbol"
// @Param   timeframe query string false "History window (7d, 30d, 90d, 1y, 5y)"
// @Success 200 {array} dto.Bar
// @Failure 500 {object} dto.ErrorResponse
// @Router /market/bars/{symbol} [get]
func (h *MarketHandler) GetBars(c echo.Context) error {
	symbol := c.Param("symbol")
	timeframe := c.QueryParam("timeframe")

	bars, err := h.marketService.GetBars(c.Request().Context(), symbol, timeframe)
	if err != nil {
		h.logger.Error("Failed to get bars", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get market data"})
	}
	return c.JSON(http.StatusOK, bars)
}

// GetStoredMarketData godoc
// @Summary Get stored market data snapshots
// @Description List persisted daily snapshots for a symbol, newest first
// @Tags market
// @Produce  json
// @Param   symbol path string true "Ticker symbol"
// @Param   limit query int false "Maximum rows to return"
// @Success 200 {array} dto.MarketDataResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /market/data/{symbol} [get]
func (h *MarketHandler) GetStoredMarketData(c echo.Context) error {
	symbol := c.Param("symbol")
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	rows, err := h.marketService.GetStoredMarketData(c.Request().Context(), symbol, limit)
	if err != nil {
		h.logger.Error("Failed to get stored market data", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get stored market data"})
	}
	return c.JSON(http.StatusOK, rows)
}
