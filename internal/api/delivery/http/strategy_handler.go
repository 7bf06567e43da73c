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

// StrategyHandler handles HTTP requests for investment strategies.
type StrategyHandler struct {
	strategyService service.StrategyService
	logger          *logger.Logger
}

// NewStrategyHandler creates a new StrategyHandler.
func NewStrategyHandler(strategyService service.StrategyService, logger *logger.Logger) *StrategyHandler {
	return &StrategyHandler{strategyService: strategyService, logger: logger}
}

// RegisterRoutes registers the strategy routes to the Echo group.
func (h *StrategyHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/recommend", h.GetRecommendation)
	g.GET("/portfolio/overview", h.GetPortfolioOverview)
	g.GET("/:symbol/history", h.GetStrategyHistory)
	g.GET("/:symbol/latest", h.GetLatestStrategy)
}

// GetRecommendation godoc
// @Summary Generate an investment recommendation
// @Description Score a symbol on technical and fundamental factors and persist the recommendation
// @Tags strategy
// @Accept  json
// @Produce  json
// @Param   request body dto.StrategyRequest true "Recommendation to generate"
// @Success 200 {object} dto.StrategyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /strategy/recommend [post]
func (h *StrategyHandler) GetRecommendation(c echo.Context) error {
	var req dto.StrategyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	resp, err := h.strategyService.GenerateRecommendation(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Failed to generate recommendation", logger.ErrorField(err), logger.StringField("symbol", req.Symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to generate recommendation"})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetStrategyHistory godoc
// @Summary List recommendations for a symbol
// @Description Get stored recommendations for a symbol, newest first
// @Tags strategy
// @Produce  json
// @Param   symbol path string true "Ticker symbol"
// @Param   limit query int false "Maximum rows to return"
// @Success 200 {array} dto.StrategyResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /strategy/{symbol}/history [get]
func (h *StrategyHandler) GetStrategyHistory(c echo.Context) error {
	symbol := c.Param("symbol")
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	strategies, err := h.strategyService.GetStrategyHistory(c.Request().Context(), symbol, limit)
	if err != nil {
		h.logger.Error("Failed to list strategies", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get strategy history"})
	}
	return c.JSON(http.StatusOK, strategies)
}

// GetLatestStrategy godoc
// @Summary Get the latest recommendation for a symbol
// @Description Get the most recent stored recommendation for a symbol
// @Tags strategy
// @Produce  json
// @Param   symbol path string true "Ticker symbol"
// @Success 200 {object} dto.StrategyResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /strategy/{symbol}/latest [get]
func (h *StrategyHandler) GetLatestStrategy(c echo.Context) error {
	symbol := c.Param("symbol")

	resp, err := h.strategyService.GetLatestStrategy(c.Request().Context(), symbol)
	if err != nil {
		if errors.Is(err, service.ErrStrategyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No strategy found for this symbol"})
		}
		h.logger.Error("Failed to get latest strategy", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get latest strategy"})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetPortfolioOverview godoc
// @Summary Get a portfolio overview
// @Description Aggregate the latest recommendation per analyzed symbol
// @Tags strategy
// @Produce  json
// @Success 200 {object} dto.PortfolioOverviewResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /strategy/portfolio/overview [get]
func (h *StrategyHandler) GetPortfolioOverview(c echo.Context) error {
	resp, err := h.strategyService.GetPortfolioOverview(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get portfolio overview", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get portfolio overview"})
	}
	return c.JSON(http.StatusOK, resp)
}
