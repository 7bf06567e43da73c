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

// SentimentHandler handles HTTP requests for sentiment analysis.
type SentimentHandler struct {
	sentimentService service.SentimentService
	logger           *logger.Logger
}

// NewSentimentHandler creates a new SentimentHandler.
func NewSentimentHandler(sentimentService service.SentimentService, logger *logger.Logger) *SentimentHandler {
	return &SentimentHandler{sentimentService: sentimentService, logger: logger}
}

// RegisterRoutes registers the sentiment routes to the Echo group.
func (h *SentimentHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/analyze", h.AnalyzeSentiment)
	g.GET("/document/:id", h.GetDocumentSentiment)
	g.GET("/market/:symbol", h.GetMarketSentiment)
	g.GET("/trends", h.GetSentimentTrends)
}

// AnalyzeSentiment godoc
// @Summary Analyze document sentiment
// @Description Score the sentiment of a stored document and persist the result
// @Tags sentiment
// @Accept  json
// @Produce  json
// @Param   request body dto.SentimentRequest true "Document to analyze"
// @Success 200 {object} dto.SentimentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sentiment/analyze [post]
func (h *SentimentHandler) AnalyzeSentiment(c echo.Context) error {
	var req dto.SentimentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	resp, err := h.sentimentService.AnalyzeDocument(c.Request().Context(), req.DocumentID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Document not found"})
		}
		h.logger.Error("Failed to analyze sentiment", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to analyze sentiment"})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetDocumentSentiment godoc
// @Summary List sentiment runs for a document
// @Description Get stored sentiment analyses for a document, newest first
// @Tags sentiment
// @Produce  json
// @Param   id path int true "Document ID"
// @Success 200 {array} dto.SentimentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sentiment/document/{id} [get]
func (h *SentimentHandler) GetDocumentSentiment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid document ID"})
	}

	results, err := h.sentimentService.GetDocumentSentiment(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Document not found"})
		}
		h.logger.Error("Failed to get document sentiment", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get document sentiment"})
	}
	return c.JSON(http.StatusOK, results)
}

// GetMarketSentiment godoc
// @Summary Get market sentiment for a symbol
// @Description Aggregate sentiment across stored documents and news headlines mentioning a symbol
// @Tags sentiment
// @Produce  json
// @Param   symbol path string true "Ticker symbol"
// @Success 200 {object} dto.MarketSentimentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sentiment/market/{symbol} [get]
func (h *SentimentHandler) GetMarketSentiment(c echo.Context) error {
	symbol := c.Param("symbol")

	resp, err := h.sentimentService.GetMarketSentiment(c.Request().Context(), symbol)
	if err != nil {
		if errors.Is(err, service.ErrNoDocumentsForSymbol) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No documents found for this symbol"})
		}
		h.logger.Error("Failed to get market sentiment", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get market sentiment"})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetSentimentTrends godoc
// @Summary Get recent sentiment trends
// @Description List the most recent sentiment runs across all documents
// @Tags sentiment
// @Produce  json
// @Param   limit query int false "Maximum rows to return"
// @Success 200 {array} dto.SentimentTrend
// @Failure 500 {object} dto.ErrorResponse
// @Router /sentiment/trends [get]
func (h *SentimentHandler) GetSentimentTrends(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	trends, err := h.sentimentService.GetSentimentTrends(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("Failed to get sentiment trends", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get sentiment trends"})
	}
	return c.JSON(http.StatusOK, trends)
}
