package http

import (
	"net/http"

	"github.com/kismat91/FinDocGPT/internal/api/dto"
	"github.com/kismat91/FinDocGPT/internal/api/service"
	"github.com/kismat91/FinDocGPT/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SECHandler handles HTTP requests for SEC filing analysis.
type SECHandler struct {
	secService service.SECService
	logger     *logger.Logger
}

// NewSECHandler creates a new SECHandler.
func NewSECHandler(secService service.SECService, logger *logger.Logger) *SECHandler {
	return &SECHandler{secService: secService, logger: logger}
}

// RegisterRoutes registers the SEC routes to the Echo group.
func (h *SECHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/sec-analysis", h.AnalyzeCompany)
	g.POST("/sec-chat", h.Chat)
}

// AnalyzeCompany godoc
// @Summary Analyze a company's SEC profile
// @Description Build an SEC-filing style company profile for a ticker
// @Tags sec
// @Accept  json
// @Produce  json
// @Param   request body dto.SECAnalysisRequest true "Ticker to analyze"
// @Success 200 {object} dto.SECAnalysisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /sec-analysis [post]
func (h *SECHandler) AnalyzeCompany(c echo.Context) error {
	var req dto.SECAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	resp, err := h.secService.AnalyzeCompany(c.Request().Context(), req.Ticker)
	if err != nil {
		h.logger.Error("Failed to analyze company", logger.ErrorField(err), logger.StringField("ticker", req.Ticker))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to analyze company"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Chat godoc
// @Summary Ask about a company's SEC profile
// @Description Answer a natural language question about a company's filings and metrics
// @Tags sec
// @Accept  json
// @Produce  json
// @Param   request body dto.SECChatRequest true "Question to answer"
// @Success 200 {object} dto.SECChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /sec-chat [post]
func (h *SECHandler) Chat(c echo.Context) error {
	var req dto.SECChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	resp, err := h.secService.Chat(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Failed to answer SEC chat query", logger.ErrorField(err), logger.StringField("ticker", req.Ticker))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to answer query"})
	}
	return c.JSON(http.StatusOK, resp)
}
