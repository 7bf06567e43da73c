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

// AnalysisHandler handles HTTP requests for document analysis.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	logger          *logger.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService, logger *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, logger: logger}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalysisHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/qa", h.AskQuestion)
	g.POST("/anomaly", h.DetectAnomalies)
	g.GET("/document/:id", h.GetAnalysisHistory)
}

// AskQuestion godoc
// @Summary Ask a question about a document
// @Description Answer a question about a stored document's content
// @Tags analysis
// @Accept  json
// @Produce  json
// @Param   request body dto.AnalysisRequest true "Question to answer"
// @Success 200 {object} dto.QAResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /analysis/qa [post]
func (h *AnalysisHandler) AskQuestion(c echo.Context) error {
	var req dto.AnalysisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	resp, err := h.analysisService.AskQuestion(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Document not found"})
		}
		h.logger.Error("Failed to answer question", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to answer question"})
	}
	return c.JSON(http.StatusOK, resp)
}

// DetectAnomalies godoc
// @Summary Detect anomalies in a document
// @Description Flag statistical outliers and significant changes in a document's financial metrics
// @Tags analysis
// @Accept  json
// @Produce  json
// @Param   request body dto.AnalysisRequest true "Document to analyze"
// @Success 200 {object} dto.AnomalyDetectionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /analysis/anomaly [post]
func (h *AnalysisHandler) DetectAnomalies(c echo.Context) error {
	var req dto.AnalysisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	resp, err := h.analysisService.DetectAnomalies(c.Request().Context(), req.DocumentID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Document not found"})
		}
		h.logger.Error("Failed to detect anomalies", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to detect anomalies"})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetAnalysisHistory godoc
// @Summary List analyses for a document
// @Description Get all stored analysis results for a document
// @Tags analysis
// @Produce  json
// @Param   id path int true "Document ID"
// @Success 200 {array} dto.AnalysisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /analysis/document/{id} [get]
func (h *AnalysisHandler) GetAnalysisHistory(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid document ID"})
	}

	results, err := h.analysisService.GetAnalysisHistory(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Document not found"})
		}
		h.logger.Error("Failed to get analysis history", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get analysis history"})
	}
	return c.JSON(http.StatusOK, results)
}
