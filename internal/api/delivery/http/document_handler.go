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

// DocumentHandler handles HTTP requests for documents.
type DocumentHandler struct {
	documentService service.DocumentService
	logger          *logger.Logger
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService, logger *logger.Logger) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, logger: logger}
}

// RegisterRoutes registers the document routes to the Echo group.
func (h *DocumentHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/upload", h.UploadDocument)
	g.GET("", h.GetDocuments)
	g.GET("/:id", h.GetDocument)
	g.DELETE("/:id", h.DeleteDocument)
}

// UploadDocument godoc
// @Summary Upload a financial document
// @Description Upload a financial document and extract its text for analysis
// @Tags documents
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Document to upload"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /documents/upload [post]
func (h *DocumentHandler) UploadDocument(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing file in request"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Failed to read uploaded file"})
	}
	defer src.Close()

	doc, err := h.documentService.Upload(c.Request().Context(), fileHeader.Filename, fileHeader.Size, src)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFileType) || errors.Is(err, service.ErrFileTooLarge) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		h.logger.Error("Failed to upload document", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to upload document"})
	}

	return c.JSON(http.StatusOK, doc)
}

// GetDocuments godoc
// @Summary List uploaded documents
// @Description Get all uploaded documents with offset pagination
// @Tags documents
// @Produce  json
// @Param   skip  query int false "Rows to skip"
// @Param   limit query int false "Maximum rows to return"
// @Success 200 {array} dto.DocumentResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /documents [get]
func (h *DocumentHandler) GetDocuments(c echo.Context) error {
	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	docs, err := h.documentService.GetAll(c.Request().Context(), skip, limit)
	if err != nil {
		h.logger.Error("Failed to list documents", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get documents"})
	}
	return c.JSON(http.StatusOK, docs)
}

// GetDocument godoc
// @Summary Get a document by ID
// @Description Get a single document with its extracted content
// @Tags documents
// @Produce  json
// @Param   id path int true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid document ID"})
	}

	doc, err := h.documentService.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Document not found"})
		}
		h.logger.Error("Failed to get document", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get document"})
	}
	return c.JSON(http.StatusOK, doc)
}

// DeleteDocument godoc
// @Summary Delete a document
// @Description Delete a document, its stored file and dependent analyses
// @Tags documents
// @Produce  json
// @Param   id path int true "Document ID"
// @Success 200 {object} dto.DeleteDocumentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid document ID"})
	}

	if err := h.documentService.Delete(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Document not found"})
		}
		h.logger.Error("Failed to delete document", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete document"})
	}

	return c.JSON(http.StatusOK, dto.DeleteDocumentResponse{Message: "Document deleted successfully"})
}
