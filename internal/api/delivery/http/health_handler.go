package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves liveness probes.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// RegisterRoutes registers the health routes to the Echo instance.
func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Info)
	e.GET("/health", h.Check)
}

// Info godoc
// @Summary Service info
// @Description Report service name, version and docs location
// @Tags health
// @Produce  json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *HealthHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "FinDocGPT API",
		"version": "1.0.0",
		"docs":    "/swagger/index.html",
	})
}

// Check godoc
// @Summary Liveness probe
// @Description Report service health
// @Tags health
// @Produce  json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": "findocgpt-api",
	})
}
