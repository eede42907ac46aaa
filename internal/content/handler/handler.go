package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ng-portfolio/backend/internal/content"
	"github.com/ng-portfolio/backend/internal/content/service"
	"github.com/ng-portfolio/backend/pkg/logger"
	"github.com/ng-portfolio/backend/pkg/metrics"
)

// Handler serves the portfolio content API. devMode controls whether internal
// error detail is echoed to clients.
type Handler struct {
	svc     service.Service
	devMode bool
}

func New(svc service.Service, devMode bool) *Handler {
	return &Handler{svc: svc, devMode: devMode}
}

// Register mounts the content routes under /api/portfolio.
func (h *Handler) Register(r *gin.Engine) {
	grp := r.Group("/api/portfolio")
	grp.GET("/data", h.GetData)
	grp.POST("/data", h.SaveData)
	grp.POST("/reset", h.ResetData)
}

func (h *Handler) errorMessage(err error) string {
	if h.devMode {
		return err.Error()
	}
	return "Something went wrong"
}

// GetData returns the stored document. It never 404s: an absent record is
// served as the built-in default document.
func (h *Handler) GetData(c *gin.Context) {
	doc, err := h.svc.Load()
	if err != nil {
		logger.Errorf("error reading portfolio data: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve portfolio data",
			"message": h.errorMessage(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": doc})
}

// SaveData replaces the whole stored document. Only name and email are
// validated; collections are persisted as sent.
func (h *Handler) SaveData(c *gin.Context) {
	doc := &content.PortfolioContent{}
	if err := c.ShouldBindJSON(doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	saved, err := h.svc.Save(doc)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Missing required fields",
				"message": "Name and email are required",
			})
			return
		}
		logger.Errorf("error saving portfolio data: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to save portfolio data",
			"message": h.errorMessage(err),
		})
		return
	}

	metrics.ContentSaves.Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Portfolio data saved successfully",
		"data":    saved,
	})
}

// ResetData overwrites the stored document with the built-in default.
func (h *Handler) ResetData(c *gin.Context) {
	doc, err := h.svc.Reset()
	if err != nil {
		logger.Errorf("error resetting portfolio data: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to reset portfolio data",
			"message": h.errorMessage(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Portfolio data reset to defaults",
		"data":    doc,
	})
}
