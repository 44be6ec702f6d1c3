package preview

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler handles link-preview requests
type Handler struct {
	fetcher *Fetcher
}

// NewHandler creates a preview handler with the default fetch timeout
func NewHandler() *Handler {
	return &Handler{fetcher: NewFetcher(DefaultTimeout)}
}

// NewHandlerWithTimeout creates a preview handler with a custom timeout
func NewHandlerWithTimeout(timeout time.Duration) *Handler {
	return &Handler{fetcher: NewFetcher(timeout)}
}

// Get fetches preview metadata for the url query parameter
func (h *Handler) Get(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL parameter is required"})
		return
	}

	p, err := h.fetcher.Fetch(rawURL)
	if err != nil {
		var statusErr *StatusError
		switch {
		case errors.Is(err, ErrInvalidURL):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL format"})
		case errors.Is(err, ErrTimeout):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Request to the URL timed out"})
		case errors.As(err, &statusErr):
			c.JSON(http.StatusInternalServerError, gin.H{"error": statusErr.Error()})
		case errors.Is(err, ErrUnreachable):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No response received from the URL"})
		default:
			log.Printf("Preview fetch error for %s: %v", rawURL, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to generate link preview",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, p)
}

// RegisterRoutes registers preview routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/preview-link", h.Get)
}
