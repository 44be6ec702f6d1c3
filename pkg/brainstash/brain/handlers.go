package brain

import (
	"errors"
	"log"
	"net/http"

	"github.com/brainstash/brainstash/pkg/brainstash/auth"
	"github.com/brainstash/brainstash/pkg/brainstash/content"
	"github.com/brainstash/brainstash/pkg/brainstash/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles share-link requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new brain handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ShareRequest toggles public sharing on or off
type ShareRequest struct {
	Share *bool `json:"share" binding:"required"`
}

// ShareBrain enables or disables the caller's public share link
func (h *Handler) ShareBrain(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !*req.Share {
		if err := DisableSharing(h.db, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disable sharing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Sharing disabled"})
		return
	}

	token, _, err := EnableSharing(h.db, userID)
	if err != nil {
		if errors.Is(err, ErrTokenCollision) {
			c.JSON(http.StatusConflict, gin.H{"error": "Share link unavailable, token already in use"})
			return
		}
		log.Printf("Share issuance error for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enable sharing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shareLink": token})
}

// GetSharedBrain resolves a share token to the owner's full content
// listing. The token itself is the capability; no authentication is
// required. An unknown token is a plain 404.
func (h *Handler) GetSharedBrain(c *gin.Context) {
	token := c.Param("shareLink")

	var link models.ShareLink
	if err := h.db.Preload("User").Where("token = ?", token).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Share link not found"})
		return
	}

	items, err := content.ListForUser(h.db, link.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve shared content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username": link.User.Username,
		"content":  items,
	})
}

// RegisterRoutes registers the authenticated share toggle route
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/brain/share", h.ShareBrain)
}

// RegisterPublicRoutes registers the unauthenticated resolution route
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/brain/:shareLink", h.GetSharedBrain)
}
