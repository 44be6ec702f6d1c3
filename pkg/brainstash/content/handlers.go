package content

import (
	"net/http"

	"github.com/brainstash/brainstash/pkg/brainstash/auth"
	"github.com/brainstash/brainstash/pkg/brainstash/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles content-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new content handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateContentRequest represents the request to save a content item
type CreateContentRequest struct {
	Link          string `json:"link" binding:"required"`
	TypeOfContent string `json:"typeofContent" binding:"required"`
	Title         string `json:"title" binding:"required"`
	Tags          []uint `json:"tags"`
}

// DeleteContentRequest carries the id of the item to delete
type DeleteContentRequest struct {
	ContentID uint `json:"contentId" binding:"required"`
}

// TagRef is a tag reference in content responses
type TagRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// OwnerRef is the minimal owner metadata attached to content responses
type OwnerRef struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// ContentResponse represents a content item in API responses, with
// tag titles and owner username expanded for display
type ContentResponse struct {
	ID            uint     `json:"id"`
	Link          string   `json:"link"`
	TypeOfContent string   `json:"typeofContent"`
	Title         string   `json:"title"`
	Tags          []TagRef `json:"tags"`
	User          OwnerRef `json:"user"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// ToResponse shapes a content item for API responses. Dangling tag
// references (ids that never resolved to a tag row) have already
// dropped out during preload.
func ToResponse(item models.Content) ContentResponse {
	tags := make([]TagRef, len(item.Tags))
	for i, t := range item.Tags {
		tags[i] = TagRef{ID: t.ID, Title: t.Title}
	}
	return ContentResponse{
		ID:            item.ID,
		Link:          item.Link,
		TypeOfContent: string(item.TypeOfContent),
		Title:         item.Title,
		Tags:          tags,
		User:          OwnerRef{ID: item.User.ID, Username: item.User.Username},
		CreatedAt:     item.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:     item.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ListForUser returns all of a user's content items, newest first,
// with tags and owner preloaded
func ListForUser(db *gorm.DB, userID uint) ([]ContentResponse, error) {
	var items []models.Content
	err := db.Where("user_id = ?", userID).
		Preload("Tags").
		Preload("User").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	responses := make([]ContentResponse, len(items))
	for i, item := range items {
		responses[i] = ToResponse(item)
	}
	return responses, nil
}

// Create saves a new content item
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contentType, ok := models.ParseContentType(req.TypeOfContent)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content type. Must be 'link', 'image', 'video', or 'text'"})
		return
	}

	for _, tagID := range req.Tags {
		if tagID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
			return
		}
	}

	item := models.Content{
		Link:          req.Link,
		TypeOfContent: contentType,
		Title:         req.Title,
		UserID:        userID,
	}

	// Tag references stay soft: join rows are written as given, with
	// no existence or ownership check on the ids.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		for _, tagID := range req.Tags {
			if err := tx.Create(&models.ContentTag{ContentID: item.ID, TagID: tagID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add content"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Content added successfully",
		"contentId": item.ID,
	})
}

// List returns all content owned by the caller
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	responses, err := ListForUser(h.db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": responses})
}

// Delete removes a content item. Scoped to the caller: an id owned
// by someone else looks exactly like an id that does not exist.
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req DeleteContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.db.Where("id = ? AND user_id = ?", req.ContentID, userID).Delete(&models.Content{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete content"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found or you do not have permission to delete it"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content deleted successfully"})
}

// RegisterRoutes registers content routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/content", h.Create)
	rg.GET("/content", h.List)
	rg.DELETE("/content", h.Delete)
}
