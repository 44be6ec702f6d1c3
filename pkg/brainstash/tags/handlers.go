package tags

import (
	"net/http"

	"github.com/brainstash/brainstash/pkg/brainstash/auth"
	"github.com/brainstash/brainstash/pkg/brainstash/database"
	"github.com/brainstash/brainstash/pkg/brainstash/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles tag-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new tags handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateTagRequest represents the request to create a tag
type CreateTagRequest struct {
	Title string `json:"title" binding:"required,min=1"`
}

// DeleteTagRequest carries the id of the tag to delete
type DeleteTagRequest struct {
	TagID uint `json:"tagId" binding:"required"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	UserID    uint   `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

func tagToResponse(tag models.Tag) TagResponse {
	return TagResponse{
		ID:        tag.ID,
		Title:     tag.Title,
		UserID:    tag.UserID,
		CreatedAt: tag.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// Create creates a tag for the caller. The (title, user) unique
// index makes duplicates a conflict, including ones that slip past
// the pre-check under concurrency.
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Tag
	if err := h.db.Where("title = ? AND user_id = ?", req.Title, userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Tag with this title already exists for this user"})
		return
	}

	tag := models.Tag{Title: req.Title, UserID: userID}
	if err := h.db.Create(&tag).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Tag with this title already exists for this user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tag created successfully",
		"tag":     tagToResponse(tag),
	})
}

// Get looks up one of the caller's tags by exact title. A title
// owned by another user looks the same as one that does not exist.
func (h *Handler) Get(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	title := c.Param("title")

	var tag models.Tag
	if err := h.db.Where("title = ? AND user_id = ?", title, userID).First(&tag).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found or you do not have permission to access it"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tag": tagToResponse(tag)})
}

// Delete removes one of the caller's tags. Join rows on content are
// left as-is; stale references drop out of joined reads.
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req DeleteTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.db.Where("id = ? AND user_id = ?", req.TagID, userID).Delete(&models.Tag{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found or you do not have permission to delete it"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}

// RegisterRoutes registers tag routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tag", h.Create)
	rg.GET("/tag/:title", h.Get)
	rg.DELETE("/tag", h.Delete)
}
