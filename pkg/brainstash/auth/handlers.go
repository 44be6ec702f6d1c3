package auth

import (
	"net/http"
	"strings"

	"github.com/brainstash/brainstash/pkg/brainstash/database"
	"github.com/brainstash/brainstash/pkg/brainstash/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles authentication requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new auth handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CredentialsRequest is the body for both signup and signin
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// validateCredentials normalizes the username (lowercase, trimmed)
// and returns field-level validation messages, if any.
func validateCredentials(req *CredentialsRequest) []string {
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))

	var errs []string
	if len(req.Username) < 3 {
		errs = append(errs, "Username must be at least 3 characters long")
	}
	if len(req.Password) < 6 {
		errs = append(errs, "Password must be at least 6 characters long")
	}
	return errs
}

// Signup handles user registration
func (h *Handler) Signup(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{err.Error()}})
		return
	}

	if errs := validateCredentials(&req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": errs})
		return
	}

	// Check if username already exists
	var existing models.User
	if err := h.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
	}
	if err := h.db.Create(&user).Error; err != nil {
		// A concurrent signup can still win the unique index race
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred during signup"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User signed up successfully"})
}

// Signin handles user login. Unknown usernames and wrong passwords
// yield the same response so callers cannot enumerate accounts.
func (h *Handler) Signin(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{err.Error()}})
		return
	}

	if errs := validateCredentials(&req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": errs})
		return
	}

	var user models.User
	if err := h.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
		return
	}

	if !CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
		return
	}

	token, err := GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token})
}

// RegisterRoutes registers auth routes on the given router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/signup", h.Signup)
	rg.POST("/signin", h.Signin)
}
