package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/CuriouslyCory/snippit.fyi/internal/models"
)

const userIDKey = "userID"

// RequireAuth resolves the bearer API key to a user and aborts with 401 when
// it is missing or unknown.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := h.resolveAPIKey(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to perform this action."})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalAuth resolves the bearer API key when present and lets anonymous
// requests through.
func (h *Handler) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := h.resolveAPIKey(c); ok {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

func (h *Handler) resolveAPIKey(c *gin.Context) (uuid.UUID, bool) {
	header := c.GetHeader("Authorization")
	key, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || key == "" {
		return uuid.Nil, false
	}

	var user models.User
	if err := h.db.Where("api_key = ?", key).First(&user).Error; err != nil {
		return uuid.Nil, false
	}
	return user.ID, true
}

// currentUserID returns the authenticated user id, or nil for anonymous
// requests.
func currentUserID(c *gin.Context) *uuid.UUID {
	v, exists := c.Get(userIDKey)
	if !exists {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
