package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CuriouslyCory/snippit.fyi/internal/apperrors"
)

// CreateSnipitInput DTO for creating a new snipit
type CreateSnipitInput struct {
	Prompt   string   `json:"prompt" binding:"required"`
	IsPublic bool     `json:"is_public"`
	Tags     []string `json:"tags"`
}

// CreateSnipit creates a new snipit owned by the requester.
func (h *Handler) CreateSnipit(c *gin.Context) {
	var input CreateSnipitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to perform this action."})
		return
	}

	snipit, err := h.snipits.Create(c.Request.Context(), *userID, input.Prompt, input.IsPublic, input.Tags)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snipit)
}

// GetSnipit retrieves a single snipit by its ID.
func (h *Handler) GetSnipit(c *gin.Context) {
	id, ok := snipitIDParam(c)
	if !ok {
		return
	}
	snipit, err := h.snipits.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snipit)
}

// DeleteSnipit deletes a snipit the requester created.
func (h *Handler) DeleteSnipit(c *gin.Context) {
	id, ok := snipitIDParam(c)
	if !ok {
		return
	}
	userID := currentUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to perform this action."})
		return
	}
	if err := h.snipits.Delete(c.Request.Context(), *userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CheckSnipit acknowledges a snipit for the requester.
func (h *Handler) CheckSnipit(c *gin.Context) {
	id, ok := snipitIDParam(c)
	if !ok {
		return
	}
	userID := currentUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to perform this action."})
		return
	}
	if err := h.ledger.Check(c.Request.Context(), *userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SkipSnipit dismisses a snipit for the requester. Skipping a snipit that is
// already noped reports success.
func (h *Handler) SkipSnipit(c *gin.Context) {
	id, ok := snipitIDParam(c)
	if !ok {
		return
	}
	userID := currentUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to perform this action."})
		return
	}
	err := h.ledger.Skip(c.Request.Context(), *userID, id)
	if err != nil && !errors.Is(err, apperrors.ErrConflict) {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
