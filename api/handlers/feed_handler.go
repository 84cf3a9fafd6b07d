package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CuriouslyCory/snippit.fyi/internal/models"
)

// GetNextSnipit serves the next card for the requester's feed. Anonymous
// requests are allowed on the focus feed only. A null snipit in the response
// means the pool is empty, which is not an error.
func (h *Handler) GetNextSnipit(c *gin.Context) {
	mode := models.FeedMode(c.DefaultQuery("feed", string(models.FeedModeFocus)))

	var excludeID *uint
	if not := c.Query("not"); not != "" {
		id, err := strconv.ParseUint(not, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid snipit id in 'not'."})
			return
		}
		v := uint(id)
		excludeID = &v
	}

	snipit, err := h.selector.GetNext(c.Request.Context(), currentUserID(c), mode, excludeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snipit": snipit})
}
