package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetInventory returns the computed inventory: one row per (lab, type) pair
// with equipment present, counted by status. The projection is recomputed
// from the equipment table on every request and never stored.
func (h *Handler) GetInventory(c *gin.Context) {
	rows, err := h.store.ComputeInventory(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute inventory"})
		return
	}
	c.JSON(http.StatusOK, rows)
}
