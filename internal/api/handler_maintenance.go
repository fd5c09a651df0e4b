package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"labtrack-backend/internal/mw"
	"labtrack-backend/internal/store"
)

// ListMaintenance returns the maintenance logs visible to the actor: students
// see their own reports, admins see everything.
func (h *Handler) ListMaintenance(c *gin.Context) {
	logs, err := h.store.ListMaintenance(c.Request.Context(), mw.Actor(c))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// CreateMaintenance records a new fault report owned by the actor and queues
// a push alert for subscribers of the affected lab.
func (h *Handler) CreateMaintenance(c *gin.Context) {
	var input store.MaintenanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := h.store.CreateMaintenance(c.Request.Context(), mw.Actor(c), input)
	if err != nil {
		storeError(c, err)
		return
	}

	if h.workers != nil {
		h.workers.Dispatch(log.ID)
	}
	c.JSON(http.StatusCreated, log)
}

// GetMaintenance returns one log from the actor's visible set. Ids outside
// it read as 404, never 403.
func (h *Handler) GetMaintenance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	log, err := h.store.GetMaintenance(c.Request.Context(), mw.Actor(c), id)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// ResolveMaintenance marks a log fixed and moves the equipment to the
// after-status atomically. Admin-gated by the route policy.
func (h *Handler) ResolveMaintenance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input store.ResolveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, err := h.store.ResolveMaintenance(c.Request.Context(), mw.Actor(c), id, input)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// DeleteMaintenance removes a log. Admin-gated by the route policy.
func (h *Handler) DeleteMaintenance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteMaintenance(c.Request.Context(), id); err != nil {
		storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
