package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"labtrack-backend/internal/mw"
	"labtrack-backend/internal/store"
)

// CreateTicket raises a ticket owned by the acting user. Client-supplied
// owner or status values never reach the store.
func (h *Handler) CreateTicket(c *gin.Context) {
	var input store.TicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.store.CreateTicket(c.Request.Context(), mw.Actor(c), input)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// ListTickets returns the actor's tickets, or all tickets for an admin.
func (h *Handler) ListTickets(c *gin.Context) {
	tickets, err := h.store.ListTickets(c.Request.Context(), mw.Actor(c))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}
