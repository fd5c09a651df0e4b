package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"labtrack-backend/internal/model"
	"labtrack-backend/internal/policy"
)

// TicketInput is the client-controllable part of a new ticket. The owning
// student, status and timestamps are set by the server.
type TicketInput struct {
	PCID             *int64 `json:"pc"`
	IssueDescription string `json:"issue_description" binding:"required"`
}

// ListTickets returns the tickets visible to the actor: admins see all,
// everyone else sees only tickets they raised.
func (s *gormStore) ListTickets(ctx context.Context, actor *policy.Actor) ([]model.Ticket, error) {
	var tickets []model.Ticket
	q := s.db.WithContext(ctx)
	if !actor.IsAdmin() {
		q = q.Where("student_id = ?", actor.ID)
	}
	if err := q.Order("id").Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

// CreateTicket persists a new ticket owned by the acting user, in the open
// state, regardless of what the client supplied.
func (s *gormStore) CreateTicket(ctx context.Context, actor *policy.Actor, input TicketInput) (*model.Ticket, error) {
	if input.PCID != nil {
		var pc model.PC
		if err := s.db.WithContext(ctx).First(&pc, *input.PCID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &RefError{Field: "pc"}
			}
			return nil, fmt.Errorf("failed to resolve pc %d: %w", *input.PCID, err)
		}
	}

	ticket := model.Ticket{
		StudentID:        actor.ID,
		PCID:             input.PCID,
		IssueDescription: input.IssueDescription,
		Status:           model.TicketOpen,
	}
	if err := s.db.WithContext(ctx).Create(&ticket).Error; err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	return &ticket, nil
}
