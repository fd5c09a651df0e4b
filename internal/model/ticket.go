package model

import "time"

// Ticket statuses.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
)

// Ticket is a student-raised issue report, optionally tied to a PC.
type Ticket struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	StudentID        int64     `gorm:"index;not null" json:"student"`
	PCID             *int64    `gorm:"column:pc_id" json:"pc"`
	IssueDescription string    `gorm:"not null" json:"issue_description"`
	Status           string    `gorm:"size:20;not null;default:open" json:"status"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`

	// Associations
	Student User `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	PC      *PC  `gorm:"foreignKey:PCID;constraint:OnDelete:CASCADE" json:"-"`
}
