package model

import "time"

// PC represents a workstation installed in a lab.
type PC struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	LabID        int64     `gorm:"index;not null" json:"lab"`
	Name         string    `gorm:"size:128;not null" json:"name"`
	Status       string    `gorm:"size:64" json:"status"`
	Brand        string    `gorm:"size:128" json:"brand"`
	SerialNumber *string   `gorm:"uniqueIndex;size:128" json:"serial_number"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Associations
	Lab      Lab        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Software []Software `gorm:"foreignKey:PCID" json:"-"`
}
