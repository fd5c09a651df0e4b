package model

import "time"

// Lab represents a physical computer lab.
type Lab struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Location  string    `gorm:"size:256" json:"location"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	// Associations
	PCs       []PC        `gorm:"foreignKey:LabID" json:"-"`
	Equipment []Equipment `gorm:"foreignKey:LabID" json:"-"`
}
