package model

import "time"

// Software represents a software installation on a PC.
type Software struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	PCID       int64      `gorm:"index;not null;column:pc_id" json:"pc"`
	Name       string     `gorm:"size:128;not null" json:"name"`
	Version    string     `gorm:"size:64" json:"version"`
	LicenseKey string     `gorm:"size:256" json:"license_key"`
	ExpiryDate *time.Time `json:"expiry_date"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Associations
	PC PC `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
