package model

import "time"

// PushSubscription holds the information for a browser push subscription.
// Subscribers pick the labs they want maintenance alerts for.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey" json:"endpoint"`
	P256DH    string    `gorm:"column:p256dh;not null" json:"p256dh"`
	Auth      string    `gorm:"not null" json:"auth"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	// Associations
	Labs []*Lab `gorm:"many2many:subscription_lab_mapping;" json:"-"`
}
