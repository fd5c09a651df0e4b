package model

import "time"

// Roles a user account can hold. The role is fixed at creation and travels
// with the access token, so handlers never re-read it from the database.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// User represents an account that can authenticate against the API.
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:128;not null" json:"username"`
	Email     string    `gorm:"size:256" json:"email"`
	Password  string    `gorm:"size:256;not null" json:"-"`
	FirstName string    `gorm:"size:128" json:"first_name"`
	LastName  string    `gorm:"size:128" json:"last_name"`
	Role      string    `gorm:"size:20;not null;default:student" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
