package model

import "time"

// Maintenance log statuses.
const (
	MaintenancePending = "pending"
	MaintenanceFixed   = "fixed"
)

// MaintenanceLog records a reported fault on a piece of equipment and its
// eventual resolution. ReportedBy, Status and the resolution fields are owned
// by the server: clients can never supply them on create.
type MaintenanceLog struct {
	ID               int64      `gorm:"primaryKey" json:"id"`
	EquipmentID      int64      `gorm:"index;not null" json:"equipment"`
	ReportedByID     *int64     `gorm:"index" json:"reported_by"`
	FixedByID        *int64     `json:"fixed_by"`
	IssueDescription string     `json:"issue_description"`
	StatusBefore     string     `gorm:"size:20;not null" json:"status_before"`
	StatusAfter      *string    `gorm:"size:20" json:"status_after"`
	Status           string     `gorm:"size:20;not null;default:pending" json:"status"`
	ReportedOn       time.Time  `gorm:"autoCreateTime" json:"reported_on"`
	FixedOn          *time.Time `json:"fixed_on"`
	Remarks          string     `json:"remarks"`

	// Associations. User references are nulled when the user is deleted so the
	// audit trail outlives the account.
	Equipment  Equipment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ReportedBy *User     `gorm:"foreignKey:ReportedByID;constraint:OnDelete:SET NULL" json:"-"`
	FixedBy    *User     `gorm:"foreignKey:FixedByID;constraint:OnDelete:SET NULL" json:"-"`
}
