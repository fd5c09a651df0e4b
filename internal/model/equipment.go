package model

import "time"

// Equipment type codes.
const (
	TypePC       = "PC"
	TypeMonitor  = "MONITOR"
	TypeKeyboard = "KEYBOARD"
	TypeMouse    = "MOUSE"
	TypeRouter   = "ROUTER"
	TypeSwitch   = "SWITCH"
	TypeServer   = "SERVER"
	TypeFan      = "FAN"
	TypeLight    = "LIGHT"
	TypeOther    = "OTHER"
)

// Equipment statuses. Every row holds exactly one of these, which is what the
// inventory counts key on.
const (
	StatusWorking     = "working"
	StatusNotWorking  = "not_working"
	StatusUnderRepair = "under_repair"
)

// EquipmentTypes lists the recognized type codes in declaration order.
var EquipmentTypes = []string{
	TypePC, TypeMonitor, TypeKeyboard, TypeMouse, TypeRouter,
	TypeSwitch, TypeServer, TypeFan, TypeLight, TypeOther,
}

// ValidEquipmentType reports whether t is a recognized type code.
func ValidEquipmentType(t string) bool {
	for _, known := range EquipmentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ValidEquipmentStatus reports whether s is a recognized status.
func ValidEquipmentStatus(s string) bool {
	return s == StatusWorking || s == StatusNotWorking || s == StatusUnderRepair
}

// Equipment represents a single tracked item in a lab.
type Equipment struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	LabID         int64     `gorm:"index;not null" json:"lab"`
	EquipmentType string    `gorm:"size:20;not null" json:"equipment_type"`
	Brand         string    `gorm:"size:128" json:"brand"`
	ModelName     string    `gorm:"size:128" json:"model_name"`
	SerialNumber  *string   `gorm:"uniqueIndex;size:128" json:"serial_number"`
	LocationInLab string    `gorm:"size:256" json:"location_in_lab"`
	Price         float64   `json:"price"`
	Status        string    `gorm:"size:20;not null;default:working" json:"status"`
	AddedOn       time.Time `gorm:"autoCreateTime" json:"added_on"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Associations
	Lab             Lab              `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	MaintenanceLogs []MaintenanceLog `gorm:"foreignKey:EquipmentID" json:"-"`
}
