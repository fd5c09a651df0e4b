package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"labtrack-backend/internal/model"
	"labtrack-backend/internal/policy"
)

// Sentinel errors surfaced to the handler layer.
var (
	// ErrNotFound covers both a missing id and a record outside the actor's
	// visible set, so handlers can return 404 without disclosing existence.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyFixed is returned when resolving a maintenance log twice.
	ErrAlreadyFixed = errors.New("maintenance log already fixed")
)

// RefError marks a write that referenced a missing owning record. Field names
// the offending reference so handlers can produce field-level detail.
type RefError struct {
	Field string
}

func (e *RefError) Error() string { return e.Field + " not found" }

// Store defines the database operations behind the non-trivial endpoints.
// Plain CRUD handlers go through DB() directly.
type Store interface {
	DB() *gorm.DB

	ComputeInventory(ctx context.Context) ([]InventoryRow, error)

	ListMaintenance(ctx context.Context, actor *policy.Actor) ([]model.MaintenanceLog, error)
	GetMaintenance(ctx context.Context, actor *policy.Actor, id int64) (*model.MaintenanceLog, error)
	CreateMaintenance(ctx context.Context, actor *policy.Actor, input MaintenanceInput) (*model.MaintenanceLog, error)
	ResolveMaintenance(ctx context.Context, actor *policy.Actor, id int64, input ResolveInput) (*model.MaintenanceLog, error)
	DeleteMaintenance(ctx context.Context, id int64) error

	ListTickets(ctx context.Context, actor *policy.Actor) ([]model.Ticket, error)
	CreateTicket(ctx context.Context, actor *policy.Actor, input TicketInput) (*model.Ticket, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection for the thin CRUD handlers.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}
