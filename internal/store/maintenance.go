package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"labtrack-backend/internal/model"
	"labtrack-backend/internal/policy"
)

// MaintenanceInput is the client-controllable part of a new maintenance log.
// Ownership, status and the resolution fields are always derived server-side.
type MaintenanceInput struct {
	EquipmentID      int64  `json:"equipment" binding:"required"`
	IssueDescription string `json:"issue_description"`
	StatusBefore     string `json:"status_before"`
	Remarks          string `json:"remarks"`
}

// ResolveInput carries an admin's resolution of a maintenance log.
type ResolveInput struct {
	StatusAfter string `json:"status_after" binding:"required"`
	Remarks     string `json:"remarks"`
}

// scopeMaintenance restricts the query to the actor's visible set: students
// see only their own reports, admins see everything.
func scopeMaintenance(q *gorm.DB, actor *policy.Actor) *gorm.DB {
	if actor.IsAdmin() {
		return q
	}
	return q.Where("reported_by_id = ?", actor.ID)
}

// ListMaintenance returns the maintenance logs visible to the actor.
func (s *gormStore) ListMaintenance(ctx context.Context, actor *policy.Actor) ([]model.MaintenanceLog, error) {
	var logs []model.MaintenanceLog
	q := scopeMaintenance(s.db.WithContext(ctx), actor)
	if err := q.Order("id").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list maintenance logs: %w", err)
	}
	return logs, nil
}

// GetMaintenance fetches a single log, intersecting the id lookup with the
// actor's visible set so an unowned id reads as not found.
func (s *gormStore) GetMaintenance(ctx context.Context, actor *policy.Actor, id int64) (*model.MaintenanceLog, error) {
	var log model.MaintenanceLog
	q := scopeMaintenance(s.db.WithContext(ctx), actor)
	if err := q.First(&log, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch maintenance log %d: %w", id, err)
	}
	return &log, nil
}

// CreateMaintenance persists a new fault report. Client-supplied values for
// reporter, status and the resolution fields are discarded by construction:
// the input type simply does not carry them.
func (s *gormStore) CreateMaintenance(ctx context.Context, actor *policy.Actor, input MaintenanceInput) (*model.MaintenanceLog, error) {
	var equipment model.Equipment
	if err := s.db.WithContext(ctx).First(&equipment, input.EquipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &RefError{Field: "equipment"}
		}
		return nil, fmt.Errorf("failed to resolve equipment %d: %w", input.EquipmentID, err)
	}

	statusBefore := input.StatusBefore
	if statusBefore == "" {
		statusBefore = equipment.Status
	}
	if !model.ValidEquipmentStatus(statusBefore) {
		return nil, &RefError{Field: "status_before"}
	}

	reporterID := actor.ID
	log := model.MaintenanceLog{
		EquipmentID:      equipment.ID,
		ReportedByID:     &reporterID,
		IssueDescription: input.IssueDescription,
		StatusBefore:     statusBefore,
		Status:           model.MaintenancePending,
		Remarks:          input.Remarks,
	}
	if err := s.db.WithContext(ctx).Create(&log).Error; err != nil {
		return nil, fmt.Errorf("failed to create maintenance log: %w", err)
	}
	return &log, nil
}

// ResolveMaintenance marks a pending log as fixed and moves the owning
// equipment to the reported after-status in a single transaction, so the log
// and the equipment can never disagree.
func (s *gormStore) ResolveMaintenance(ctx context.Context, actor *policy.Actor, id int64, input ResolveInput) (*model.MaintenanceLog, error) {
	if !model.ValidEquipmentStatus(input.StatusAfter) {
		return nil, &RefError{Field: "status_after"}
	}

	var log model.MaintenanceLog
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&log, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to fetch maintenance log %d: %w", id, err)
		}
		if log.Status == model.MaintenanceFixed {
			return ErrAlreadyFixed
		}

		now := time.Now()
		fixerID := actor.ID
		log.Status = model.MaintenanceFixed
		log.StatusAfter = &input.StatusAfter
		log.FixedByID = &fixerID
		log.FixedOn = &now
		if input.Remarks != "" {
			log.Remarks = input.Remarks
		}
		if err := tx.Save(&log).Error; err != nil {
			return fmt.Errorf("failed to update maintenance log %d: %w", id, err)
		}

		if err := tx.Model(&model.Equipment{}).
			Where("id = ?", log.EquipmentID).
			Update("status", input.StatusAfter).Error; err != nil {
			return fmt.Errorf("failed to update equipment %d status: %w", log.EquipmentID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// DeleteMaintenance removes a log by id.
func (s *gormStore) DeleteMaintenance(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.MaintenanceLog{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete maintenance log %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
