package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appdb "labtrack-backend/internal/db"
	"labtrack-backend/internal/model"
	"labtrack-backend/internal/policy"
)

// newTestDB opens a private in-memory database and runs migrations.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:store_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, appdb.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Password: "x", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedLab(t *testing.T, db *gorm.DB, name string) *model.Lab {
	t.Helper()
	lab := &model.Lab{Name: name}
	require.NoError(t, db.Create(lab).Error)
	return lab
}

func seedEquipment(t *testing.T, db *gorm.DB, labID int64, equipmentType, status string) *model.Equipment {
	t.Helper()
	e := &model.Equipment{LabID: labID, EquipmentType: equipmentType, Status: status}
	require.NoError(t, db.Create(e).Error)
	return e
}

func actorFor(u *model.User) *policy.Actor {
	return &policy.Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}

func TestComputeInventory(t *testing.T) {
	db := newTestDB(t)
	s := NewGormStore(db)

	l1 := seedLab(t, db, "L1")
	l2 := seedLab(t, db, "L2")
	l3 := seedLab(t, db, "L3") // no equipment at all

	seedEquipment(t, db, l1.ID, model.TypeMonitor, model.StatusWorking)
	seedEquipment(t, db, l1.ID, model.TypeMonitor, model.StatusWorking)
	seedEquipment(t, db, l1.ID, model.TypeMonitor, model.StatusNotWorking)
	seedEquipment(t, db, l1.ID, model.TypePC, model.StatusUnderRepair)
	seedEquipment(t, db, l2.ID, model.TypeRouter, model.StatusWorking)

	rows, err := s.ComputeInventory(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Rows are ordered by lab, then equipment type.
	assert.Equal(t, InventoryRow{
		LabID: l1.ID, LabName: "L1", EquipmentType: model.TypeMonitor,
		Total: 3, Working: 2, NotWorking: 1, UnderRepair: 0,
	}, rows[0])
	assert.Equal(t, InventoryRow{
		LabID: l1.ID, LabName: "L1", EquipmentType: model.TypePC,
		Total: 1, Working: 0, NotWorking: 0, UnderRepair: 1,
	}, rows[1])
	assert.Equal(t, InventoryRow{
		LabID: l2.ID, LabName: "L2", EquipmentType: model.TypeRouter,
		Total: 1, Working: 1, NotWorking: 0, UnderRepair: 0,
	}, rows[2])

	// Per-status counts always sum to the total, and empty (lab, type)
	// pairs never produce a row.
	for _, row := range rows {
		assert.Equal(t, row.Total, row.Working+row.NotWorking+row.UnderRepair)
		assert.NotEqual(t, l3.ID, row.LabID)
	}
}

func TestComputeInventoryEmptyStore(t *testing.T) {
	db := newTestDB(t)
	s := NewGormStore(db)

	rows, err := s.ComputeInventory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestComputeInventoryReflectsCurrentState(t *testing.T) {
	db := newTestDB(t)
	s := NewGormStore(db)

	lab := seedLab(t, db, "L1")
	e := seedEquipment(t, db, lab.ID, model.TypeServer, model.StatusWorking)

	rows, err := s.ComputeInventory(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].Working)

	// No caching: a status flip shows up on the very next read.
	require.NoError(t, db.Model(e).Update("status", model.StatusNotWorking).Error)

	rows, err = s.ComputeInventory(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(0), rows[0].Working)
	assert.Equal(t, int64(1), rows[0].NotWorking)
}

func TestCreateMaintenanceForcesServerFields(t *testing.T) {
	db := newTestDB(t)
	s := NewGormStore(db)

	student := seedUser(t, db, "sam", model.RoleStudent)
	lab := seedLab(t, db, "L1")
	equipment := seedEquipment(t, db, lab.ID, model.TypeMonitor, model.StatusNotWorking)

	created, err := s.CreateMaintenance(context.Background(), actorFor(student), MaintenanceInput{
		EquipmentID:      equipment.ID,
		IssueDescription: "screen flickers",
	})
	require.NoError(t, err)

	var persisted model.MaintenanceLog
	require.NoError(t, db.First(&persisted, created.ID).Error)

	assert.Equal(t, model.MaintenancePending, persisted.Status)
	require.NotNil(t, persisted.ReportedByID)
	assert.Equal(t, student.ID, *persisted.ReportedByID)
	assert.Nil(t, persisted.FixedByID)
	assert.Nil(t, persisted.FixedOn)
	assert.Nil(t, persisted.StatusAfter)
	// status_before defaults to the equipment's current status.
	assert.Equal(t, model.StatusNotWorking, persisted.StatusBefore)
}

func TestCreateMaintenanceUnknownEquipment(t *testing.T) {
	db := newTestDB(t)
	s := NewGormStore(db)
	student := seedUser(t, db, "sam", model.RoleStudent)

	_, err := s.CreateMaintenance(context.Background(), actorFor(student), MaintenanceInput{
		EquipmentID: 9999,
	})
	var ref *RefError
	require.ErrorAs(t, err, &ref)
	assert.Equal(t, "equipment", ref.Field)
}

func TestMaintenanceVisibilityScoping(t *testing.T) {
	db := newTestDB(t)
	s := NewGormStore(db)

	sam := seedUser(t, db, "sam", model.RoleStudent)
	kim := seedUser(t, db, "kim", model.RoleStudent)
	admin := seedUser(t, db, "root", model.RoleAdmin)
	lab := seedLab(t, db, "L1")
	equipment := seedEquipment(t, db, lab.ID, model.TypeKeyboard, model.StatusWorking)

	samLog, err := s.CreateMaintenance(context.Background(), actorFor(sam), MaintenanceInput{
		EquipmentID: equipment.ID, IssueDescription: "keys stuck",
	})
	require.NoError(t, err)
	kimLog, err := s.CreateMaintenance(context.Background(), actorFor(kim), MaintenanceInput{
		EquipmentID: equipment.ID, IssueDescription: "cable frayed",
	})
	require.NoError(t, err)

	samVisible, err := s.ListMaintenance(context.Background(), actorFor(sam))
	require.NoError(t, err)
	require.Len(t, samVisible, 1)
	assert.Equal(t, samLog.ID, samVisible[0].ID)

	all, err := s.ListMaintenance(context.Background(), actorFor(admin))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// An unowned id reads as not found, never as forbidden.
	_, err = s.GetMaintenance(context.Background(), actorFor(sam), kimLog.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.GetMaintenance(context.Background(), actorFor(admin), kimLog.ID)
	require.NoError(t, err)
	assert.Equal(t, kimLog.ID, got.ID)
}

func TestResolveMaintenance(t *testing.T) {
	db := newTestDB(t)
	s := NewGormStore(db)

	student := seedUser(t, db, "sam", model.RoleStudent)
	admin := seedUser(t, db, "root", model.RoleAdmin)
	lab := seedLab(t, db, "L1")
	equipment := seedEquipment(t, db, lab.ID, model.TypeMonitor, model.StatusNotWorking)

	created, err := s.CreateMaintenance(context.Background(), actorFor(student), MaintenanceInput{
		EquipmentID: equipment.ID, IssueDescription: "dead pixels",
	})
	require.NoError(t, err)

	resolved, err := s.ResolveMaintenance(context.Background(), actorFor(admin), created.ID, ResolveInput{
		StatusAfter: model.StatusWorking,
		Remarks:     "panel replaced",
	})
	require.NoError(t, err)

	assert.Equal(t, model.MaintenanceFixed, resolved.Status)
	require.NotNil(t, resolved.FixedByID)
	assert.Equal(t, admin.ID, *resolved.FixedByID)
	require.NotNil(t, resolved.StatusAfter)
	assert.Equal(t, model.StatusWorking, *resolved.StatusAfter)
	assert.NotNil(t, resolved.FixedOn)

	// The equipment moved to the after-status in the same transaction.
	var refreshed model.Equipment
	require.NoError(t, db.First(&refreshed, equipment.ID).Error)
	assert.Equal(t, model.StatusWorking, refreshed.Status)

	// A fixed log cannot be resolved again.
	_, err = s.ResolveMaintenance(context.Background(), actorFor(admin), created.ID, ResolveInput{
		StatusAfter: model.StatusWorking,
	})
	assert.ErrorIs(t, err, ErrAlreadyFixed)
}

func TestResolveMaintenanceInvalidStatus(t *testing.T) {
	db := newTestDB(t)
	s := NewGormStore(db)
	admin := seedUser(t, db, "root", model.RoleAdmin)

	_, err := s.ResolveMaintenance(context.Background(), actorFor(admin), 1, ResolveInput{
		StatusAfter: "exploded",
	})
	var ref *RefError
	require.ErrorAs(t, err, &ref)
	assert.Equal(t, "status_after", ref.Field)
}

func TestDeleteMaintenanceNotFound(t *testing.T) {
	db := newTestDB(t)
	s := NewGormStore(db)

	err := s.DeleteMaintenance(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTicketOwnershipScoping(t *testing.T) {
	db := newTestDB(t)
	s := NewGormStore(db)

	sam := seedUser(t, db, "sam", model.RoleStudent)
	kim := seedUser(t, db, "kim", model.RoleStudent)
	admin := seedUser(t, db, "root", model.RoleAdmin)

	samTicket, err := s.CreateTicket(context.Background(), actorFor(sam), TicketInput{
		IssueDescription: "cannot log in",
	})
	require.NoError(t, err)
	_, err = s.CreateTicket(context.Background(), actorFor(kim), TicketInput{
		IssueDescription: "no network",
	})
	require.NoError(t, err)

	assert.Equal(t, sam.ID, samTicket.StudentID)
	assert.Equal(t, model.TicketOpen, samTicket.Status)

	samVisible, err := s.ListTickets(context.Background(), actorFor(sam))
	require.NoError(t, err)
	require.Len(t, samVisible, 1)
	assert.Equal(t, samTicket.ID, samVisible[0].ID)

	all, err := s.ListTickets(context.Background(), actorFor(admin))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreateTicketUnknownPC(t *testing.T) {
	db := newTestDB(t)
	s := NewGormStore(db)
	sam := seedUser(t, db, "sam", model.RoleStudent)

	missing := int64(404)
	_, err := s.CreateTicket(context.Background(), actorFor(sam), TicketInput{
		PCID:             &missing,
		IssueDescription: "ghost pc",
	})
	var ref *RefError
	require.ErrorAs(t, err, &ref)
	assert.Equal(t, "pc", ref.Field)
}
