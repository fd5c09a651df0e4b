package notification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appdb "labtrack-backend/internal/db"
	"labtrack-backend/internal/model"
)

// mockSender is a mock implementation of the NotificationSender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:notification_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, appdb.Migrate(db))
	return db
}

// seedMaintenance creates a lab, one equipment row in it and a pending
// maintenance log, returning the log id to dispatch.
func seedMaintenance(t *testing.T, db *gorm.DB, labName, issue string) (int64, int64) {
	t.Helper()
	lab := model.Lab{Name: labName}
	require.NoError(t, db.Create(&lab).Error)
	equipment := model.Equipment{LabID: lab.ID, EquipmentType: model.TypeMonitor, Status: model.StatusNotWorking}
	require.NoError(t, db.Create(&equipment).Error)
	mlog := model.MaintenanceLog{
		EquipmentID:      equipment.ID,
		IssueDescription: issue,
		StatusBefore:     model.StatusNotWorking,
		Status:           model.MaintenancePending,
	}
	require.NoError(t, db.Create(&mlog).Error)
	return mlog.ID, lab.ID
}

func subscribe(t *testing.T, db *gorm.DB, endpoint string, labID int64) {
	t.Helper()
	var lab model.Lab
	require.NoError(t, db.First(&lab, labID).Error)
	sub := model.PushSubscription{
		Endpoint: endpoint,
		P256DH:   "test_p256dh",
		Auth:     "test_auth",
		Labs:     []*model.Lab{&lab},
	}
	require.NoError(t, db.Create(&sub).Error)
}

func TestWorkerPool_Dispatch(t *testing.T) {
	db := newTestDB(t)
	wp := NewWorkerPool(1, db, &webpush.Options{})

	wp.Dispatch(123)

	select {
	case job := <-wp.jobs:
		assert.Equal(t, int64(123), job)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_SendsAlertToLabSubscribers(t *testing.T) {
	db := newTestDB(t)
	wp := NewWorkerPool(1, db, &webpush.Options{})

	logID, labID := seedMaintenance(t, db, "Lab A", "screen flickers")
	subscribe(t, db, "https://push.example/sub-a", labID)

	// A subscriber of another lab must not be notified.
	otherLab := model.Lab{Name: "Lab B"}
	require.NoError(t, db.Create(&otherLab).Error)
	subscribe(t, db, "https://push.example/sub-b", otherLab.ID)

	var wg sync.WaitGroup
	wg.Add(1)
	wp.SetSender(&mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			assert.Equal(t, "https://push.example/sub-a", sub.Endpoint)
			assert.Equal(t, "MONITOR in Lab A reported: screen flickers", string(payload))
			wg.Done()
			return &http.Response{
				StatusCode: http.StatusCreated,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.Dispatch(logID)
	wg.Wait()
}

func TestWorkerPool_DeletesExpiredSubscription(t *testing.T) {
	db := newTestDB(t)
	wp := NewWorkerPool(1, db, &webpush.Options{})

	logID, labID := seedMaintenance(t, db, "Lab A", "no power")
	subscribe(t, db, "https://push.example/expired", labID)

	var wg sync.WaitGroup
	wg.Add(1)
	wp.SetSender(&mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			defer wg.Done()
			return &http.Response{
				StatusCode: http.StatusGone,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.Dispatch(logID)
	wg.Wait()

	// The 410 response evicts the subscription. The delete happens after the
	// sender returns, so poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for {
		var count int64
		require.NoError(t, db.Model(&model.PushSubscription{}).Count(&count).Error)
		if count == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expired subscription was not deleted, %d remaining", count)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
