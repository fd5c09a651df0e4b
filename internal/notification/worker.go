package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"labtrack-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool fans maintenance alerts out to browsers subscribed to the
// affected lab. Jobs are maintenance-log ids dispatched after creation.
type WorkerPool struct {
	size    int
	jobs    chan int64
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// SetSender replaces the push transport. Tests use this to install a fake.
func (wp *WorkerPool) SetSender(s NotificationSender) {
	wp.sender = s
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case logID := <-wp.jobs:
			wp.notifyForLog(ctx, logID)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues an alert for a freshly created maintenance log.
func (wp *WorkerPool) Dispatch(logID int64) {
	wp.jobs <- logID
}

// notifyForLog resolves the log's equipment and lab, then pushes to every
// subscription mapped to that lab.
func (wp *WorkerPool) notifyForLog(ctx context.Context, logID int64) {
	var mlog model.MaintenanceLog
	if err := wp.db.WithContext(ctx).First(&mlog, logID).Error; err != nil {
		log.Printf("Error fetching maintenance log %d: %v", logID, err)
		return
	}

	var equipment model.Equipment
	if err := wp.db.WithContext(ctx).Preload("Lab").First(&equipment, mlog.EquipmentID).Error; err != nil {
		log.Printf("Error fetching equipment %d: %v", mlog.EquipmentID, err)
		return
	}

	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_lab_mapping slm ON slm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("slm.lab_id = ?", equipment.LabID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for lab %d: %v", equipment.LabID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	label := equipment.EquipmentType
	if equipment.ModelName != "" {
		label = fmt.Sprintf("%s (%s)", equipment.EquipmentType, equipment.ModelName)
	}
	message := fmt.Sprintf("%s in %s reported: %s", label, equipment.Lab.Name, mlog.IssueDescription)

	log.Printf("Sending %d notifications for maintenance log %d", len(subscriptions), logID)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
