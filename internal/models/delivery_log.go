package models

import "time"

// Delivery outcome values recorded per attempt.
const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)

// DeliveryLog records a single send attempt for a reminder
type DeliveryLog struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ReminderID   uint      `gorm:"not null;index" json:"reminder_id"`
	Email        string    `gorm:"size:255;not null" json:"email"`
	Status       string    `gorm:"size:10;not null" json:"status"` // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	SentAt       time.Time `gorm:"not null" json:"sent_at"`
}
