package models

import "time"

// Reminder represents a scheduled email reminder in the system
type Reminder struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email   string `gorm:"size:255;not null" json:"email"`
	Message string `gorm:"type:text;not null" json:"message"`
	// Date and Time are kept as the submitted strings and matched exactly
	// by the due scan, in the server's local clock.
	Date      string    `gorm:"size:10;not null;index:idx_due,priority:1" json:"date"` // YYYY-MM-DD
	Time      string    `gorm:"size:5;not null;index:idx_due,priority:2" json:"time"`  // HH:MM
	Sent      bool      `gorm:"not null;default:false;index:idx_due,priority:3" json:"sent"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReminderRequest represents the data needed to schedule a reminder
type CreateReminderRequest struct {
	Email   string `json:"email" form:"email" binding:"required,email"`
	Message string `json:"message" form:"message" binding:"required"`
	Date    string `json:"date" form:"date" binding:"required"`
	Time    string `json:"time" form:"time" binding:"required"`
}

// DispatchSummary reports the outcome of one dispatch cycle
type DispatchSummary struct {
	Matched int `json:"matched"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
}
