package database

import (
	"mailminder/internal/models"

	"gorm.io/gorm"
)

// ReminderStore provides durable access to reminder records. Records are
// append-only: nothing here deletes a row, so the table doubles as the
// delivery history.
type ReminderStore struct {
	db *gorm.DB
}

// NewReminderStore returns a store backed by the given database handle
func NewReminderStore(db *gorm.DB) *ReminderStore {
	return &ReminderStore{db: db}
}

// CreateReminder persists a new reminder with sent=false
func (s *ReminderStore) CreateReminder(r *models.Reminder) error {
	return s.db.Create(r).Error
}

// FindDue returns all unsent reminders scheduled for exactly the given
// date and time strings. The match is deliberately exact: a minute that
// passes while the process is down is never scanned again, so reminders
// scheduled in it are not retried.
func (s *ReminderStore) FindDue(date, timeOfDay string) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := s.db.Where("date = ? AND time = ? AND sent = ?", date, timeOfDay, false).
		Find(&reminders).Error
	return reminders, err
}

// ClaimReminder atomically marks a reminder sent, but only if it is still
// unsent. It reports whether this caller won the claim; a false result
// means a concurrent cycle already owns the record (or it was delivered
// earlier) and the caller must not send. Claiming an already-sent id is a
// no-op.
func (s *ReminderStore) ClaimReminder(id uint) (bool, error) {
	result := s.db.Model(&models.Reminder{}).
		Where("id = ? AND sent = ?", id, false).
		Update("sent", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ReleaseReminder returns a claimed reminder to the unsent pool. Only the
// cycle that won the claim may call this, after its send attempt failed,
// so the record stays eligible for the next scan of the same slot.
func (s *ReminderStore) ReleaseReminder(id uint) error {
	return s.db.Model(&models.Reminder{}).
		Where("id = ?", id).
		Update("sent", false).Error
}

// LogDelivery appends an attempt record to the delivery history
func (s *ReminderStore) LogDelivery(l *models.DeliveryLog) error {
	return s.db.Create(l).Error
}
