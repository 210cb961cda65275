package services

import (
	"context"
	"fmt"
	"log"
	"mailminder/internal/models"
	"time"
)

const (
	reminderSubject    = "Email Reminder"
	defaultSendTimeout = 30 * time.Second
)

// ReminderStore is the slice of the storage layer the dispatcher needs.
type ReminderStore interface {
	FindDue(date, timeOfDay string) ([]models.Reminder, error)
	ClaimReminder(id uint) (bool, error)
	ReleaseReminder(id uint) error
	LogDelivery(l *models.DeliveryLog) error
}

// EmailSender sends a single message to an address. Calling it twice
// sends twice, so the dispatcher must claim a reminder before calling.
type EmailSender interface {
	Send(ctx context.Context, toEmail, subject, body string) error
}

// Dispatcher runs dispatch cycles: scan for due reminders, claim each,
// send, and record the outcome. Both the internal timer and the HTTP
// trigger endpoint invoke the same RunCycle, so overlapping cycles are
// routine; the store's conditional claim keeps every reminder at one
// send at most.
type Dispatcher struct {
	store       ReminderStore
	sender      EmailSender
	sendTimeout time.Duration
	now         func() time.Time
}

func NewDispatcher(store ReminderStore, sender EmailSender) *Dispatcher {
	return &Dispatcher{
		store:       store,
		sender:      sender,
		sendTimeout: defaultSendTimeout,
		now:         time.Now,
	}
}

// RunCycle performs one scan-and-deliver pass. The current date and time
// are captured once at the start so every candidate in the batch is
// judged against the same slot. A per-candidate failure never aborts the
// cycle; only a failed scan returns an error.
func (d *Dispatcher) RunCycle(ctx context.Context) (models.DispatchSummary, error) {
	var summary models.DispatchSummary

	now := d.now()
	currentDate := now.Format("2006-01-02")
	currentTime := now.Format("15:04")

	candidates, err := d.store.FindDue(currentDate, currentTime)
	if err != nil {
		return summary, fmt.Errorf("failed to scan due reminders: %w", err)
	}
	summary.Matched = len(candidates)

	if len(candidates) > 0 {
		log.Printf("Found %d due reminder(s) at %s %s", len(candidates), currentDate, currentTime)
	}

	for _, reminder := range candidates {
		d.dispatchOne(ctx, reminder, &summary)
	}

	return summary, nil
}

// dispatchOne attempts delivery of a single reminder. The claim comes
// before the send: a lost claim means a concurrent cycle owns the record
// and we must not send. If the send then fails, the claim is released so
// the record stays eligible for later scans of the same slot.
func (d *Dispatcher) dispatchOne(ctx context.Context, reminder models.Reminder, summary *models.DispatchSummary) {
	claimed, err := d.store.ClaimReminder(reminder.ID)
	if err != nil {
		log.Printf("Failed to claim reminder %d: %v", reminder.ID, err)
		summary.Failed++
		return
	}
	if !claimed {
		// Another cycle got there first; not our failure, not our send.
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	err = d.sender.Send(sendCtx, reminder.Email, reminderSubject, reminder.Message)
	cancel()

	if err != nil {
		log.Printf("Failed to send reminder %d to %s: %v", reminder.ID, reminder.Email, err)
		if relErr := d.store.ReleaseReminder(reminder.ID); relErr != nil {
			// The record is stuck marked sent without a delivery.
			log.Printf("Failed to release claim on reminder %d: %v", reminder.ID, relErr)
		}
		d.logDelivery(reminder, models.DeliveryStatusFailed, err.Error())
		summary.Failed++
		return
	}

	log.Printf("Reminder %d sent to %s", reminder.ID, reminder.Email)
	d.logDelivery(reminder, models.DeliveryStatusSent, "")
	summary.Sent++
}

func (d *Dispatcher) logDelivery(reminder models.Reminder, status, errorMessage string) {
	entry := models.DeliveryLog{
		ReminderID:   reminder.ID,
		Email:        reminder.Email,
		Status:       status,
		ErrorMessage: errorMessage,
		SentAt:       d.now(),
	}
	if err := d.store.LogDelivery(&entry); err != nil {
		log.Printf("Failed to log delivery attempt for reminder %d: %v", reminder.ID, err)
	}
}
