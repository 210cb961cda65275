package handlers

import (
	"context"
	"fmt"
	"log"
	"mailminder/internal/database"
	"mailminder/internal/models"
	"mailminder/internal/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CycleRunner runs one dispatch cycle and reports its summary. Satisfied
// by services.Dispatcher; tests substitute a stub.
type CycleRunner interface {
	RunCycle(ctx context.Context) (models.DispatchSummary, error)
}

// CreateReminder handles the submission of a new reminder
func CreateReminder(c *gin.Context) {
	var request models.CreateReminderRequest

	if err := c.ShouldBind(&request); err != nil {
		log.Printf("Error: Invalid input: %s", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	// The due scan matches these strings exactly, so reject anything that
	// is not in canonical form up front.
	if _, err := time.Parse("2006-01-02", request.Date); err != nil {
		log.Printf("Error: Invalid date %q: %v", request.Date, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be in YYYY-MM-DD format"})
		return
	}
	if _, err := time.Parse("15:04", request.Time); err != nil {
		log.Printf("Error: Invalid time %q: %v", request.Time, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Time must be in HH:MM format"})
		return
	}

	reminder := models.Reminder{
		Email:   request.Email,
		Message: request.Message,
		Date:    request.Date,
		Time:    request.Time,
		Sent:    false,
	}

	store := database.NewReminderStore(database.GetDB())
	if err := store.CreateReminder(&reminder); err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to save reminder", err)
		return
	}

	c.JSON(http.StatusCreated, reminder)
}

// TriggerDispatch returns a handler that synchronously runs one dispatch
// cycle. External schedulers ping this to cover gaps in the internal
// timer on hosts that suspend idle processes.
func TriggerDispatch(runner CycleRunner) gin.HandlerFunc {
	return func(c *gin.Context) {
		log.Printf("External dispatch trigger from %s", utils.GetRealClientIP(c))

		summary, err := runner.RunCycle(c.Request.Context())
		if err != nil {
			handleError(c, http.StatusInternalServerError, "Dispatch cycle failed", err)
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}
