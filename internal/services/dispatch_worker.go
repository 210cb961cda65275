package services

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// DispatchWorker is the internal trigger: it runs one dispatch cycle at
// the top of every minute, matching the resolution of the reminder time
// field. Hosting platforms that suspend idle processes also get the
// external /check-reminders trigger, which drives the same cycle.
type DispatchWorker struct {
	dispatcher *Dispatcher
	cron       *cron.Cron
}

func NewDispatchWorker(dispatcher *Dispatcher) *DispatchWorker {
	return &DispatchWorker{
		dispatcher: dispatcher,
		cron:       cron.New(),
	}
}

// Start schedules the minute cadence and starts the cron runner
func (w *DispatchWorker) Start() error {
	if _, err := w.cron.AddFunc("* * * * *", w.runOnce); err != nil {
		return err
	}
	w.cron.Start()
	log.Println("Dispatch worker started, checking reminders every minute")
	return nil
}

// Stop halts the cron runner and waits for a running cycle to finish
func (w *DispatchWorker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	log.Println("Dispatch worker stopped")
}

func (w *DispatchWorker) runOnce() {
	summary, err := w.dispatcher.RunCycle(context.Background())
	if err != nil {
		log.Printf("Dispatch cycle failed: %v", err)
		return
	}
	if summary.Matched > 0 {
		log.Printf("Dispatch cycle finished: matched=%d sent=%d failed=%d",
			summary.Matched, summary.Sent, summary.Failed)
	}
}
