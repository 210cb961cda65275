package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mailminder/internal/models"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubRunner struct {
	summary models.DispatchSummary
	err     error
}

func (s *stubRunner) RunCycle(ctx context.Context) (models.DispatchSummary, error) {
	return s.summary, s.err
}

func newTestRouter(runner CycleRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/reminders", CreateReminder)
	router.GET("/check-reminders", TriggerDispatch(runner))
	return router
}

func TestTriggerDispatchReportsSummary(t *testing.T) {
	runner := &stubRunner{summary: models.DispatchSummary{Matched: 2, Sent: 1, Failed: 1}}
	router := newTestRouter(runner)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/check-reminders", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var summary models.DispatchSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if summary != runner.summary {
		t.Fatalf("summary = %+v, want %+v", summary, runner.summary)
	}
}

func TestTriggerDispatchSurfacesCycleError(t *testing.T) {
	runner := &stubRunner{err: errors.New("scan failed")}
	router := newTestRouter(runner)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/check-reminders", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(w.Body.String(), "error") {
		t.Fatalf("expected error body, got %q", w.Body.String())
	}
}

func TestCreateReminderRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{"message":"hi","date":"2024-01-01","time":"08:00"}`},
		{name: "invalid email", body: `{"email":"nope","message":"hi","date":"2024-01-01","time":"08:00"}`},
		{name: "missing message", body: `{"email":"a@x.com","date":"2024-01-01","time":"08:00"}`},
		{name: "missing date", body: `{"email":"a@x.com","message":"hi","time":"08:00"}`},
		{name: "malformed date", body: `{"email":"a@x.com","message":"hi","date":"2024-1-1","time":"08:00"}`},
		{name: "impossible date", body: `{"email":"a@x.com","message":"hi","date":"2024-13-40","time":"08:00"}`},
		{name: "malformed time", body: `{"email":"a@x.com","message":"hi","date":"2024-01-01","time":"8am"}`},
		{name: "impossible time", body: `{"email":"a@x.com","message":"hi","date":"2024-01-01","time":"25:00"}`},
	}

	router := newTestRouter(&stubRunner{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/reminders", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}
