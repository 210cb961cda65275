package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGetRealClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "x-real-ip preferred",
			headers: map[string]string{"X-Real-IP": "10.0.0.1", "X-Forwarded-For": "10.0.0.2"},
			want:    "10.0.0.1",
		},
		{
			name:    "first forwarded entry",
			headers: map[string]string{"X-Forwarded-For": "10.0.0.3, 10.0.0.4"},
			want:    "10.0.0.3",
		},
		{
			name:    "fallback without headers",
			headers: nil,
			want:    "192.0.2.1",
		},
	}

	gin.SetMode(gin.TestMode)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			if got := GetRealClientIP(c); got != tt.want {
				t.Fatalf("GetRealClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
