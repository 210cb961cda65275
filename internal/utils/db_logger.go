package utils

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

// QuietGormLogger wraps a GORM logger and drops trace lines for queries
// matching any of the given patterns. Used to keep the once-a-minute
// dispatch scan out of the query log.
type QuietGormLogger struct {
	logger.Interface
	quietPatterns []string
}

// NewQuietGormLogger creates a logger that suppresses queries containing
// any of the given substrings
func NewQuietGormLogger(l logger.Interface, patterns ...string) *QuietGormLogger {
	return &QuietGormLogger{
		Interface:     l,
		quietPatterns: patterns,
	}
}

// LogMode implements logger.Interface
func (l *QuietGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &QuietGormLogger{
		Interface:     l.Interface.LogMode(level),
		quietPatterns: l.quietPatterns,
	}
}

// Trace implements logger.Interface
func (l *QuietGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	sql, rows := fc()

	for _, pattern := range l.quietPatterns {
		if strings.Contains(sql, pattern) {
			return
		}
	}

	caller := findCaller()
	l.Interface.Trace(ctx, begin, func() (string, int64) {
		if caller != "" {
			return fmt.Sprintf("[Caller: %s] %s", caller, sql), rows
		}
		return sql, rows
	}, err)
}

// findCaller walks the stack for the first frame outside GORM and the
// database package
func findCaller() string {
	for i := 2; i < 10; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		if strings.Contains(file, "gorm.io") ||
			strings.Contains(file, "internal/database") ||
			strings.Contains(file, "internal/utils/db_logger.go") {
			continue
		}

		if fn := runtime.FuncForPC(pc); fn != nil {
			name := fn.Name()
			if idx := strings.LastIndexByte(name, '.'); idx != -1 {
				name = name[idx+1:]
			}
			return fmt.Sprintf("%s() at %s:%d", name, file, line)
		}
		return fmt.Sprintf("%s:%d", file, line)
	}

	return ""
}
