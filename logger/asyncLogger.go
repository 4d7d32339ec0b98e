package logger

import (
	"sync"
	"time"

	log_model "travel-agency/models/log"
	"travel-agency/types"

	"gorm.io/gorm"
)

// AsyncLogger persists request log entries off the request path.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
	done    chan struct{}
	once    sync.Once
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, 100),
		done:    make(chan struct{}),
	}
}

// ProcessLog drains the channel until Close is called.
func (l *AsyncLogger) ProcessLog() {
	Info("Starting asynchronous logger...")
	defer close(l.done)

	for logEntry := range l.channel {
		dbLog := log_model.Log{
			Method:          logEntry.Method,
			URL:             logEntry.URL,
			UserID:          logEntry.UserID,
			RequestBody:     logEntry.RequestBody,
			ResponseBody:    logEntry.ResponseBody,
			RequestHeaders:  logEntry.RequestHeaders,
			ResponseHeaders: logEntry.ResponseHeaders,
			StatusCode:      logEntry.StatusCode,
			DurationMs:      logEntry.DurationMs,
			CreatedAt:       logEntry.CreatedAt,
		}

		if err := l.db.Create(&dbLog).Error; err != nil {
			Error("Failed to insert log entry", err)
		}
	}
}

// Log queues an entry, dropping it when the buffer is full.
func (l *AsyncLogger) Log(entry types.LogEntry) {
	select {
	case l.channel <- entry:
	default:
		Warning("Async log buffer full, dropping entry for " + entry.Method + " " + entry.URL)
	}
}

// Close stops ProcessLog and waits up to drainTimeout for the buffered
// entries to be written.
func (l *AsyncLogger) Close() {
	l.once.Do(func() { close(l.channel) })
	select {
	case <-l.done:
	case <-time.After(drainTimeout):
		Warning("Async logger did not drain before shutdown")
	}
}

var drainTimeout = 5 * time.Second
