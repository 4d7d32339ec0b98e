package types

import "time"

// LogEntry represents a log entry to be stored in the database
type LogEntry struct {
	Method          string
	URL             string
	UserID          string
	RequestBody     string
	ResponseBody    string
	RequestHeaders  string
	ResponseHeaders string
	StatusCode      int
	DurationMs      int64
	CreatedAt       time.Time
}
