package log

import (
	"time"
)

// Log represents an HTTP request/response log entry of the admin API.
type Log struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Method          string    `gorm:"type:varchar(10);not null" json:"method"`
	URL             string    `gorm:"type:text;not null" json:"url"`
	UserID          string    `gorm:"type:varchar(64);index" json:"user_id"`
	RequestBody     string    `gorm:"type:text" json:"request_body"`
	RequestHeaders  string    `gorm:"type:text" json:"request_headers"`
	ResponseBody    string    `gorm:"type:text" json:"response_body"`
	ResponseHeaders string    `gorm:"type:text" json:"response_headers"`
	StatusCode      int       `gorm:"type:int" json:"status_code"`
	DurationMs      int64     `gorm:"default:0" json:"duration_ms"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}
