package generation

import (
	"time"

	"gorm.io/gorm"
)

const (
	KindTour = "tour"
	KindBlog = "blog"

	StatusProcessing = "processing"
	StatusSuccess    = "success"
	StatusFailed     = "failed"
)

// GenerationRequest records one AI draft generation for auditing.
type GenerationRequest struct {
	ID               uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestID        string `json:"request_id" gorm:"type:varchar(24);uniqueIndex;not null"`
	Kind             string `json:"kind" gorm:"type:varchar(10);not null;index"`
	Prompt           string `json:"prompt" gorm:"type:text;not null"`
	UserID           string `json:"user_id" gorm:"type:varchar(64);index;default:''"`
	Status           string `json:"status" gorm:"type:varchar(20);not null;default:'processing';index"`
	ProcessingTimeMs int64  `json:"processing_time_ms" gorm:"default:0"`

	// Filled on success
	Title string `json:"title" gorm:"type:varchar(255);default:''"`
	Slug  string `json:"slug" gorm:"type:varchar(255);default:''"`

	// Filled on failure
	ErrorCode    string `json:"error_code" gorm:"type:varchar(50);default:''"`
	ErrorMessage string `json:"error_message" gorm:"type:text;default:''"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GenerationRequest
func (GenerationRequest) TableName() string {
	return "generation_requests"
}

// BeforeCreate hook to set default values
func (g *GenerationRequest) BeforeCreate(tx *gorm.DB) error {
	if g.Status == "" {
		g.Status = StatusProcessing
	}
	return nil
}

// MarkAsSuccess stores the outcome of a successful generation.
func (g *GenerationRequest) MarkAsSuccess(db *gorm.DB, title, slug string, processingTime int64) error {
	g.Status = StatusSuccess
	g.Title = title
	g.Slug = slug
	g.ProcessingTimeMs = processingTime

	return db.Save(g).Error
}

// MarkAsFailed stores the failure category and message.
func (g *GenerationRequest) MarkAsFailed(db *gorm.DB, code, errorMsg string, processingTime int64) error {
	g.Status = StatusFailed
	g.ErrorCode = code
	g.ErrorMessage = errorMsg
	g.ProcessingTimeMs = processingTime

	return db.Save(g).Error
}
