package inquiry

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InquiryStatus string

const (
	StatusNew       InquiryStatus = "new"
	StatusContacted InquiryStatus = "contacted"
	StatusConverted InquiryStatus = "converted"
	StatusClosed    InquiryStatus = "closed"
)

func (s InquiryStatus) String() string {
	return string(s)
}

func (s InquiryStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusConverted, StatusClosed:
		return true
	default:
		return false
	}
}

// Inquiry is a lead captured by the public form.
type Inquiry struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string        `gorm:"type:varchar(100);not null" json:"name"`
	Email         string        `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone         string        `gorm:"type:varchar(20);not null" json:"phone"`
	Travellers    *int          `json:"travellers,omitempty"`
	PreferredDate *string       `gorm:"type:varchar(32)" json:"preferred_date,omitempty"`
	Message       *string       `gorm:"type:text" json:"message,omitempty"`
	TourID        *uuid.UUID    `gorm:"type:uuid;index" json:"tour_id,omitempty"`
	Status        InquiryStatus `gorm:"type:varchar(20);not null;default:'new';index" json:"status"`
	IsRead        bool          `gorm:"default:false" json:"is_read"`
	CreatedAt     time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for Inquiry
func (Inquiry) TableName() string {
	return "inquiries"
}

func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = StatusNew
	}
	return nil
}
