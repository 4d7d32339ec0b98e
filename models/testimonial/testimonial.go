package testimonial

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Testimonial struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	Rating      int       `gorm:"not null;default:5" json:"rating"`
	Destination *string   `gorm:"type:varchar(255)" json:"destination,omitempty"`
	AvatarURL   *string   `gorm:"type:varchar(2048)" json:"avatar_url,omitempty"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for Testimonial
func (Testimonial) TableName() string {
	return "testimonials"
}

func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
