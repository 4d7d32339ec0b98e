package blog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogPost is an article of the travel blog. Only published posts are public.
type BlogPost struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string     `gorm:"type:varchar(255);not null" json:"title"`
	Slug             string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Excerpt          string     `gorm:"type:text" json:"excerpt"`
	Content          string     `gorm:"type:text;not null" json:"content"`
	ContentBnHTML    *string    `gorm:"type:text" json:"content_bn_html,omitempty"`
	Category         string     `gorm:"type:varchar(100);default:'Travel Tips';index" json:"category"`
	Author           string     `gorm:"type:varchar(255)" json:"author"`
	PublishDate      *time.Time `gorm:"index" json:"publish_date,omitempty"`
	FeaturedImageURL string     `gorm:"type:varchar(2048)" json:"featured_image_url"`
	ImageCredit      string     `gorm:"type:varchar(255)" json:"image_credit"`

	MetaTitle       string `gorm:"type:varchar(255)" json:"meta_title"`
	MetaDescription string `gorm:"type:varchar(500)" json:"meta_description"`
	OGTitle         string `gorm:"column:og_title;type:varchar(255)" json:"og_title"`
	OGDescription   string `gorm:"column:og_description;type:varchar(500)" json:"og_description"`
	OGImage         string `gorm:"column:og_image;type:varchar(2048)" json:"og_image"`
	FocusKeyword    string `gorm:"type:varchar(255)" json:"focus_keyword"`

	IsPublished bool `gorm:"default:false;index" json:"is_published"`
	AIGenerated bool `gorm:"default:false" json:"ai_generated"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for BlogPost
func (BlogPost) TableName() string {
	return "blog_posts"
}

func (b *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
