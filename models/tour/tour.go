package tour

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Categories used by the storefront. The column itself is free text.
const (
	CategoryDomestic      = "Domestic"
	CategoryInternational = "International"
	CategoryPilgrimage    = "Pilgrimage"
)

// Tour is a bookable package. Only active tours are publicly listed.
type Tour struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Destination string    `gorm:"type:varchar(255);not null;index" json:"destination"`
	StartCity   string    `gorm:"type:varchar(255);default:'Kolkata'" json:"start_city"`
	Category    string    `gorm:"type:varchar(100);not null;default:'Domestic';index" json:"category"`
	Overview    string    `gorm:"type:text" json:"overview"`
	BestSeason  string    `gorm:"type:varchar(255)" json:"best_season"`
	Transport   string    `gorm:"type:varchar(255)" json:"transport"`
	HotelType   string    `gorm:"type:varchar(100)" json:"hotel_type"`

	DurationDays       int `gorm:"not null;default:1" json:"duration_days"`
	OriginalPriceINR   int `gorm:"not null;default:0" json:"original_price_inr"`
	DiscountedPriceINR int `gorm:"not null;default:0" json:"discounted_price_inr"`

	HeroImageURL  string                      `gorm:"type:varchar(2048)" json:"hero_image_url"`
	GalleryImages datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"gallery_images"`
	Inclusions    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"inclusions"`
	Exclusions    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"exclusions"`

	IsFeatured  bool `gorm:"default:false;index" json:"is_featured"`
	IsActive    bool `gorm:"default:false;index" json:"is_active"`
	AIGenerated bool `gorm:"default:false" json:"ai_generated"`

	Itinerary []ItineraryDay `gorm:"foreignKey:TourID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"itinerary,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for Tour
func (Tour) TableName() string {
	return "tours"
}

// BeforeCreate assigns the identity when the caller did not.
func (t *Tour) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ItineraryDay is one day of a tour's programme.
type ItineraryDay struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TourID      uuid.UUID `gorm:"type:uuid;not null;index" json:"tour_id"`
	DayNumber   int       `gorm:"not null" json:"day_number"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the table name for ItineraryDay
func (ItineraryDay) TableName() string {
	return "itinerary_days"
}

func (d *ItineraryDay) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
