package repository

import (
	"context"
	"fmt"

	"travel-agency/models/tour"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TourFilter narrows the public listing on the database side.
type TourFilter struct {
	Category     string
	FeaturedOnly bool
}

// ListActiveTours returns active tours, newest first. Visibility is enforced
// here so inactive rows never reach the catalog engine.
func (r *Repository) ListActiveTours(ctx context.Context, f TourFilter) ([]tour.Tour, error) {
	query := r.DB.WithContext(ctx).Where("is_active = ?", true).Order("created_at DESC")
	if f.Category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", f.Category)
	}
	if f.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}

	var tours []tour.Tour
	if err := query.Find(&tours).Error; err != nil {
		return nil, fmt.Errorf("list active tours: %w", err)
	}
	return tours, nil
}

// ListAllTours returns every tour for the back office.
func (r *Repository) ListAllTours(ctx context.Context) ([]tour.Tour, error) {
	var tours []tour.Tour
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&tours).Error; err != nil {
		return nil, fmt.Errorf("list tours: %w", err)
	}
	return tours, nil
}

// GetTour loads a tour with its ordered itinerary regardless of visibility.
func (r *Repository) GetTour(ctx context.Context, id uuid.UUID) (*tour.Tour, error) {
	var t tour.Tour
	err := r.DB.WithContext(ctx).
		Preload("Itinerary", func(db *gorm.DB) *gorm.DB { return db.Order("day_number ASC") }).
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// GetActiveTourBySlug loads a publicly visible tour with its itinerary.
func (r *Repository) GetActiveTourBySlug(ctx context.Context, slug string) (*tour.Tour, error) {
	var t tour.Tour
	err := r.DB.WithContext(ctx).
		Preload("Itinerary", func(db *gorm.DB) *gorm.DB { return db.Order("day_number ASC") }).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&t).Error
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// TourSlugsWithPrefix returns existing tour slugs starting with prefix.
func (r *Repository) TourSlugsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var slugs []string
	err := r.DB.WithContext(ctx).Model(&tour.Tour{}).
		Where("slug LIKE ?", escapeLike(prefix)+"%").
		Pluck("slug", &slugs).Error
	if err != nil {
		return nil, fmt.Errorf("lookup tour slugs: %w", err)
	}
	return slugs, nil
}

// CreateTour inserts the parent row only; the itinerary is written separately.
func (r *Repository) CreateTour(ctx context.Context, t *tour.Tour) error {
	itinerary := t.Itinerary
	t.Itinerary = nil
	defer func() { t.Itinerary = itinerary }()

	if err := r.DB.WithContext(ctx).Omit("Itinerary").Create(t).Error; err != nil {
		return fmt.Errorf("create tour: %w", err)
	}
	return nil
}

// CreateItinerary inserts itinerary rows for an existing tour.
func (r *Repository) CreateItinerary(ctx context.Context, tourID uuid.UUID, days []tour.ItineraryDay) error {
	if len(days) == 0 {
		return nil
	}
	for i := range days {
		days[i].TourID = tourID
	}
	if err := r.DB.WithContext(ctx).Create(&days).Error; err != nil {
		return fmt.Errorf("create itinerary: %w", err)
	}
	return nil
}

// ReplaceItinerary swaps the whole itinerary of a tour in one transaction, so
// readers never observe a tour without days.
func (r *Repository) ReplaceItinerary(ctx context.Context, tourID uuid.UUID, days []tour.ItineraryDay) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceItinerary(tx, tourID, days)
	})
}

// UpdateTour saves every column of t and replaces its itinerary atomically.
func (r *Repository) UpdateTour(ctx context.Context, t *tour.Tour, days []tour.ItineraryDay) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tourUpdate(tx, t).Updates(t)
		if result.Error != nil {
			return fmt.Errorf("update tour: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return replaceItinerary(tx, t.ID, days)
	})
}

// tourUpdate scopes a full update of t to the columns an operator may edit.
// ai_generated marks provenance and survives manual edits.
func tourUpdate(tx *gorm.DB, t *tour.Tour) *gorm.DB {
	return tx.Model(&tour.Tour{}).Where("id = ?", t.ID).Select("*").Omit("id", "created_at", "ai_generated", "Itinerary")
}

func replaceItinerary(tx *gorm.DB, tourID uuid.UUID, days []tour.ItineraryDay) error {
	if err := tx.Where("tour_id = ?", tourID).Delete(&tour.ItineraryDay{}).Error; err != nil {
		return fmt.Errorf("delete itinerary: %w", err)
	}
	if len(days) == 0 {
		return nil
	}
	for i := range days {
		days[i].ID = uuid.Nil
		days[i].TourID = tourID
	}
	if err := tx.Create(&days).Error; err != nil {
		return fmt.Errorf("insert itinerary: %w", err)
	}
	return nil
}

// SetTourFlags updates is_active and/or is_featured.
func (r *Repository) SetTourFlags(ctx context.Context, id uuid.UUID, active, featured *bool) error {
	updates := map[string]interface{}{}
	if active != nil {
		updates["is_active"] = *active
	}
	if featured != nil {
		updates["is_featured"] = *featured
	}
	if len(updates) == 0 {
		return nil
	}
	result := r.DB.WithContext(ctx).Model(&tour.Tour{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update tour flags: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TourExists reports whether a tour with id exists, active or not.
func (r *Repository) TourExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&tour.Tour{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check tour: %w", err)
	}
	return n > 0, nil
}

// DeleteTour hard deletes a tour; itinerary rows go with it.
func (r *Repository) DeleteTour(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tour_id = ?", id).Delete(&tour.ItineraryDay{}).Error; err != nil {
			return fmt.Errorf("delete itinerary: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&tour.Tour{})
		if result.Error != nil {
			return fmt.Errorf("delete tour: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// TourStats counts all and active tours.
func (r *Repository) TourStats(ctx context.Context) (total, active int64, err error) {
	db := r.DB.WithContext(ctx).Model(&tour.Tour{})
	if err = db.Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("count tours: %w", err)
	}
	if err = r.DB.WithContext(ctx).Model(&tour.Tour{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, fmt.Errorf("count active tours: %w", err)
	}
	return total, active, nil
}
