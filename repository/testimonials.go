package repository

import (
	"context"
	"fmt"

	"travel-agency/models/testimonial"

	"github.com/google/uuid"
)

func (r *Repository) ListActiveTestimonials(ctx context.Context) ([]testimonial.Testimonial, error) {
	var items []testimonial.Testimonial
	err := r.DB.WithContext(ctx).Where("is_active = ?", true).Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	return items, nil
}

func (r *Repository) ListAllTestimonials(ctx context.Context) ([]testimonial.Testimonial, error) {
	var items []testimonial.Testimonial
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	return items, nil
}

func (r *Repository) CreateTestimonial(ctx context.Context, t *testimonial.Testimonial) error {
	if err := r.DB.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create testimonial: %w", err)
	}
	return nil
}

func (r *Repository) UpdateTestimonial(ctx context.Context, t *testimonial.Testimonial) error {
	result := r.DB.WithContext(ctx).Model(&testimonial.Testimonial{}).Where("id = ?", t.ID).
		Select("*").Omit("id", "created_at").Updates(t)
	if result.Error != nil {
		return fmt.Errorf("update testimonial: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) SetTestimonialActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.DB.WithContext(ctx).Model(&testimonial.Testimonial{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return fmt.Errorf("update testimonial: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&testimonial.Testimonial{})
	if result.Error != nil {
		return fmt.Errorf("delete testimonial: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
