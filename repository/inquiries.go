package repository

import (
	"context"
	"fmt"
	"time"

	"travel-agency/models/inquiry"

	"github.com/google/uuid"
)

func (r *Repository) CreateInquiry(ctx context.Context, in *inquiry.Inquiry) error {
	if err := r.DB.WithContext(ctx).Create(in).Error; err != nil {
		return fmt.Errorf("create inquiry: %w", err)
	}
	return nil
}

// ListInquiries returns inquiries newest first, optionally by status.
func (r *Repository) ListInquiries(ctx context.Context, status inquiry.InquiryStatus) ([]inquiry.Inquiry, error) {
	query := r.DB.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var inquiries []inquiry.Inquiry
	if err := query.Find(&inquiries).Error; err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	return inquiries, nil
}

// UpdateInquiry applies status and/or read flag changes.
func (r *Repository) UpdateInquiry(ctx context.Context, id uuid.UUID, status *inquiry.InquiryStatus, isRead *bool) error {
	updates := map[string]interface{}{}
	if status != nil {
		updates["status"] = *status
	}
	if isRead != nil {
		updates["is_read"] = *isRead
	}
	if len(updates) == 0 {
		return nil
	}
	result := r.DB.WithContext(ctx).Model(&inquiry.Inquiry{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update inquiry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteInquiry(ctx context.Context, id uuid.UUID) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&inquiry.Inquiry{})
	if result.Error != nil {
		return fmt.Errorf("delete inquiry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// InquiryStats counts all inquiries, those still new, and those received since.
func (r *Repository) InquiryStats(ctx context.Context, since time.Time) (total, fresh, recent int64, err error) {
	if err = r.DB.WithContext(ctx).Model(&inquiry.Inquiry{}).Count(&total).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("count inquiries: %w", err)
	}
	if err = r.DB.WithContext(ctx).Model(&inquiry.Inquiry{}).Where("status = ?", inquiry.StatusNew).Count(&fresh).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("count new inquiries: %w", err)
	}
	if err = r.DB.WithContext(ctx).Model(&inquiry.Inquiry{}).Where("created_at >= ?", since).Count(&recent).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("count recent inquiries: %w", err)
	}
	return total, fresh, recent, nil
}
