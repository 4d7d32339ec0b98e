// Package audit keeps the trail of AI draft generations.
package audit

import (
	"context"
	"errors"
	"fmt"

	"travel-agency/logger"
	"travel-agency/models/generation"
	"travel-agency/repository"
	"travel-agency/services/draft"

	"gorm.io/gorm"
)

// GenerationService stores generation attempts off the request path.
type GenerationService struct {
	DB *gorm.DB
}

func NewGenerationService(db *gorm.DB) *GenerationService {
	return &GenerationService{DB: db}
}

// Record implements draft.Recorder. The row is written asynchronously.
func (s *GenerationService) Record(a draft.Attempt) {
	go func() {
		if err := s.save(a); err != nil {
			logger.Error(fmt.Sprintf("Failed to save generation audit for request %s", a.RequestID), err)
		}
	}()
}

func (s *GenerationService) save(a draft.Attempt) error {
	request := &generation.GenerationRequest{
		RequestID: a.RequestID,
		Kind:      a.Kind,
		Prompt:    a.Prompt,
		UserID:    a.UserID,
	}
	if err := s.DB.Create(request).Error; err != nil {
		return fmt.Errorf("failed to create generation request: %w", err)
	}

	elapsed := a.Elapsed.Milliseconds()
	if a.ErrorCode != "" {
		if err := request.MarkAsFailed(s.DB, a.ErrorCode, a.ErrorMessage, elapsed); err != nil {
			return fmt.Errorf("failed to mark request as failed: %w", err)
		}
		logger.Info(fmt.Sprintf("Generation %s failed (%s) after %dms", a.RequestID, a.ErrorCode, elapsed))
		return nil
	}
	if err := request.MarkAsSuccess(s.DB, a.Title, a.Slug, elapsed); err != nil {
		return fmt.Errorf("failed to mark request as success: %w", err)
	}
	return nil
}

// GetRequestByID retrieves a request by its request id
func (s *GenerationService) GetRequestByID(ctx context.Context, requestID string) (*generation.GenerationRequest, error) {
	var request generation.GenerationRequest
	if err := s.DB.WithContext(ctx).Where("request_id = ?", requestID).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// ListRecent returns the newest attempts, optionally filtered by kind and status.
func (s *GenerationService) ListRecent(ctx context.Context, kind, status string, limit int) ([]generation.GenerationRequest, error) {
	query := s.DB.WithContext(ctx).Order("created_at DESC")
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var requests []generation.GenerationRequest
	if err := query.Limit(limit).Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("list generation requests: %w", err)
	}
	return requests, nil
}
