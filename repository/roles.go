package repository

import (
	"context"
	"errors"
	"fmt"

	"travel-agency/models/user_role"

	"gorm.io/gorm"
)

// RoleOf returns the role of userID, or "" when the identity has no row.
func (r *Repository) RoleOf(ctx context.Context, userID string) (string, error) {
	var row user_role.UserRole
	err := r.DB.WithContext(ctx).Select("role").Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup role: %w", err)
	}
	return row.Role, nil
}

func (r *Repository) ListRoles(ctx context.Context) ([]user_role.UserRole, error) {
	var roles []user_role.UserRole
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// AssignRole creates the role row of an identity or updates the existing one.
func (r *Repository) AssignRole(ctx context.Context, row *user_role.UserRole) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing user_role.UserRole
		err := tx.Where("user_id = ?", row.UserID).First(&existing).Error
		switch {
		case err == nil:
			existing.Role = row.Role
			if row.Email != "" {
				existing.Email = row.Email
			}
			if err := tx.Save(&existing).Error; err != nil {
				return fmt.Errorf("update role: %w", err)
			}
			*row = existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(row).Error; err != nil {
				return fmt.Errorf("create role: %w", err)
			}
			return nil
		default:
			return fmt.Errorf("lookup role: %w", err)
		}
	})
}

func (r *Repository) RemoveRole(ctx context.Context, userID string) error {
	result := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&user_role.UserRole{})
	if result.Error != nil {
		return fmt.Errorf("delete role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountRole counts identities holding role.
func (r *Repository) CountRole(ctx context.Context, role string) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&user_role.UserRole{}).Where("role = ?", role).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count role: %w", err)
	}
	return n, nil
}
