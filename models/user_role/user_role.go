package user_role

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole binds an identity of the external auth provider to a role.
// Identities without a row have no administrative access.
type UserRole struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"user_id"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Role      string    `gorm:"type:varchar(20);not null;index" json:"role"`
	CreatedBy string    `gorm:"type:varchar(64)" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for UserRole
func (UserRole) TableName() string {
	return "user_roles"
}

func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
