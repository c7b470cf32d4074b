package types

import (
	"time"

	"github.com/google/uuid"
)

// UserToken tracks issued refresh tokens so they can be rotated and revoked.
type UserToken struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index;column:user_id" json:"userId"`
	RefreshToken string    `gorm:"uniqueIndex;not null;column:refresh_token" json:"-"`
	ExpiresAt    time.Time `gorm:"not null;column:expires_at" json:"expiresAt"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

func (UserToken) TableName() string {
	return "user_tokens"
}
