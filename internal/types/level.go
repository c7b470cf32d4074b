package types

import (
	"time"
)

// Level is the root of the curriculum hierarchy (e.g. a national track).
type Level struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;size:100;column:name" json:"name"`
	DisplayName string    `gorm:"size:150;column:display_name" json:"displayName"`
	Description string    `gorm:"type:text;column:description" json:"description"`
	OrderIndex  int       `gorm:"not null;default:0;column:order_index" json:"orderIndex"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Level) TableName() string {
	return "levels"
}
