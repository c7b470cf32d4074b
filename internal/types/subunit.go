package types

import (
	"time"
)

type SubUnit struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UnitID      uint      `gorm:"not null;index;column:unit_id" json:"unitId"`
	Name        string    `gorm:"not null;size:100;column:name" json:"name"`
	DisplayName string    `gorm:"size:150;column:display_name" json:"displayName"`
	Description string    `gorm:"type:text;column:description" json:"description"`
	OrderIndex  int       `gorm:"not null;default:0;column:order_index" json:"orderIndex"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (SubUnit) TableName() string {
	return "sub_units"
}
