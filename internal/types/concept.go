package types

import (
	"time"
)

// Concept is the smallest taxonomy leaf; questions attach here. SubUnitID is
// nullable so concepts can exist before being filed under a sub-unit.
type Concept struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SubUnitID   *uint     `gorm:"index;column:sub_unit_id" json:"subUnitId"`
	Name        string    `gorm:"uniqueIndex;not null;size:100;column:name" json:"name"`
	DisplayName string    `gorm:"size:150;column:display_name" json:"displayName"`
	Description string    `gorm:"type:text;column:description" json:"description"`
	OrderIndex  int       `gorm:"not null;default:0;column:order_index" json:"orderIndex"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Concept) TableName() string {
	return "concepts"
}
