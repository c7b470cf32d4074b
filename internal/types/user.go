package types

import (
	"time"
)

type User struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username         string    `gorm:"uniqueIndex;not null;size:50;column:username" json:"username"`
	Email            string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password         string    `gorm:"not null;column:password" json:"-"`
	FullName         string    `gorm:"not null;size:100;column:full_name" json:"fullName"`
	Role             string    `gorm:"not null;default:STUDENT;column:role" json:"role"`
	LevelID          *uint     `gorm:"column:level_id" json:"levelId"`
	GradeID          *uint     `gorm:"column:grade_id" json:"gradeId"`
	UnitID           *uint     `gorm:"column:unit_id" json:"unitId"`
	SubUnitID        *uint     `gorm:"column:sub_unit_id" json:"subUnitId"`
	ProficiencyLevel string    `gorm:"size:20;column:proficiency_level" json:"proficiencyLevel"`
	Active           bool      `gorm:"not null;default:true;column:active" json:"active"`
	CreatedAt        time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
