package types

import (
	"time"
)

type Question struct {
	ID                uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	LevelID           uint             `gorm:"not null;index;column:level_id" json:"levelId"`
	SubUnitID         *uint            `gorm:"index;column:sub_unit_id" json:"subUnitId"`
	Difficulty        string           `gorm:"size:20;column:difficulty" json:"difficulty"`
	EvalDomain        string           `gorm:"size:100;column:eval_domain" json:"evalDomain"`
	QuestionText      string           `gorm:"type:text;not null;column:question_text" json:"questionText"`
	QuestionType      string           `gorm:"not null;column:question_type" json:"questionType"`
	CorrectAnswer     string           `gorm:"type:text;column:correct_answer" json:"correctAnswer"`
	Explanation       string           `gorm:"type:text;column:explanation" json:"explanation"`
	Points            int              `gorm:"not null;default:10;column:points" json:"points"`
	TimeLimit         int              `gorm:"column:time_limit" json:"timeLimit"`
	ReferenceImage    string           `gorm:"column:reference_image" json:"referenceImage"`
	ReferenceDocument string           `gorm:"column:reference_document" json:"referenceDocument"`
	CreatedByID       *uint            `gorm:"column:created_by" json:"createdById"`
	Options           []QuestionOption `gorm:"foreignKey:QuestionID" json:"options"`
	Concepts          []Concept        `gorm:"many2many:question_concepts;" json:"concepts"`
	CreatedAt         time.Time        `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt         time.Time        `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Question) TableName() string {
	return "questions"
}

type QuestionOption struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID  uint      `gorm:"not null;index;column:question_id" json:"questionId"`
	OptionText  string    `gorm:"type:text;not null;column:option_text" json:"optionText"`
	OptionOrder int       `gorm:"not null;column:option_order" json:"optionOrder"`
	IsCorrect   bool      `gorm:"not null;default:false;column:is_correct" json:"correct"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
