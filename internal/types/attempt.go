package types

import (
	"time"
)

// QuestionAttempt records one submitted answer in the solving flow. Question
// statistics (attempt count, correct count, correct rate) are derived from
// these rows at read time.
type QuestionAttempt struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"not null;index;column:user_id" json:"userId"`
	QuestionID uint      `gorm:"not null;index;column:question_id" json:"questionId"`
	Answer     string    `gorm:"type:text;column:answer" json:"answer"`
	IsCorrect  bool      `gorm:"not null;column:is_correct" json:"isCorrect"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

func (QuestionAttempt) TableName() string {
	return "question_attempts"
}
