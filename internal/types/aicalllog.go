package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AICallLog records every call to the question-generation model.
type AICallLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    *uint          `gorm:"index;column:user_id" json:"userId,omitempty"`
	ConceptID *uint          `gorm:"index;column:concept_id" json:"conceptId,omitempty"`
	CallType  string         `gorm:"column:call_type;not null" json:"callType"`
	Model     string         `gorm:"column:model;not null" json:"model"`
	Prompt    string         `gorm:"column:prompt" json:"prompt"`
	Response  string         `gorm:"column:response" json:"response"`
	Success   bool           `gorm:"column:success;not null" json:"success"`
	Error     string         `gorm:"column:error" json:"error"`
	Usage     datatypes.JSON `gorm:"type:jsonb;column:usage" json:"usage"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"createdAt"`
}

func (AICallLog) TableName() string {
	return "ai_call_logs"
}
