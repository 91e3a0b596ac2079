package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GenerationLog records one playlist-generation call: the prompt sent to the
// AI agent, the mode it ran in, and how it ended.
type GenerationLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Prompt     string         `gorm:"column:prompt" json:"prompt"`
	Mode       string         `gorm:"column:mode;not null" json:"mode"`
	Success    bool           `gorm:"column:success;not null" json:"success"`
	TrackCount int            `gorm:"column:track_count" json:"track_count"`
	Error      string         `gorm:"column:error" json:"error"`
	Detail     datatypes.JSON `gorm:"type:jsonb;column:detail" json:"detail"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (GenerationLog) TableName() string {
	return "generation_log"
}
