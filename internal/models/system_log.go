package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLog stores structured error logs written by the DB log handler.
type SystemLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp   time.Time      `gorm:"not null;index" json:"timestamp"`
	Level       string         `gorm:"size:10;not null;index" json:"level"`
	Message     string         `gorm:"type:text" json:"message"`
	WorkspaceID string         `gorm:"size:36;index" json:"workspace_id"`
	RequestID   string         `gorm:"size:64;index" json:"request_id"`
	UserID      *string        `gorm:"size:36" json:"user_id"`
	Action      string         `gorm:"size:100" json:"action"`
	Error       string         `gorm:"type:text" json:"error"`
	LatencyMs   int            `json:"latency_ms"`
	Extra       datatypes.JSON `json:"extra"`
	CreatedAt   time.Time      `json:"created_at"`
}
