package models

import (
	"time"

	"gorm.io/gorm"
)

// Base contains common columns for all tables. DeletedAt gives every model
// soft-delete semantics: deleted rows are excluded from queries by default.
type Base struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
