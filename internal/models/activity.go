package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog captures auditable events: ledger appends and administrative
// changes to the semester settings.
type ActivityLog struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	SessionID string            `gorm:"size:64;not null;index" json:"session_id"`
	ActorRole string            `gorm:"size:32;not null" json:"actor_role"`
	Action    string            `gorm:"size:64;not null" json:"action"`
	Entity    string            `gorm:"size:64;not null" json:"entity"`
	EntityKey string            `gorm:"size:64" json:"entity_key"`
	Metadata  datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}
