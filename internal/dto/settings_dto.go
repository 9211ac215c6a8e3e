package dto

import "time"

// SemesterStartResponse reports the configured semester start date. Fallback
// is true when the stored value was missing or malformed and the current date
// was substituted; UIs must render that state distinctly.
type SemesterStartResponse struct {
	Date        string `json:"date"`
	Fallback    bool   `json:"fallback"`
	CurrentWeek int    `json:"current_week"`
	PreSemester bool   `json:"pre_semester"`
}

// SemesterStartUpdateRequest sets a new semester start date.
type SemesterStartUpdateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// ActivityResponse serializes one audit trail entry.
type ActivityResponse struct {
	ID        uint                   `json:"id"`
	SessionID string                 `json:"session_id"`
	ActorRole string                 `json:"actor_role"`
	Action    string                 `json:"action"`
	Entity    string                 `json:"entity"`
	EntityKey string                 `json:"entity_key"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

// ActivityListResponse pages through audit trail entries.
type ActivityListResponse struct {
	Items      []ActivityResponse `json:"items"`
	TotalItems int64              `json:"total_items"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
}
