package models

import "time"

// Setting is a single key-value configuration entry. The adapter only updates
// values in place; keys are provisioned out of band and never created here.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"size:255;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettingSemesterStart is the key holding the ISO date the school-week
// calculation is anchored to.
const SettingSemesterStart = "semester_start"
