package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// InspectionRecord is one immutable row in the inspection ledger. Rows are only
// ever appended; nothing in the service updates or deletes them.
type InspectionRecord struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	InspectionDate datatypes.Date `gorm:"not null" json:"inspection_date"`
	WeekNumber     int            `gorm:"not null" json:"week_number"`
	ClassLabel     string         `gorm:"size:16;not null;index" json:"class_label"`
	InspectorName  string         `gorm:"size:64;not null" json:"inspector_name"`
	Area           string         `gorm:"size:16;not null" json:"area"`
	Item           string         `gorm:"size:64;not null" json:"item"`
	Condition      string         `gorm:"size:64;not null" json:"condition"`
	Remark         string         `gorm:"type:text" json:"remark"`
	DeductionScore int            `gorm:"not null" json:"deduction_score"`
	PhotoURLs      string         `gorm:"type:text" json:"photo_urls"`
	SubmittedAt    time.Time      `gorm:"not null" json:"submitted_at"`
	RecordID       string         `gorm:"size:32;uniqueIndex;not null" json:"record_id"`
}

// LedgerColumns is the pinned column order for ledger appends. Downstream
// consumers key on position, so inserts must never reorder these.
var LedgerColumns = []string{
	"inspection_date",
	"week_number",
	"class_label",
	"inspector_name",
	"area",
	"item",
	"condition",
	"remark",
	"deduction_score",
	"photo_urls",
	"submitted_at",
	"record_id",
}

// JoinPhotoURLs flattens the ordered URL list into the ledger representation.
func JoinPhotoURLs(urls []string) string {
	return strings.Join(urls, ";")
}

// SplitPhotoURLs restores the ordered URL list from a ledger row.
func SplitPhotoURLs(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return []string{}
	}
	return strings.Split(joined, ";")
}

// HasEvidence reports whether the row carries at least one photo URL.
func (r InspectionRecord) HasEvidence() bool {
	return strings.TrimSpace(r.PhotoURLs) != ""
}
