package dto

import "time"

// RecordDraft is the submitted inspection form payload. The photo files ride
// alongside it as multipart file parts.
type RecordDraft struct {
	InspectionDate string `form:"inspection_date" json:"inspection_date" validate:"required,datetime=2006-01-02"`
	ClassLabel     string `form:"class_label" json:"class_label" validate:"required,min=2,max=8"`
	InspectorName  string `form:"inspector_name" json:"inspector_name" validate:"required,min=1,max=64"`
	Area           string `form:"area" json:"area" validate:"required,oneof=indoor outdoor other"`
	Item           string `form:"item" json:"item" validate:"required,max=64"`
	Condition      string `form:"condition" json:"condition" validate:"required,max=64"`
	Remark         string `form:"remark" json:"remark" validate:"max=500"`
	DeductionScore int    `form:"deduction_score" json:"deduction_score" validate:"gte=0"`
}

// UploadedEvidence describes one successfully stored photo.
type UploadedEvidence struct {
	Index    int    `json:"index"`
	FileName string `json:"file_name"`
	BlobID   string `json:"blob_id"`
	URL      string `json:"url"`
	Unlisted bool   `json:"unlisted"`
}

// FailedEvidence describes one photo that could not be stored.
type FailedEvidence struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// EvidenceResult is the outcome of one upload batch. The call itself never
// fails; callers inspect the two slices.
type EvidenceResult struct {
	Uploaded []UploadedEvidence `json:"uploaded"`
	Failed   []FailedEvidence   `json:"failed"`
}

// SubmitResult reports a committed ledger row back to the caller.
type SubmitResult struct {
	RecordID       string           `json:"record_id"`
	WeekNumber     int              `json:"week_number"`
	PreSemester    bool             `json:"pre_semester"`
	InspectionDate string           `json:"inspection_date"`
	ClassLabel     string           `json:"class_label"`
	DeductionScore int              `json:"deduction_score"`
	PhotoURLs      []string         `json:"photo_urls"`
	StoredFiles    []string         `json:"stored_files"`
	FailedUploads  []FailedEvidence `json:"failed_uploads"`
	SubmittedAt    time.Time        `json:"submitted_at"`
}

// RecordResponse serializes a ledger row for the read surface.
type RecordResponse struct {
	RecordID       string    `json:"record_id"`
	InspectionDate string    `json:"inspection_date"`
	WeekNumber     int       `json:"week_number"`
	ClassLabel     string    `json:"class_label"`
	InspectorName  string    `json:"inspector_name"`
	Area           string    `json:"area"`
	Item           string    `json:"item"`
	Condition      string    `json:"condition"`
	Remark         string    `json:"remark"`
	DeductionScore int       `json:"deduction_score"`
	PhotoURLs      []string  `json:"photo_urls"`
	SubmittedAt    time.Time `json:"submitted_at"`
}
