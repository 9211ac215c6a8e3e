package dto

// LoginRequest carries the shared role passcode.
type LoginRequest struct {
	Passcode string `json:"passcode" validate:"required,min=1"`
}

// LoginResponse returns the session token and resolved role.
type LoginResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	SessionID string `json:"session_id"`
	ExpiresIn int64  `json:"expires_in"`
}

// DiagnosticsResponse reports the three independent connection checks.
type DiagnosticsResponse struct {
	Credentials bool `json:"credentials"`
	Ledger      bool `json:"ledger"`
	BlobFolder  bool `json:"blob_folder"`
}

// DraftResponse is the in-progress submission form state for one session.
type DraftResponse struct {
	InspectionDate string `json:"inspection_date"`
	Grade          string `json:"grade"`
	ClassLabel     string `json:"class_label"`
	InspectorName  string `json:"inspector_name"`
	Area           string `json:"area"`
	Item           string `json:"item"`
	Condition      string `json:"condition"`
	Remark         string `json:"remark"`
	DeductionScore int    `json:"deduction_score"`
}

// DraftUpdateRequest overwrites draft fields. Empty strings clear a field;
// the deduction score is adjusted through the score endpoint instead.
type DraftUpdateRequest struct {
	InspectionDate *string `json:"inspection_date" validate:"omitempty,datetime=2006-01-02"`
	Grade          *string `json:"grade" validate:"omitempty,oneof=1 2 3"`
	ClassLabel     *string `json:"class_label" validate:"omitempty,max=8"`
	InspectorName  *string `json:"inspector_name" validate:"omitempty,max=64"`
	Area           *string `json:"area" validate:"omitempty,oneof=indoor outdoor other"`
	Item           *string `json:"item" validate:"omitempty,max=64"`
	Condition      *string `json:"condition" validate:"omitempty,max=64"`
	Remark         *string `json:"remark" validate:"omitempty,max=500"`
}

// ScoreAdjustRequest nudges the running deduction score by whole units.
type ScoreAdjustRequest struct {
	Delta int `json:"delta" validate:"required,oneof=-1 1"`
}
