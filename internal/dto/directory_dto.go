package dto

// DirectoryListResponse carries the filtered roster projection for one grade.
// An empty list can mean either "no matches" or "directory unavailable"; the
// diagnostics endpoint is the out-of-band signal distinguishing the two.
type DirectoryListResponse struct {
	Grade    string   `json:"grade"`
	Items    []string `json:"items"`
	CacheHit bool     `json:"cache_hit"`
}

// SeedInspector is one roster entry in the seeding payload.
type SeedInspector struct {
	Name       string `json:"name" validate:"required,min=1,max=64"`
	ClassLabel string `json:"class_label" validate:"required,min=2,max=8"`
}

// SeedClass is one class entry in the seeding payload.
type SeedClass struct {
	Label    string `json:"label" validate:"required,min=2,max=8"`
	Homeroom string `json:"homeroom" validate:"max=64"`
}

// SeedDirectoryRequest replaces both rosters in one token-gated call.
type SeedDirectoryRequest struct {
	Token      string          `json:"token"`
	Inspectors []SeedInspector `json:"inspectors" validate:"dive"`
	Classes    []SeedClass     `json:"classes" validate:"dive"`
}

// SeedDirectoryResponse reports the number of rows written per roster.
type SeedDirectoryResponse struct {
	Inspectors int64 `json:"inspectors"`
	Classes    int64 `json:"classes"`
}

// VocabularyResponse lists the fixed violation vocabularies for the form.
type VocabularyResponse struct {
	Areas      []string            `json:"areas"`
	Items      map[string][]string `json:"items"`
	Conditions []string            `json:"conditions"`
}
