package model

// Status is a validation classification. Classifications are data, not
// errors: a FAIL status is still a successfully computed result.
type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Downgrade lowers the current status to floor if floor is worse.
// PASS < WARN < FAIL; a status never improves during validation.
func (s Status) Downgrade(floor Status) Status {
	rank := map[Status]int{StatusPass: 0, StatusWarn: 1, StatusFail: 2}
	if rank[floor] > rank[s] {
		return floor
	}
	return s
}

// ValidationResult is the per-transcript timing verdict
type ValidationResult struct {
	FilmSlug          string   `json:"film_slug"`
	Language          string   `json:"language"`
	Status            Status   `json:"status"`
	DriftPct          *float64 `json:"drift_pct,omitempty"` // nil when no documented runtime
	DocumentedRuntime float64  `json:"documented_runtime"`
	MeasuredDuration  float64  `json:"measured_duration"`
	LastDialogueEnd   float64  `json:"last_dialogue_end"`
	Issues            []string `json:"issues,omitempty"`   // blocking
	Warnings          []string `json:"warnings,omitempty"` // non-blocking
}

// CrossLanguageResult is the per-film duration agreement verdict across
// all available language versions
type CrossLanguageResult struct {
	FilmSlug    string             `json:"film_slug"`
	Status      Status             `json:"status"`
	MaxDriftPct float64            `json:"max_drift_pct"`
	Durations   map[string]float64 `json:"durations"` // language -> measured seconds
	Issues      []string           `json:"issues,omitempty"`
	Warnings    []string           `json:"warnings,omitempty"`
}

// ItemOutcome is the result of processing one (film, language, version)
// batch item. A batch always completes with one outcome per item.
type ItemOutcome struct {
	FilmSlug       string `json:"film_slug"`
	Language       string `json:"language"`
	SourceVersion  string `json:"source_version"`
	Success        bool   `json:"success"`
	RecordsWritten int    `json:"records_written"`
	ErrorMessage   string `json:"error_message,omitempty"`
}
