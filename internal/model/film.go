package model

import "time"

// DialogueEntry is one timed subtitle line within a transcript
type DialogueEntry struct {
	Start float64 `json:"start"` // offset from film start in seconds
	End   float64 `json:"end"`   // offset from film start in seconds
	Text  string  `json:"text"`
}

// Transcript is one acquired subtitle track for a film in one language.
// Immutable once loaded; produced by the external acquisition tooling.
type Transcript struct {
	FilmSlug      string          `json:"film_slug"` // base slug without language suffix
	FilmName      string          `json:"film_name,omitempty"`
	Language      string          `json:"language"`
	SourceVersion string          `json:"source_version"` // "v1" or "v2"
	TotalDuration float64         `json:"total_duration"` // declared duration in seconds
	Entries       []DialogueEntry `json:"entries"`
}

// MeasuredDuration returns the end offset of the last dialogue entry,
// 0 for an empty transcript.
func (t *Transcript) MeasuredDuration() float64 {
	if len(t.Entries) == 0 {
		return 0
	}
	return t.Entries[len(t.Entries)-1].End
}

// DocumentedRuntime is the authoritative runtime for one film,
// externally curated and read-only to the pipeline.
type DocumentedRuntime struct {
	FilmSlug        string `yaml:"film_slug" json:"film_slug" db:"film_slug"`
	Title           string `yaml:"title" json:"title" db:"title"`
	RuntimeSeconds  int    `yaml:"runtime_seconds" json:"runtime_seconds" db:"runtime_seconds"`
	ReferenceSource string `yaml:"reference_source" json:"reference_source" db:"reference_source"`
}

// Film is a row of the human-facing catalog used for film-id resolution
type Film struct {
	ID        int       `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MinuteBucket is one aggregated, smoothed minute of emotion signal for a
// film+language. Unique on (FilmSlug, Language, Minute).
type MinuteBucket struct {
	FilmSlug      string        `json:"film_slug" db:"film_slug"`
	FilmID        *int          `json:"film_id,omitempty" db:"film_id"` // nil when catalog resolution failed
	Language      string        `json:"language_code" db:"language_code"`
	Minute        int           `json:"minute_offset" db:"minute_offset"`
	DialogueCount int           `json:"dialogue_count" db:"dialogue_count"`
	Emotions      EmotionVector `json:"emotions"`
	SourceVersion string        `json:"source_version" db:"source_version"`
}
