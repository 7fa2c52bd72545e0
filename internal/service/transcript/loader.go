package transcript

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	apperrors "filmpulse/internal/errors"
	"filmpulse/internal/model"
)

// artifactDocument is the on-disk shape of one transcript artifact
type artifactDocument struct {
	Metadata struct {
		Film          string   `json:"film"`
		FilmName      string   `json:"film_name"`
		Language      string   `json:"language"`
		TotalDuration *float64 `json:"total_duration"`
		EntryCount    int      `json:"entry_count"`
	} `json:"metadata"`
	Entries []model.DialogueEntry `json:"entries"`
}

// Load reads and validates one transcript artifact. A metadata block
// without total_duration means the artifact must be re-produced upstream:
// that is a typed DATA_QUALITY error, not a validation classification.
func Load(artifact Artifact) (*model.Transcript, error) {
	data, err := os.ReadFile(artifact.Path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "failed to read transcript artifact")
	}

	var doc artifactDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidArg, "failed to parse transcript artifact")
	}

	if doc.Metadata.TotalDuration == nil || *doc.Metadata.TotalDuration <= 0 {
		return nil, apperrors.New(apperrors.CodeDataQuality,
			"transcript metadata missing total_duration: "+filepath.Base(artifact.Path))
	}

	entries := doc.Entries
	// Entries are ordered by start offset; artifacts normally arrive sorted
	// but a re-acquired v2 source is not guaranteed to be.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start < entries[j].Start
	})

	return &model.Transcript{
		FilmSlug:      artifact.FilmSlug,
		FilmName:      doc.Metadata.FilmName,
		Language:      artifact.Language,
		SourceVersion: artifact.Version,
		TotalDuration: *doc.Metadata.TotalDuration,
		Entries:       entries,
	}, nil
}

// Discover lists transcript artifact files in a directory
func Discover(dir string) ([]string, error) {
	pattern := filepath.Join(dir, "*.json")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to list transcript artifacts")
	}
	sort.Strings(paths)
	return paths, nil
}
