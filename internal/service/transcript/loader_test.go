package transcript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "filmpulse/internal/errors"
)

func writeArtifact(t *testing.T, dir, name, content string) Artifact {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	artifact, ok := ParseArtifactName(path)
	require.True(t, ok)
	return artifact
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	artifact := writeArtifact(t, dir, "the_godfather_en_v2.json", `{
		"metadata": {
			"film": "the_godfather_en",
			"film_name": "The Godfather",
			"language": "en",
			"total_duration": 10500,
			"entry_count": 3
		},
		"entries": [
			{"start": 120.5, "end": 124.0, "text": "I believe in America."},
			{"start": 31.0, "end": 35.5, "text": ""},
			{"start": 10440.0, "end": 10444.2, "text": "Don Corleone."}
		]
	}`)

	transcript, err := Load(artifact)
	require.NoError(t, err)

	assert.Equal(t, "the_godfather", transcript.FilmSlug)
	assert.Equal(t, "The Godfather", transcript.FilmName)
	assert.Equal(t, "en", transcript.Language)
	assert.Equal(t, "v2", transcript.SourceVersion)
	assert.Equal(t, 10500.0, transcript.TotalDuration)

	// Entries are sorted by start offset
	require.Len(t, transcript.Entries, 3)
	assert.Equal(t, 31.0, transcript.Entries[0].Start)
	assert.Equal(t, 10444.2, transcript.MeasuredDuration())
}

func TestLoad_MissingTotalDuration(t *testing.T) {
	dir := t.TempDir()
	artifact := writeArtifact(t, dir, "metropolis_de.json", `{
		"metadata": {"film": "metropolis_de", "language": "de"},
		"entries": [{"start": 1.0, "end": 2.0, "text": "x"}]
	}`)

	_, err := Load(artifact)
	require.Error(t, err)

	// A missing declared duration is a typed fatal defect, not a
	// validation classification
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDataQuality))
	assert.Contains(t, err.Error(), "total_duration")
}

func TestLoad_ZeroTotalDuration(t *testing.T) {
	dir := t.TempDir()
	artifact := writeArtifact(t, dir, "metropolis_de.json", `{
		"metadata": {"film": "metropolis_de", "language": "de", "total_duration": 0},
		"entries": []
	}`)

	_, err := Load(artifact)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDataQuality))
}

func TestLoad_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	artifact := writeArtifact(t, dir, "broken_en.json", `{not json`)

	_, err := Load(artifact)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidArg))
}

func TestLoad_MissingFile(t *testing.T) {
	artifact := Artifact{Path: "/nonexistent/gone_en.json", FilmSlug: "gone", Language: "en", Version: "v1"}

	_, err := Load(artifact)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_film_en.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_film_en.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(""), 0644))

	paths, err := Discover(dir)
	require.NoError(t, err)

	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "a_film_en.json"), paths[0])
	assert.Equal(t, filepath.Join(dir, "b_film_en.json"), paths[1])
}
