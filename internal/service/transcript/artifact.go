package transcript

import (
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Artifact is one discovered transcript file, identified by its name.
// Filenames encode {film_slug}_{language}[_v2].json; a file without a
// version marker is a v1 source.
type Artifact struct {
	Path     string
	FilmSlug string // base slug without language suffix
	Language string
	Version  string // "v1" or "v2"
}

// Key identifies one (film, language) pair regardless of source version
type Key struct {
	FilmSlug string
	Language string
}

// ParseArtifactName extracts film slug, language and source version from a
// transcript filename. Returns false for names that do not follow the
// convention.
func ParseArtifactName(path string) (Artifact, bool) {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	version := "v1"
	if strings.HasSuffix(name, "_v2") {
		version = "v2"
		name = strings.TrimSuffix(name, "_v2")
	} else {
		name = strings.TrimSuffix(name, "_v1")
	}

	// Last underscore-separated token is the language code
	idx := strings.LastIndex(name, "_")
	if idx <= 0 || idx == len(name)-1 {
		return Artifact{}, false
	}

	lang := name[idx+1:]
	if len(lang) < 2 || len(lang) > 3 {
		return Artifact{}, false
	}

	return Artifact{
		Path:     path,
		FilmSlug: name[:idx],
		Language: lang,
		Version:  version,
	}, true
}

// SelectPreferred resolves competing source versions per (film, language):
// v2 replaces v1 when both exist, a lone v1 is kept as-is. Unparseable
// filenames are skipped with a warning. Pure; no filesystem access.
func SelectPreferred(paths []string, log *logrus.Logger) map[Key]Artifact {
	selected := make(map[Key]Artifact)

	for _, path := range paths {
		artifact, ok := ParseArtifactName(path)
		if !ok {
			if log != nil {
				log.WithField("path", path).Warn("skipping artifact with unrecognized name")
			}
			continue
		}

		key := Key{FilmSlug: artifact.FilmSlug, Language: artifact.Language}
		current, exists := selected[key]
		if !exists || artifact.Version > current.Version {
			selected[key] = artifact
		}
	}

	return selected
}
