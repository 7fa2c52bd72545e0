package pipeline

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	apperrors "filmpulse/internal/errors"
	"filmpulse/internal/model"
	"filmpulse/internal/repository/bucket"
	"filmpulse/internal/repository/catalog"
)

// Loader resolves a film's catalog identity and writes aggregated minute
// buckets idempotently.
type Loader struct {
	catalogRepo catalog.Repository
	bucketRepo  bucket.Repository
	log         *logrus.Logger
}

// NewLoader creates a validated loader
func NewLoader(catalogRepo catalog.Repository, bucketRepo bucket.Repository, log *logrus.Logger) *Loader {
	return &Loader{
		catalogRepo: catalogRepo,
		bucketRepo:  bucketRepo,
		log:         log,
	}
}

// Load writes minute buckets for one transcript and returns the number of
// rows actually written. An unresolved catalog title is a warning, not a
// failure: rows are written with a null film id and kept for backfill.
// Key collisions from reruns are ignored by the store; any other write
// error propagates.
func (l *Loader) Load(ctx context.Context, t *model.Transcript, buckets []*model.MinuteBucket) (int, error) {
	filmID := l.resolveFilmID(ctx, t)
	for _, b := range buckets {
		b.FilmID = filmID
	}

	written, err := l.bucketRepo.InsertBatch(ctx, buckets)
	if err != nil {
		return written, err
	}

	if skipped := len(buckets) - written; skipped > 0 {
		l.log.WithFields(logrus.Fields{
			"film":     t.FilmSlug,
			"language": t.Language,
			"skipped":  skipped,
		}).Debug("existing minute buckets left untouched")
	}

	return written, nil
}

// resolveFilmID looks the film up in the human catalog. The title comes
// from the transcript's explicit film name when present, otherwise it is
// derived from the slug.
func (l *Loader) resolveFilmID(ctx context.Context, t *model.Transcript) *int {
	title := t.FilmName
	if title == "" {
		title = TitleFromSlug(t.FilmSlug)
	}

	id, err := l.catalogRepo.FindFilmIDByTitle(ctx, title)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			l.log.WithFields(logrus.Fields{
				"film":  t.FilmSlug,
				"title": title,
			}).Warn("film not found in catalog, writing buckets without film id")
		} else {
			l.log.WithError(err).WithField("film", t.FilmSlug).Warn("film id lookup failed")
		}
		return nil
	}
	return id
}

// TitleFromSlug derives a display title from a film slug:
// "the_seventh_seal" -> "The Seventh Seal"
func TitleFromSlug(slug string) string {
	words := strings.Split(slug, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
