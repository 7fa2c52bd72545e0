package bucket

import (
	"context"

	"filmpulse/internal/model"
)

// Repository defines operations for MinuteBucket persistence
type Repository interface {
	// InsertBatch writes minute buckets with insert-or-ignore semantics and
	// returns the number of rows actually written. Rows whose
	// (film_slug, language_code, minute_offset) key already exists are
	// silently skipped, so reruns of the same item are idempotent.
	InsertBatch(ctx context.Context, buckets []*model.MinuteBucket) (int, error)

	// CountByFilmLanguage returns the number of stored buckets for one
	// film+language
	CountByFilmLanguage(ctx context.Context, filmSlug, language string) (int, error)

	// GetByFilmLanguage retrieves stored buckets ordered by minute offset
	GetByFilmLanguage(ctx context.Context, filmSlug, language string) ([]*model.MinuteBucket, error)

	// DeleteByFilmLanguage removes all buckets for one film+language,
	// used before a forced re-ingest of a replaced source
	DeleteByFilmLanguage(ctx context.Context, filmSlug, language string) error
}
