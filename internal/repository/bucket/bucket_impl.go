package bucket

import (
	"context"

	"filmpulse/internal/model"
	"filmpulse/internal/repository/common"
)

// bucketRepository implements Repository using PostgreSQL
type bucketRepository struct {
	pool common.Pool
}

// NewRepository creates a new instance of Repository
func NewRepository(pool common.Pool) Repository {
	return &bucketRepository{
		pool: pool,
	}
}

const insertBucketSQL = `INSERT INTO emotion_minutes
	(film_slug, film_id, language_code, minute_offset, dialogue_count,
	 anger, disgust, fear, joy, neutral, sadness, surprise, source_version)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (film_slug, language_code, minute_offset) DO NOTHING`

// InsertBatch writes buckets one row at a time so each key conflict is
// ignored independently. CopyFrom is not usable here: it cannot express
// ON CONFLICT DO NOTHING, and idempotent reruns are part of the contract.
func (r *bucketRepository) InsertBatch(ctx context.Context, buckets []*model.MinuteBucket) (int, error) {
	if len(buckets) == 0 {
		return 0, nil // Nothing to insert
	}

	written := 0
	for _, b := range buckets {
		tag, err := r.pool.Exec(ctx, insertBucketSQL,
			b.FilmSlug,
			b.FilmID,
			b.Language,
			b.Minute,
			b.DialogueCount,
			b.Emotions[0],
			b.Emotions[1],
			b.Emotions[2],
			b.Emotions[3],
			b.Emotions[4],
			b.Emotions[5],
			b.Emotions[6],
			b.SourceVersion,
		)
		if err != nil {
			return written, common.HandlePostgreSQLError(err, "failed to insert minute bucket")
		}
		written += int(tag.RowsAffected())
	}

	return written, nil
}

// CountByFilmLanguage returns the stored bucket count for one film+language
func (r *bucketRepository) CountByFilmLanguage(ctx context.Context, filmSlug, language string) (int, error) {
	sql := `SELECT COUNT(*) FROM emotion_minutes WHERE film_slug = $1 AND language_code = $2`
	row := r.pool.QueryRow(ctx, sql, filmSlug, language)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, common.HandlePostgreSQLError(err, "failed to count minute buckets")
	}
	return count, nil
}

// GetByFilmLanguage retrieves stored buckets ordered by minute offset
func (r *bucketRepository) GetByFilmLanguage(ctx context.Context, filmSlug, language string) ([]*model.MinuteBucket, error) {
	sql := `SELECT film_slug, film_id, language_code, minute_offset, dialogue_count,
		anger, disgust, fear, joy, neutral, sadness, surprise, source_version
		FROM emotion_minutes
		WHERE film_slug = $1 AND language_code = $2
		ORDER BY minute_offset`

	rows, err := r.pool.Query(ctx, sql, filmSlug, language)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to get minute buckets")
	}
	defer rows.Close()

	var buckets []*model.MinuteBucket
	for rows.Next() {
		var b model.MinuteBucket
		err := rows.Scan(
			&b.FilmSlug,
			&b.FilmID,
			&b.Language,
			&b.Minute,
			&b.DialogueCount,
			&b.Emotions[0],
			&b.Emotions[1],
			&b.Emotions[2],
			&b.Emotions[3],
			&b.Emotions[4],
			&b.Emotions[5],
			&b.Emotions[6],
			&b.SourceVersion,
		)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan minute bucket")
		}
		buckets = append(buckets, &b)
	}

	return buckets, nil
}

// DeleteByFilmLanguage removes all buckets for one film+language
func (r *bucketRepository) DeleteByFilmLanguage(ctx context.Context, filmSlug, language string) error {
	sql := `DELETE FROM emotion_minutes WHERE film_slug = $1 AND language_code = $2`
	_, err := r.pool.Exec(ctx, sql, filmSlug, language)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to delete minute buckets")
	}
	return nil
}
