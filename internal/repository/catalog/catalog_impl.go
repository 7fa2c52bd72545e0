package catalog

import (
	"context"
	"errors"

	apperrors "filmpulse/internal/errors"
	"filmpulse/internal/model"
	"filmpulse/internal/repository/common"
	"github.com/jackc/pgx/v5"
)

// catalogRepository implements Repository using PostgreSQL
type catalogRepository struct {
	pool common.Pool
}

// NewRepository creates a new instance of Repository
func NewRepository(pool common.Pool) Repository {
	return &catalogRepository{
		pool: pool,
	}
}

// CreateFilm creates a new film catalog entry
func (r *catalogRepository) CreateFilm(ctx context.Context, film *model.Film) error {
	sql := `INSERT INTO films (title) VALUES ($1) RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, sql, film.Title).Scan(&film.ID, &film.CreatedAt)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create film")
	}
	return nil
}

// FindFilmIDByTitle resolves a film id by case-insensitive exact title match.
// A miss is a NOT_FOUND error; callers treat it as a warning, not a failure.
func (r *catalogRepository) FindFilmIDByTitle(ctx context.Context, title string) (*int, error) {
	sql := `SELECT id FROM films WHERE LOWER(title) = LOWER($1)`
	row := r.pool.QueryRow(ctx, sql, title)

	var id int
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "film not found in catalog")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to resolve film id")
	}
	return &id, nil
}

// ListFilms retrieves all catalog entries ordered by title
func (r *catalogRepository) ListFilms(ctx context.Context) ([]*model.Film, error) {
	sql := `SELECT id, title, created_at FROM films ORDER BY title`
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list films")
	}
	defer rows.Close()

	var films []*model.Film
	for rows.Next() {
		var film model.Film
		if err := rows.Scan(&film.ID, &film.Title, &film.CreatedAt); err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan film")
		}
		films = append(films, &film)
	}

	return films, nil
}

// UpsertRuntime inserts or replaces one documented runtime entry
func (r *catalogRepository) UpsertRuntime(ctx context.Context, runtime *model.DocumentedRuntime) error {
	sql := `INSERT INTO film_runtimes (film_slug, title, runtime_seconds, reference_source)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (film_slug) DO UPDATE
		SET title = EXCLUDED.title,
			runtime_seconds = EXCLUDED.runtime_seconds,
			reference_source = EXCLUDED.reference_source`

	_, err := r.pool.Exec(ctx, sql,
		runtime.FilmSlug,
		runtime.Title,
		runtime.RuntimeSeconds,
		runtime.ReferenceSource,
	)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to upsert documented runtime")
	}
	return nil
}

// GetRuntime retrieves the documented runtime for one film
func (r *catalogRepository) GetRuntime(ctx context.Context, filmSlug string) (*model.DocumentedRuntime, error) {
	sql := `SELECT film_slug, title, runtime_seconds, reference_source
		FROM film_runtimes WHERE film_slug = $1`
	row := r.pool.QueryRow(ctx, sql, filmSlug)

	var runtime model.DocumentedRuntime
	err := row.Scan(
		&runtime.FilmSlug,
		&runtime.Title,
		&runtime.RuntimeSeconds,
		&runtime.ReferenceSource,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "documented runtime not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get documented runtime")
	}
	return &runtime, nil
}

// ListRuntimes loads the whole documented runtime table keyed by film slug.
// Loaded once per batch run.
func (r *catalogRepository) ListRuntimes(ctx context.Context) (map[string]*model.DocumentedRuntime, error) {
	sql := `SELECT film_slug, title, runtime_seconds, reference_source FROM film_runtimes`
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list documented runtimes")
	}
	defer rows.Close()

	runtimes := make(map[string]*model.DocumentedRuntime)
	for rows.Next() {
		var runtime model.DocumentedRuntime
		err := rows.Scan(
			&runtime.FilmSlug,
			&runtime.Title,
			&runtime.RuntimeSeconds,
			&runtime.ReferenceSource,
		)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan documented runtime")
		}
		runtimes[runtime.FilmSlug] = &runtime
	}

	return runtimes, nil
}
