package catalog

import (
	"context"

	"filmpulse/internal/model"
)

// Repository defines operations for the film catalog and documented runtimes
type Repository interface {
	// Film catalog operations
	CreateFilm(ctx context.Context, film *model.Film) error
	FindFilmIDByTitle(ctx context.Context, title string) (*int, error)
	ListFilms(ctx context.Context) ([]*model.Film, error)

	// Documented runtime operations
	UpsertRuntime(ctx context.Context, runtime *model.DocumentedRuntime) error
	GetRuntime(ctx context.Context, filmSlug string) (*model.DocumentedRuntime, error)
	ListRuntimes(ctx context.Context) (map[string]*model.DocumentedRuntime, error)
}
