package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	apperrors "filmpulse/internal/errors"
	"filmpulse/internal/model"
)

// quietLogger keeps test output clean
func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeCatalog implements catalog.Repository in memory
type fakeCatalog struct {
	runtimes map[string]*model.DocumentedRuntime
	filmIDs  map[string]int // lowercased title -> id
	listErr  error
}

func (f *fakeCatalog) CreateFilm(ctx context.Context, film *model.Film) error {
	if f.filmIDs == nil {
		f.filmIDs = make(map[string]int)
	}
	film.ID = len(f.filmIDs) + 1
	f.filmIDs[strings.ToLower(film.Title)] = film.ID
	return nil
}

func (f *fakeCatalog) FindFilmIDByTitle(ctx context.Context, title string) (*int, error) {
	if id, ok := f.filmIDs[strings.ToLower(title)]; ok {
		return &id, nil
	}
	return nil, apperrors.New(apperrors.CodeNotFound, "film not found in catalog")
}

func (f *fakeCatalog) ListFilms(ctx context.Context) ([]*model.Film, error) { return nil, nil }

func (f *fakeCatalog) UpsertRuntime(ctx context.Context, runtime *model.DocumentedRuntime) error {
	if f.runtimes == nil {
		f.runtimes = make(map[string]*model.DocumentedRuntime)
	}
	f.runtimes[runtime.FilmSlug] = runtime
	return nil
}

func (f *fakeCatalog) GetRuntime(ctx context.Context, filmSlug string) (*model.DocumentedRuntime, error) {
	if r, ok := f.runtimes[filmSlug]; ok {
		return r, nil
	}
	return nil, apperrors.New(apperrors.CodeNotFound, "documented runtime not found")
}

func (f *fakeCatalog) ListRuntimes(ctx context.Context) (map[string]*model.DocumentedRuntime, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.runtimes, nil
}

// fakeBuckets implements bucket.Repository in memory with the store's
// insert-or-ignore semantics
type fakeBuckets struct {
	rows      map[string]*model.MinuteBucket
	insertErr error
}

func bucketKey(b *model.MinuteBucket) string {
	return fmt.Sprintf("%s|%s|%d", b.FilmSlug, b.Language, b.Minute)
}

func (f *fakeBuckets) InsertBatch(ctx context.Context, buckets []*model.MinuteBucket) (int, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	if f.rows == nil {
		f.rows = make(map[string]*model.MinuteBucket)
	}
	written := 0
	for _, b := range buckets {
		key := bucketKey(b)
		if _, exists := f.rows[key]; exists {
			continue
		}
		f.rows[key] = b
		written++
	}
	return written, nil
}

func (f *fakeBuckets) CountByFilmLanguage(ctx context.Context, filmSlug, language string) (int, error) {
	count := 0
	for _, b := range f.rows {
		if b.FilmSlug == filmSlug && b.Language == language {
			count++
		}
	}
	return count, nil
}

func (f *fakeBuckets) GetByFilmLanguage(ctx context.Context, filmSlug, language string) ([]*model.MinuteBucket, error) {
	var out []*model.MinuteBucket
	for _, b := range f.rows {
		if b.FilmSlug == filmSlug && b.Language == language {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBuckets) DeleteByFilmLanguage(ctx context.Context, filmSlug, language string) error {
	for k, b := range f.rows {
		if b.FilmSlug == filmSlug && b.Language == language {
			delete(f.rows, k)
		}
	}
	return nil
}

// fakeScorer scores every line with a fixed neutral weight
type fakeScorer struct {
	warmupErr error
	scoreErr  error
	failTexts map[string]bool // texts that always fail scoring
}

func (f *fakeScorer) Warmup(ctx context.Context) error { return f.warmupErr }

func (f *fakeScorer) Score(ctx context.Context, text string) (model.EmotionVector, error) {
	if f.scoreErr != nil {
		return model.EmotionVector{}, f.scoreErr
	}
	if f.failTexts[text] {
		return model.EmotionVector{}, errors.New("inference failed")
	}
	var v model.EmotionVector
	v.Set("neutral", 0.5)
	return v, nil
}
