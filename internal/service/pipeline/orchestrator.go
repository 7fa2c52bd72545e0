package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"filmpulse/internal/model"
	"filmpulse/internal/repository/catalog"
	"filmpulse/internal/service/emotion"
	"filmpulse/internal/service/transcript"
	"filmpulse/internal/service/validation"
)

// RunOptions narrows a batch run to one film and/or language
type RunOptions struct {
	FilmFilter     string
	LanguageFilter string

	// DryRun processes and reports without touching the store
	DryRun bool
}

// Orchestrator drives the catalog x language batch. Items are processed
// sequentially; one item's failure never aborts the batch.
type Orchestrator struct {
	catalogRepo catalog.Repository
	scorer      emotion.Scorer
	aggregator  *emotion.Aggregator
	loader      *Loader
	log         *logrus.Logger
}

// NewOrchestrator creates a batch orchestrator
func NewOrchestrator(catalogRepo catalog.Repository, scorer emotion.Scorer, aggregator *emotion.Aggregator, loader *Loader, log *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		catalogRepo: catalogRepo,
		scorer:      scorer,
		aggregator:  aggregator,
		loader:      loader,
		log:         log,
	}
}

// Run processes every selected (film, language, version) artifact under
// dir and returns one outcome per item. The classifier warmup failing is
// fatal for the whole run; everything after that is per-item.
func (o *Orchestrator) Run(ctx context.Context, dir string, opts RunOptions) ([]*model.ItemOutcome, error) {
	artifacts, err := o.discover(dir, opts)
	if err != nil {
		return nil, err
	}

	runtimes, err := o.catalogRepo.ListRuntimes(ctx)
	if err != nil {
		return nil, err
	}

	// One warmup per run stands in for loading the model once; there is
	// no per-item fallback when the classifier is down.
	if err := o.scorer.Warmup(ctx); err != nil {
		return nil, err
	}

	outcomes := make([]*model.ItemOutcome, 0, len(artifacts))
	for _, artifact := range artifacts {
		outcome := &model.ItemOutcome{
			FilmSlug:      artifact.FilmSlug,
			Language:      artifact.Language,
			SourceVersion: artifact.Version,
		}

		written, err := o.processItem(ctx, artifact, runtimes, opts.DryRun)
		if err != nil {
			outcome.ErrorMessage = err.Error()
			o.log.WithError(err).WithFields(logrus.Fields{
				"film":     artifact.FilmSlug,
				"language": artifact.Language,
			}).Error("batch item failed")
		} else {
			outcome.Success = true
			outcome.RecordsWritten = written
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// processItem runs load -> classify -> aggregate -> persist for one
// artifact. Panics are recovered into the item's error so a malformed
// artifact cannot take down the batch.
func (o *Orchestrator) processItem(ctx context.Context, artifact transcript.Artifact, runtimes map[string]*model.DocumentedRuntime, dryRun bool) (written int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected processing error: %v", r)
		}
	}()

	t, err := transcript.Load(artifact)
	if err != nil {
		return 0, err
	}

	lines, err := emotion.ScoreTranscript(ctx, o.scorer, t)
	if err != nil {
		return 0, err
	}

	buckets, err := o.aggregator.Aggregate(t, lines, runtimes[t.FilmSlug])
	if err != nil {
		return 0, err
	}

	if dryRun {
		o.log.WithFields(logrus.Fields{
			"film":     t.FilmSlug,
			"language": t.Language,
			"buckets":  len(buckets),
		}).Info("dry run, skipping store write")
		return 0, nil
	}

	return o.loader.Load(ctx, t, buckets)
}

// Validate runs the timing and cross-language checks over every selected
// artifact without classifying or writing anything.
func (o *Orchestrator) Validate(ctx context.Context, dir string, opts RunOptions) (validation.Summary, error) {
	artifacts, err := o.discover(dir, opts)
	if err != nil {
		return validation.Summary{}, err
	}

	runtimes, err := o.catalogRepo.ListRuntimes(ctx)
	if err != nil {
		return validation.Summary{}, err
	}

	var results []model.ValidationResult
	durationsByFilm := make(map[string]map[string]float64)

	for _, artifact := range artifacts {
		t, err := transcript.Load(artifact)
		if err != nil {
			// An unloadable artifact still gets a per-item verdict
			results = append(results, model.ValidationResult{
				FilmSlug: artifact.FilmSlug,
				Language: artifact.Language,
				Status:   model.StatusFail,
				Issues:   []string{err.Error()},
			})
			continue
		}

		results = append(results, validation.Validate(t, runtimes))

		if durationsByFilm[t.FilmSlug] == nil {
			durationsByFilm[t.FilmSlug] = make(map[string]float64)
		}
		durationsByFilm[t.FilmSlug][t.Language] = t.MeasuredDuration()
	}

	films := make([]string, 0, len(durationsByFilm))
	for film := range durationsByFilm {
		films = append(films, film)
	}
	sort.Strings(films)

	var crossResults []model.CrossLanguageResult
	for _, film := range films {
		crossResults = append(crossResults, validation.CheckCrossLanguage(film, durationsByFilm[film]))
	}

	return validation.Summarize(results, crossResults), nil
}

// discover lists, prioritizes and filters the artifacts for a run,
// ordered by film then language
func (o *Orchestrator) discover(dir string, opts RunOptions) ([]transcript.Artifact, error) {
	paths, err := transcript.Discover(dir)
	if err != nil {
		return nil, err
	}

	selected := transcript.SelectPreferred(paths, o.log)

	artifacts := make([]transcript.Artifact, 0, len(selected))
	for key, artifact := range selected {
		if opts.FilmFilter != "" && key.FilmSlug != opts.FilmFilter {
			continue
		}
		if opts.LanguageFilter != "" && key.Language != opts.LanguageFilter {
			continue
		}
		artifacts = append(artifacts, artifact)
	}

	sort.Slice(artifacts, func(i, j int) bool {
		if artifacts[i].FilmSlug != artifacts[j].FilmSlug {
			return artifacts[i].FilmSlug < artifacts[j].FilmSlug
		}
		return artifacts[i].Language < artifacts[j].Language
	})

	return artifacts, nil
}
