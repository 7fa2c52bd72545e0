package emotion

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	apperrors "filmpulse/internal/errors"
	"filmpulse/internal/model"
)

// ScoredLine is one classified dialogue line, keyed by its start offset
type ScoredLine struct {
	Start    float64
	Emotions model.EmotionVector
}

// ScoreTranscript classifies every dialogue entry with non-empty text.
// A scoring failure (after the client's own retries) aborts this
// transcript and is surfaced to the caller.
func ScoreTranscript(ctx context.Context, scorer Scorer, t *model.Transcript) ([]ScoredLine, error) {
	lines := make([]ScoredLine, 0, len(t.Entries))
	for _, entry := range t.Entries {
		if entry.Text == "" {
			continue
		}
		vector, err := scorer.Score(ctx, entry.Text)
		if err != nil {
			return nil, err
		}
		lines = append(lines, ScoredLine{Start: entry.Start, Emotions: vector})
	}
	return lines, nil
}

// Aggregator turns scored dialogue lines into smoothed per-minute buckets
type Aggregator struct {
	// SmoothingWindow is the centered moving-average span in minutes
	SmoothingWindow int

	// BufferMinutes is the tolerated overrun of emotion data past the
	// documented runtime before the transcript is rejected
	BufferMinutes int

	Log *logrus.Logger
}

// Aggregate buckets scored lines per whole minute of film time, averages
// label-wise, and smooths across the populated buckets. Minutes without
// dialogue are not synthesized. A last bucket beyond
// documented_runtime_minutes + BufferMinutes is a hard data-quality
// defect aborting this transcript.
func (a *Aggregator) Aggregate(t *model.Transcript, lines []ScoredLine, runtime *model.DocumentedRuntime) ([]*model.MinuteBucket, error) {
	if t.TotalDuration <= 0 {
		return nil, apperrors.New(apperrors.CodeDataQuality,
			fmt.Sprintf("transcript %s (%s) declares no total_duration", t.FilmSlug, t.Language))
	}

	sums := make(map[int]*model.EmotionVector)
	counts := make(map[int]int)
	for _, line := range lines {
		minute := int(line.Start) / 60
		if minute < 0 {
			minute = 0
		}
		if sums[minute] == nil {
			sums[minute] = &model.EmotionVector{}
		}
		for i := range line.Emotions {
			sums[minute][i] += line.Emotions[i]
		}
		counts[minute]++
	}

	minutes := make([]int, 0, len(sums))
	for m := range sums {
		minutes = append(minutes, m)
	}
	sort.Ints(minutes)

	if len(minutes) > 0 && runtime != nil {
		lastMinute := minutes[len(minutes)-1]
		runtimeMinutes := runtime.RuntimeSeconds / 60
		if lastMinute > runtimeMinutes+a.BufferMinutes {
			return nil, apperrors.New(apperrors.CodeDataQuality,
				fmt.Sprintf("emotion data for %s (%s) reaches minute %d, beyond documented runtime %d min plus %d min buffer",
					t.FilmSlug, t.Language, lastMinute, runtimeMinutes, a.BufferMinutes))
		}
		if a.Log != nil && lastMinute < runtimeMinutes {
			a.Log.WithFields(logrus.Fields{
				"film":            t.FilmSlug,
				"language":        t.Language,
				"last_minute":     lastMinute,
				"runtime_minutes": runtimeMinutes,
			}).Info("emotion data ends before documented runtime")
		}
	}

	buckets := make([]*model.MinuteBucket, 0, len(minutes))
	for _, m := range minutes {
		var avg model.EmotionVector
		n := float64(counts[m])
		for i := range avg {
			avg[i] = sums[m][i] / n
		}
		buckets = append(buckets, &model.MinuteBucket{
			FilmSlug:      t.FilmSlug,
			Language:      t.Language,
			Minute:        m,
			DialogueCount: counts[m],
			Emotions:      avg,
			SourceVersion: t.SourceVersion,
		})
	}

	smooth(buckets, a.SmoothingWindow)

	return buckets, nil
}

// smooth applies a centered moving average over the ordered populated
// buckets. Edges use a shrinking window instead of zero padding so real
// signal is never diluted by phantom empty minutes. Each label column is
// smoothed independently.
func smooth(buckets []*model.MinuteBucket, window int) {
	if window <= 1 || len(buckets) < 2 {
		return
	}

	raw := make([]model.EmotionVector, len(buckets))
	for i, b := range buckets {
		raw[i] = b.Emotions
	}

	for i := range buckets {
		lo := i - (window-1)/2
		hi := i + window/2
		if lo < 0 {
			lo = 0
		}
		if hi > len(buckets)-1 {
			hi = len(buckets) - 1
		}

		var sum model.EmotionVector
		for j := lo; j <= hi; j++ {
			for k := range sum {
				sum[k] += raw[j][k]
			}
		}
		n := float64(hi - lo + 1)
		for k := range sum {
			sum[k] /= n
		}
		buckets[i].Emotions = sum
	}
}
