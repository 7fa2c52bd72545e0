package validation

import (
	"fmt"
	"math"

	"filmpulse/internal/model"
)

// Report-level thresholds. These are deliberately independent of the
// aggregation-time runtime buffer: a transcript inside the buffer can
// still WARN or FAIL here on drift.
const (
	DriftWarnPct = 2.0
	DriftFailPct = 5.0

	// Tolerated distance between the last dialogue line and the
	// documented runtime, in seconds, before the tail looks truncated
	// or overrun.
	TailToleranceSeconds = 120.0

	// Inter-entry gaps above this are reported as suspicious
	GapThresholdSeconds = 120.0
)

// Validate classifies one transcript's timing against the documented
// runtime catalog. Classifications are data: the result is always
// returned, and any processing panic while validating is converted into a
// FAIL result rather than propagated.
func Validate(t *model.Transcript, runtimes map[string]*model.DocumentedRuntime) (result model.ValidationResult) {
	result = model.ValidationResult{
		FilmSlug: t.FilmSlug,
		Language: t.Language,
		Status:   model.StatusPass,
	}

	defer func() {
		if r := recover(); r != nil {
			result.Status = model.StatusFail
			result.Issues = append(result.Issues, fmt.Sprintf("validation error: %v", r))
		}
	}()

	runtime, ok := runtimes[t.FilmSlug]
	if !ok {
		result.Status = model.StatusFail
		result.Issues = append(result.Issues, fmt.Sprintf("no documented runtime for film %q", t.FilmSlug))
		return result
	}

	documented := float64(runtime.RuntimeSeconds)
	measured := t.MeasuredDuration()
	result.DocumentedRuntime = documented
	result.MeasuredDuration = measured
	result.LastDialogueEnd = measured

	drift := math.Abs(measured-documented) / documented * 100
	result.DriftPct = &drift

	// Baseline from drift; the checks below can only downgrade it
	switch {
	case drift > DriftFailPct:
		result.Status = model.StatusFail
		result.Issues = append(result.Issues,
			fmt.Sprintf("duration drift %.2f%% exceeds %.1f%% limit (measured %.0fs vs documented %.0fs)",
				drift, DriftFailPct, measured, documented))
	case drift > DriftWarnPct:
		result.Status = model.StatusWarn
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("duration drift %.2f%% above %.1f%% tolerance", drift, DriftWarnPct))
	}

	timeBeforeEnd := documented - result.LastDialogueEnd
	if timeBeforeEnd > TailToleranceSeconds {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("last dialogue ends %.0fs before documented runtime, possibly missing final scenes", timeBeforeEnd))
		result.Status = result.Status.Downgrade(model.StatusWarn)
	} else if timeBeforeEnd < -TailToleranceSeconds {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("last dialogue ends %.0fs past documented runtime", -timeBeforeEnd))
		result.Status = result.Status.Downgrade(model.StatusWarn)
	}

	negative := 0
	for _, e := range t.Entries {
		if e.Start < 0 {
			negative++
		}
	}
	if negative > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d entries with negative start offset", negative))
	}

	gaps, largest := largeGaps(t.Entries)
	if gaps > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d gaps over %.0fs between entries, largest %.0fs", gaps, GapThresholdSeconds, largest))
	}

	return result
}

// largeGaps counts inter-entry gaps above the threshold and reports the
// largest one
func largeGaps(entries []model.DialogueEntry) (count int, largest float64) {
	for i := 1; i < len(entries); i++ {
		gap := entries[i].Start - entries[i-1].End
		if gap > GapThresholdSeconds {
			count++
			if gap > largest {
				largest = gap
			}
		}
	}
	return count, largest
}
