package validation

import (
	"sort"

	"filmpulse/internal/model"
)

// Summary aggregates a validation run into pass/warn/fail counts plus the
// worst offenders, for the run report.
type Summary struct {
	Results      []model.ValidationResult    `json:"results"`
	CrossResults []model.CrossLanguageResult `json:"cross_language_results"`

	PassCount int `json:"pass_count"`
	WarnCount int `json:"warn_count"`
	FailCount int `json:"fail_count"`

	CrossPassCount int `json:"cross_pass_count"`
	CrossFailCount int `json:"cross_fail_count"`

	// WorstOffenders are FAIL results ordered by descending drift
	WorstOffenders []model.ValidationResult `json:"worst_offenders,omitempty"`
}

// Summarize derives the run-level report from individual results
func Summarize(results []model.ValidationResult, crossResults []model.CrossLanguageResult) Summary {
	s := Summary{
		Results:      results,
		CrossResults: crossResults,
	}

	var failed []model.ValidationResult
	for _, r := range results {
		switch r.Status {
		case model.StatusPass:
			s.PassCount++
		case model.StatusWarn:
			s.WarnCount++
		case model.StatusFail:
			s.FailCount++
			failed = append(failed, r)
		}
	}

	for _, c := range crossResults {
		if c.Status == model.StatusFail {
			s.CrossFailCount++
		} else {
			s.CrossPassCount++
		}
	}

	sort.SliceStable(failed, func(i, j int) bool {
		di, dj := 0.0, 0.0
		if failed[i].DriftPct != nil {
			di = *failed[i].DriftPct
		}
		if failed[j].DriftPct != nil {
			dj = *failed[j].DriftPct
		}
		return di > dj
	})
	if len(failed) > 5 {
		failed = failed[:5]
	}
	s.WorstOffenders = failed

	return s
}
