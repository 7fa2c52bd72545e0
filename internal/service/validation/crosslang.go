package validation

import (
	"fmt"
	"math"
	"sort"

	"filmpulse/internal/model"
)

// CrossLangFailPct is the maximum tolerated deviation of any single
// language's duration from the cross-language mean.
const CrossLangFailPct = 3.0

// CheckCrossLanguage compares measured durations of all available language
// versions of one film. Independent of the per-language timing validation:
// every language can individually PASS while the set still disagrees.
func CheckCrossLanguage(filmSlug string, durations map[string]float64) model.CrossLanguageResult {
	result := model.CrossLanguageResult{
		FilmSlug:  filmSlug,
		Status:    model.StatusPass,
		Durations: durations,
	}

	if len(durations) == 0 {
		result.Status = model.StatusFail
		result.Issues = append(result.Issues, "no data")
		return result
	}

	if len(durations) == 1 {
		result.Warnings = append(result.Warnings, "only one language available, no comparison possible")
		return result
	}

	mean := 0.0
	langs := make([]string, 0, len(durations))
	for lang, d := range durations {
		mean += d
		langs = append(langs, lang)
	}
	mean /= float64(len(durations))
	sort.Strings(langs)

	// Iterate in sorted order so ties resolve deterministically
	worstLang := ""
	for _, lang := range langs {
		drift := math.Abs(durations[lang]-mean) / mean * 100
		if drift >= result.MaxDriftPct && drift > 0 {
			result.MaxDriftPct = drift
			worstLang = lang
		}
	}

	if result.MaxDriftPct > CrossLangFailPct {
		result.Status = model.StatusFail
		result.Issues = append(result.Issues,
			fmt.Sprintf("language %q deviates %.2f%% from mean duration %.0fs (limit %.1f%%)",
				worstLang, result.MaxDriftPct, mean, CrossLangFailPct))
	}

	return result
}
