package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmpulse/internal/model"
)

func TestCheckCrossLanguage(t *testing.T) {
	tests := []struct {
		name         string
		durations    map[string]float64
		wantStatus   model.Status
		wantMaxDrift float64
		wantWorst    string
	}{
		{
			// mean 7200, worst deviation 200/7200 = 2.78% -> PASS
			name:         "scenario C close durations pass",
			durations:    map[string]float64{"en": 7200, "fr": 7400, "es": 7000},
			wantStatus:   model.StatusPass,
			wantMaxDrift: 2.7778,
		},
		{
			// mean 5400, fr deviates 1800/5400 = 33.3% -> FAIL naming fr
			name:         "scenario D divergent durations fail",
			durations:    map[string]float64{"en": 7200, "fr": 3600},
			wantStatus:   model.StatusFail,
			wantMaxDrift: 33.3333,
			wantWorst:    "fr",
		},
		{
			name:       "identical durations pass",
			durations:  map[string]float64{"en": 7200, "de": 7200, "it": 7200},
			wantStatus: model.StatusPass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckCrossLanguage("some_film", tt.durations)

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.InDelta(t, tt.wantMaxDrift, result.MaxDriftPct, 0.001)
			assert.Equal(t, tt.durations, result.Durations)

			if tt.wantWorst != "" {
				require.Len(t, result.Issues, 1)
				assert.Contains(t, result.Issues[0], `"`+tt.wantWorst+`"`)
			}
		})
	}
}

func TestCheckCrossLanguage_NoData(t *testing.T) {
	result := CheckCrossLanguage("some_film", nil)

	assert.Equal(t, model.StatusFail, result.Status)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "no data", result.Issues[0])
}

func TestCheckCrossLanguage_SingleLanguage(t *testing.T) {
	result := CheckCrossLanguage("some_film", map[string]float64{"en": 7200})

	// One language always passes, but the lack of comparison is noted
	assert.Equal(t, model.StatusPass, result.Status)
	assert.Empty(t, result.Issues)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "only one language")
}
