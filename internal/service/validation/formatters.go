package validation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Formatter defines interface for report output formatting
type Formatter interface {
	Format(summary Summary) (string, error)
}

// TextFormatter formats the validation summary as plain text
type TextFormatter struct{}

// Format formats the summary as plain text
func (f *TextFormatter) Format(summary Summary) (string, error) {
	var output strings.Builder

	output.WriteString("Timing validation\n")
	output.WriteString("=================\n")
	output.WriteString(fmt.Sprintf("PASS: %d  WARN: %d  FAIL: %d\n\n", summary.PassCount, summary.WarnCount, summary.FailCount))

	for _, r := range summary.Results {
		drift := "n/a"
		if r.DriftPct != nil {
			drift = fmt.Sprintf("%.2f%%", *r.DriftPct)
		}
		output.WriteString(fmt.Sprintf("[%s] %s (%s) drift=%s\n", r.Status, r.FilmSlug, r.Language, drift))
		for _, issue := range r.Issues {
			output.WriteString(fmt.Sprintf("    issue: %s\n", issue))
		}
		for _, warning := range r.Warnings {
			output.WriteString(fmt.Sprintf("    warning: %s\n", warning))
		}
	}

	output.WriteString("\nCross-language consistency\n")
	output.WriteString("==========================\n")
	output.WriteString(fmt.Sprintf("PASS: %d  FAIL: %d\n\n", summary.CrossPassCount, summary.CrossFailCount))

	for _, c := range summary.CrossResults {
		output.WriteString(fmt.Sprintf("[%s] %s max drift %.2f%% across %d languages\n",
			c.Status, c.FilmSlug, c.MaxDriftPct, len(c.Durations)))
		for _, issue := range c.Issues {
			output.WriteString(fmt.Sprintf("    issue: %s\n", issue))
		}
		for _, warning := range c.Warnings {
			output.WriteString(fmt.Sprintf("    warning: %s\n", warning))
		}
	}

	if len(summary.WorstOffenders) > 0 {
		output.WriteString("\nWorst offenders\n")
		output.WriteString("===============\n")
		for _, r := range summary.WorstOffenders {
			drift := "n/a"
			if r.DriftPct != nil {
				drift = fmt.Sprintf("%.2f%%", *r.DriftPct)
			}
			output.WriteString(fmt.Sprintf("%s (%s) drift=%s\n", r.FilmSlug, r.Language, drift))
		}
	}

	return output.String(), nil
}

// JSONFormatter formats the validation summary as JSON
type JSONFormatter struct{}

// Format formats the summary as JSON
func (f *JSONFormatter) Format(summary Summary) (string, error) {
	jsonBytes, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return string(jsonBytes), nil
}

// GetFormatter returns the appropriate formatter based on format string
func GetFormatter(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case "text", "txt":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: text, json)", format)
	}
}
