// Package validate checks structural and range invariants of finished
// charts. Problems are reported as data, never as errors: a chart is
// persisted regardless and the caller decides what to do with the issues.
package validate

import (
	"fmt"

	"github.com/rhythmlab/tactus/internal/domain/model"
)

// Severity distinguishes structural violations from playability warnings.
type Severity string

// Issue severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// minPlayableInterval is the spacing below which consecutive hits become
// awkward to play; closer pairs are flagged as warnings.
const minPlayableInterval = 0.15

// Issue describes a single validation finding. Note is the index of the
// offending note, or -1 for chart-level findings.
type Issue struct {
	Severity Severity `json:"severity"`
	Note     int      `json:"note"`
	Message  string   `json:"message"`
}

// Chart accumulates every issue in the given chart against the track
// duration. It never fails: an empty slice means the chart is clean.
func Chart(chart model.Chart, audioDuration float64) []Issue {
	var issues []Issue

	if len(chart.Notes) == 0 {
		return []Issue{{
			Severity: SeverityWarning,
			Note:     -1,
			Message:  "chart is empty, no notes generated",
		}}
	}

	for i, note := range chart.Notes {
		if note.Time < 0 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Note:     i,
				Message:  fmt.Sprintf("note %d has negative time: %gs", i, note.Time),
			})
		}
		if note.Time > audioDuration {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Note:     i,
				Message:  fmt.Sprintf("note %d exceeds audio duration: %gs > %gs", i, note.Time, audioDuration),
			})
		}
		if note.Velocity < 0 || note.Velocity > 1 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Note:     i,
				Message:  fmt.Sprintf("note %d velocity out of range: %g", i, note.Velocity),
			})
		}
		if !note.Type.Valid() {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Note:     i,
				Message:  fmt.Sprintf("note %d has invalid type: %q", i, note.Type),
			})
		}
		if i > 0 {
			interval := note.Time - chart.Notes[i-1].Time
			if interval < minPlayableInterval {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Note:     i,
					Message:  fmt.Sprintf("notes %d and %d are %.3fs apart, hard to play", i-1, i, interval),
				})
			}
		}
	}
	return issues
}

// Errors filters issues down to the error severity.
func Errors(issues []Issue) []Issue {
	var out []Issue
	for _, is := range issues {
		if is.Severity == SeverityError {
			out = append(out, is)
		}
	}
	return out
}
