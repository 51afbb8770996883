// Package summary defines the Summary Provider capability (§4.9): a
// pluggable service that turns a day's metrics and task summaries into a
// short natural-language paragraph. A deterministic template
// implementation is mandatory and always available as a fallback — the
// core never blocks a report on an external provider.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/tasktimeline/core/pkg/types"
)

// Provider summarizes a day's metrics and task summaries into a short
// paragraph. Implementations must be idempotent and, for determinism in
// tests, a pure function of their inputs whenever the fallback is in use.
type Provider interface {
	Summarize(ctx context.Context, metrics types.ProductivityMetrics, tasks []types.TaskSummary) (string, error)
}

// Template is the deterministic fallback Provider (§4.8 step 5): a
// template built purely from the metrics and task counts, with an
// encouragement tier keyed off the productivity score.
type Template struct{}

// NewTemplate constructs the deterministic fallback provider.
func NewTemplate() Template { return Template{} }

func (Template) Summarize(_ context.Context, m types.ProductivityMetrics, tasks []types.TaskSummary) (string, error) {
	return Render(m, tasks), nil
}

// Render is the pure function behind Template.Summarize, exported so
// callers that degrade from a failed external Provider (§4.8 step 5, §7)
// can synthesize the same text without going through the interface.
func Render(m types.ProductivityMetrics, tasks []types.TaskSummary) string {
	completed := 0
	for _, t := range tasks {
		if t.Status == types.StatusCompleted {
			completed++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You completed %d of %d scheduled tasks today (%.0f%% completion, %.0f%% on time). ",
		completed, nonBreakCount(tasks), m.CompletionRate, m.OnTimeRate)

	if m.TotalActualTime > 0 {
		fmt.Fprintf(&b, "You spent %d minutes against %d minutes planned (%.1fx efficiency). ",
			m.TotalActualTime, m.TotalScheduledTime, m.TimeEfficiency)
	} else {
		fmt.Fprintf(&b, "No actual execution time was recorded. ")
	}

	b.WriteString(tier(m.ProductivityScore))
	return b.String()
}

func nonBreakCount(tasks []types.TaskSummary) int {
	n := 0
	for _, t := range tasks {
		if t.Status != types.StatusBreak {
			n++
		}
	}
	return n
}

func tier(score float64) string {
	switch {
	case score >= 80:
		return "Excellent day — keep up this pace."
	case score >= 60:
		return "Solid progress, with room to tighten scheduling."
	default:
		return "A tougher day; consider lighter deadlines or fewer concurrent tasks tomorrow."
	}
}
