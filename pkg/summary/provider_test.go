package summary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasktimeline/core/pkg/types"
)

func TestTemplate_Summarize(t *testing.T) {
	m := types.ProductivityMetrics{
		CompletionRate:     75,
		OnTimeRate:         50,
		TotalActualTime:    90,
		TotalScheduledTime: 120,
		TimeEfficiency:     0.75,
		ProductivityScore:  85,
	}
	tasks := []types.TaskSummary{
		{Status: types.StatusCompleted},
		{Status: types.StatusPending},
	}

	got, err := NewTemplate().Summarize(context.Background(), m, tasks)
	require.NoError(t, err)
	assert.Equal(t, Render(m, tasks), got)
	assert.Contains(t, got, "Excellent day")
}

func TestRender_CountsCompletedAgainstNonBreakTasks(t *testing.T) {
	tasks := []types.TaskSummary{
		{Status: types.StatusCompleted},
		{Status: types.StatusCompleted},
		{Status: types.StatusPending},
		{Status: types.StatusBreak},
	}

	got := Render(types.ProductivityMetrics{CompletionRate: 66.7, OnTimeRate: 100, ProductivityScore: 70}, tasks)

	assert.Contains(t, got, "completed 2 of 3 scheduled tasks")
}

func TestRender_NoActualTimeRecorded(t *testing.T) {
	got := Render(types.ProductivityMetrics{ProductivityScore: 10}, nil)
	assert.Contains(t, got, "No actual execution time was recorded.")
}

func TestRender_IncludesActualVsPlannedWhenPresent(t *testing.T) {
	m := types.ProductivityMetrics{
		TotalActualTime:    60,
		TotalScheduledTime: 90,
		TimeEfficiency:     0.67,
		ProductivityScore:  50,
	}

	got := Render(m, nil)
	assert.Contains(t, got, "You spent 60 minutes against 90 minutes planned")
}

func TestRender_Tiers(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{name: "excellent at threshold", score: 80, want: "Excellent day"},
		{name: "solid at threshold", score: 60, want: "Solid progress"},
		{name: "just below solid", score: 59.9, want: "A tougher day"},
		{name: "low score", score: 10, want: "A tougher day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(types.ProductivityMetrics{ProductivityScore: tt.score}, nil)
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestNonBreakCount(t *testing.T) {
	tasks := []types.TaskSummary{
		{Status: types.StatusCompleted},
		{Status: types.StatusBreak},
		{Status: types.StatusCancelled},
	}
	assert.Equal(t, 2, nonBreakCount(tasks))
}
