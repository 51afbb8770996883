// Package report implements the Report Generator (§4.8): for a given user
// and date, it derives TaskSummary rows and a ProductivityMetrics record
// from planned versus actual intervals, and obtains (or synthesizes) an
// AI summary.
package report

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/tasktimeline/core/pkg/clock"
	"github.com/tasktimeline/core/pkg/errs"
	"github.com/tasktimeline/core/pkg/id"
	"github.com/tasktimeline/core/pkg/log"
	"github.com/tasktimeline/core/pkg/metrics"
	"github.com/tasktimeline/core/pkg/storage"
	"github.com/tasktimeline/core/pkg/summary"
	"github.com/tasktimeline/core/pkg/types"
)

// Generator derives reports from the Task Store and a Summary Provider
// (§2 component 8).
type Generator struct {
	store           storage.Store
	clock           clock.Clock
	summaryProvider summary.Provider
	summaryTimeout  time.Duration
	logger          zerolog.Logger
}

// New constructs a Generator. summaryProvider may be nil, in which case
// only the deterministic template is used.
func New(store storage.Store, c clock.Clock, summaryProvider summary.Provider, summaryTimeout time.Duration) *Generator {
	if summaryTimeout <= 0 {
		summaryTimeout = 2 * time.Second
	}
	return &Generator{
		store:           store,
		clock:           c,
		summaryProvider: summaryProvider,
		summaryTimeout:  summaryTimeout,
		logger:          log.WithComponent("report"),
	}
}

// Generate implements §4.8 generate_daily_report. If a report already
// exists for (userID, date) it is returned unchanged (P8). Window, if
// non-nil, lets the caller populate the supplemental IdleMinutes field.
func (g *Generator) Generate(userID, date string, window *time.Duration) (*types.Report, error) {
	const op = "report.Generate"
	timer := metrics.NewTimer()
	defer timer.ObserveDurationVec(metrics.ReportGenerateDuration)

	dayStart, dayEnd, err := clock.DayBounds(g.clock, date)
	if err != nil {
		return nil, errs.Wrap(errs.ValidationError, op, "invalid date", err).WithField("date")
	}

	if existing, err := g.store.GetReportByUserDate(userID, dayStart); err == nil {
		return existing, nil
	} else if !errs.Is(err, errs.NotFound) {
		return nil, errs.Wrap(errs.StorageUnavailable, op, "failed to check for existing report", err).WithUser(userID)
	}

	tasks, err := g.candidateTasks(userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, errs.New(errs.NoTasksForDate, op, "no candidate tasks for date").WithUser(userID)
	}

	metrics.NewCollector().Collect(tasks)

	summaries := make([]types.TaskSummary, 0, len(tasks))
	var nonBreak []*types.Task
	for _, t := range tasks {
		summaries = append(summaries, summarize(t))
		if !t.IsBreak() {
			nonBreak = append(nonBreak, t)
		}
	}
	sort.Slice(summaries, func(i, j int) bool {
		si, sj := summaries[i].ScheduledStartTime, summaries[j].ScheduledStartTime
		if si == nil || sj == nil {
			return si != nil
		}
		return si.Before(*sj)
	})

	metricsRecord := computeMetrics(nonBreak, window)

	ctx, cancel := context.WithTimeout(context.Background(), g.summaryTimeout)
	defer cancel()
	aiSummary := g.obtainSummary(ctx, metricsRecord, summaries)

	rpt := &types.Report{
		ID:        id.New(g.clock.Now()).String(),
		UserID:    userID,
		Date:      dayStart,
		CreatedAt: g.clock.Now(),
		Tasks:     summaries,
		Metrics:   metricsRecord,
		AISummary: aiSummary,
	}

	if err := g.store.CreateReport(rpt); err != nil {
		return nil, errs.Wrap(errs.StorageUnavailable, op, "failed to persist report", err).WithUser(userID)
	}
	metrics.ReportProductivityScore.Observe(metricsRecord.ProductivityScore)

	g.logger.Debug().Str("user_id", userID).Str("date", date).Str("report_id", rpt.ID).Msg("report generated")
	return rpt, nil
}

// candidateTasks fetches the union described in §4.8 step 2: scheduled on
// date, OR deadline on date, OR created on date.
func (g *Generator) candidateTasks(userID string, dayStart, dayEnd time.Time) ([]*types.Task, error) {
	const op = "report.candidateTasks"
	seen := make(map[string]*types.Task)

	scheduled, err := g.store.ListTasks(storage.TaskFilter{UserID: userID, ScheduledIntersects: true, Start: dayStart, End: dayEnd})
	if err != nil {
		return nil, errs.Wrap(errs.StorageUnavailable, op, "failed to list scheduled tasks", err).WithUser(userID)
	}
	for _, t := range scheduled {
		seen[t.ID] = t
	}

	withDeadline, err := g.store.ListTasks(storage.TaskFilter{UserID: userID, DeadlineOnDate: true, Start: dayStart, End: dayEnd})
	if err != nil {
		return nil, errs.Wrap(errs.StorageUnavailable, op, "failed to list deadline tasks", err).WithUser(userID)
	}
	for _, t := range withDeadline {
		seen[t.ID] = t
	}

	created, err := g.store.ListTasks(storage.TaskFilter{UserID: userID, CreatedOnDate: true, Start: dayStart, End: dayEnd})
	if err != nil {
		return nil, errs.Wrap(errs.StorageUnavailable, op, "failed to list tasks created on date", err).WithUser(userID)
	}
	for _, t := range created {
		seen[t.ID] = t
	}

	out := make([]*types.Task, 0, len(seen))
	for _, t := range seen {
		out = append(out, t)
	}
	return out, nil
}

func summarize(t *types.Task) types.TaskSummary {
	ts := types.TaskSummary{
		TaskID:             t.ID,
		Name:               t.Name,
		ScheduledDuration:  t.DurationMinutes,
		ScheduledStartTime: t.ScheduledStartTime,
		ScheduledEndTime:   t.ScheduledEndTime,
		ActualStartTime:    t.ActualStartTime,
		ActualEndTime:      t.ActualEndTime,
		Status:             t.Status,
		Priority:           t.Priority,
	}
	if t.ActualStartTime != nil && t.ActualEndTime != nil {
		d := int(t.ActualEndTime.Sub(*t.ActualStartTime).Minutes())
		ts.ActualDuration = &d
	}
	if t.ActualStartTime != nil && t.ScheduledStartTime != nil {
		d := int(t.ActualStartTime.Sub(*t.ScheduledStartTime).Minutes())
		ts.DelayMinutes = &d
	}
	return ts
}

// computeMetrics implements §4.8 step 4's formulas exactly, over the
// non-break subset N.
func computeMetrics(n []*types.Task, window *time.Duration) types.ProductivityMetrics {
	var m types.ProductivityMetrics
	if len(n) == 0 {
		return m
	}

	completed := 0
	onTime := 0
	var delaySum float64
	delayCount := 0

	for _, t := range n {
		m.TotalScheduledTime += t.DurationMinutes

		var delay *int
		if t.ActualStartTime != nil && t.ScheduledStartTime != nil {
			d := int(t.ActualStartTime.Sub(*t.ScheduledStartTime).Minutes())
			delay = &d
		}
		if t.ActualStartTime != nil && t.ActualEndTime != nil {
			m.TotalActualTime += int(t.ActualEndTime.Sub(*t.ActualStartTime).Minutes())
		}

		if t.Status == types.StatusCompleted {
			completed++
			if delay == nil || *delay <= 0 {
				onTime++
			}
			if delay != nil {
				delaySum += float64(*delay)
				delayCount++
			}
		}
	}

	total := float64(len(n))
	m.CompletionRate = 100 * float64(completed) / total
	m.OnTimeRate = 100 * float64(onTime) / total
	if delayCount > 0 {
		m.AvgDelay = delaySum / float64(delayCount)
	}
	if m.TotalActualTime > 0 {
		m.TimeEfficiency = float64(m.TotalScheduledTime) / float64(m.TotalActualTime)
	}

	effClamped := math.Min(m.TimeEfficiency, 2)
	score := m.CompletionRate*0.5 + m.OnTimeRate*0.3 + effClamped/2*100*0.2
	m.ProductivityScore = math.Max(0, math.Min(100, score))

	if window != nil {
		idle := int(window.Minutes()) - m.TotalScheduledTime
		if idle < 0 {
			idle = 0
		}
		m.IdleMinutes = &idle
	}

	return m
}

func (g *Generator) obtainSummary(ctx context.Context, m types.ProductivityMetrics, tasks []types.TaskSummary) string {
	if g.summaryProvider != nil {
		text, err := g.summaryProvider.Summarize(ctx, m, tasks)
		if err == nil {
			return text
		}
		g.logger.Warn().Err(err).Msg("summary provider failed, falling back to deterministic template")
		metrics.ReportSummaryFallback.Inc()
	}
	return summary.Render(m, tasks)
}
