// Package metrics exposes the Prometheus instrumentation for the
// scheduling core (§4.11): generation/report latency histograms and
// counters for scheduling outcomes, break reflow, and summary fallback.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// GenerateDuration times schedule.Service.Generate end to end.
	GenerateDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scheduler_generate_duration_seconds",
			Help:    "Time taken to generate a schedule in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{},
	)

	// TasksScheduled counts tasks placed on the timeline, by policy.
	TasksScheduled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_tasks_scheduled_total",
			Help: "Total number of tasks placed on a timeline, by ordering policy",
		},
		[]string{"policy"},
	)

	// TasksSkipped counts tasks the packer or admission pass dropped, by
	// reason (window_full, dependency_unmet).
	TasksSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_tasks_skipped_total",
			Help: "Total number of tasks skipped during schedule generation, by reason",
		},
		[]string{"reason"},
	)

	// BreakReflowTotal counts insert_break calls that shifted at least one
	// downstream task.
	BreakReflowTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_break_reflow_total",
			Help: "Total number of break insertions that reflowed downstream tasks",
		},
	)

	// BreakReflowWarnings counts insert_break calls whose reflow pushed a
	// task past the caller-supplied window end.
	BreakReflowWarnings = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_break_reflow_warnings_total",
			Help: "Total number of break insertions whose reflow exceeded the working window",
		},
	)

	// ReportGenerateDuration times report.Generator.Generate end to end.
	ReportGenerateDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_generate_duration_seconds",
			Help:    "Time taken to generate a daily report in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{},
	)

	// ReportSummaryFallback counts reports that fell back to the
	// deterministic template because the configured Summary Provider
	// failed or timed out.
	ReportSummaryFallback = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "report_summary_fallback_total",
			Help: "Total number of reports that used the deterministic summary template",
		},
	)

	// ReportProductivityScore observes the productivity score of each
	// generated report, for distribution tracking.
	ReportProductivityScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "report_productivity_score",
			Help:    "Distribution of productivity scores across generated reports",
			Buckets: []float64{0, 20, 40, 60, 80, 100},
		},
	)

	// TasksByStatus is a last-snapshot gauge of task counts by status,
	// set by Collector whenever it is invoked. It reflects only the most
	// recent snapshot taken through it; the core itself retains no running
	// gauge state between CLI invocations.
	TasksByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scheduler_tasks_by_status",
			Help: "Snapshot count of tasks by status at last collection",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(GenerateDuration)
	prometheus.MustRegister(TasksScheduled)
	prometheus.MustRegister(TasksSkipped)
	prometheus.MustRegister(BreakReflowTotal)
	prometheus.MustRegister(BreakReflowWarnings)
	prometheus.MustRegister(ReportGenerateDuration)
	prometheus.MustRegister(ReportSummaryFallback)
	prometheus.MustRegister(ReportProductivityScore)
	prometheus.MustRegister(TasksByStatus)
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
