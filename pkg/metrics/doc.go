/*
Package metrics provides Prometheus metrics collection and exposition for
the scheduling core.

The package defines and registers metrics for schedule generation, break
reflow, and report generation using the Prometheus client library, and
exposes them via an HTTP handler for scraping.

# Metrics Catalog

scheduler_generate_duration_seconds:
  - Type: Histogram
  - Description: Time to generate a schedule for a user and date
  - Example: scheduler_generate_duration_seconds_sum 12.4

scheduler_tasks_scheduled_total{policy}:
  - Type: Counter
  - Description: Tasks placed on a timeline, by ordering policy
  - Labels: policy (round_robin, fcfs, sjf, ljf, priority)

scheduler_tasks_skipped_total{reason}:
  - Type: Counter
  - Description: Tasks dropped during generation, by reason
  - Labels: reason (window_full, dependency_unmet)

scheduler_break_reflow_total:
  - Type: Counter
  - Description: insert_break calls that shifted at least one task

scheduler_break_reflow_warnings_total:
  - Type: Counter
  - Description: insert_break calls whose reflow exceeded the working window

report_generate_duration_seconds:
  - Type: Histogram
  - Description: Time to generate a daily report

report_summary_fallback_total:
  - Type: Counter
  - Description: Reports that used the deterministic summary template
    because the configured Summary Provider failed or timed out

report_productivity_score:
  - Type: Histogram
  - Description: Distribution of productivity scores across reports
  - Buckets: 0, 20, 40, 60, 80, 100

scheduler_tasks_by_status{status}:
  - Type: Gauge
  - Description: Snapshot count of tasks by status, as of the last Collector.Collect call
  - Labels: status (pending, in_progress, completed, cancelled, break)

# Usage

Updating Counter Metrics:

	metrics.TasksScheduled.WithLabelValues("round_robin").Inc()
	metrics.BreakReflowTotal.Inc()

Snapshotting Gauge Metrics:

	metrics.NewCollector().Collect(tasks)

Recording Histogram Observations:

	timer := metrics.NewTimer()
	// ... perform operation ...
	timer.ObserveDurationVec(metrics.GenerateDuration)

Exposing the endpoint:

	http.Handle("/metrics", metrics.Handler())

# Design Patterns

Package Init Registration:
  - All metrics registered in init()
  - MustRegister panics on duplicate registration

Label Discipline:
  - policy, reason, and status are the only labels; all are small, bounded
    sets
  - never label by task id, user id, or timestamp

Snapshot Gauges:
  - scheduler_tasks_by_status reflects only the tasks passed to the most
    recent Collect call, not a durable count across the fleet; the CLI is
    a one-shot process with no ticker to refresh it on a schedule

# See Also

  - Prometheus documentation: https://prometheus.io/docs/
  - Prometheus client library: https://github.com/prometheus/client_golang
*/
package metrics
