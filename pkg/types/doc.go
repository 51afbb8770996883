/*
Package types defines the core data structures shared by every scheduling
component.

This package contains the domain model a single user's task pool is built
from: Task, its derived report rows (TaskSummary), and the day-level
metrics rolled up from them (ProductivityMetrics). These types are used by
the dependency resolver, the ordering policies, the timeline packer, the
schedule service, the execution tracker, and the report generator alike.

# Architecture

	┌────────────────────────── TASK LIFECYCLE ──────────────────────────┐
	│                                                                      │
	│  created (pending, no schedule)                                    │
	│        │                                                            │
	│        ▼                                                            │
	│  Schedule Service writes ScheduledStartTime / ScheduledEndTime      │
	│        │                                                            │
	│        ▼                                                            │
	│  Execution Tracker writes ActualStartTime / ActualEndTime / Status │
	│        │                                                            │
	│        ▼                                                            │
	│  Report Generator derives TaskSummary + ProductivityMetrics        │
	└──────────────────────────────────────────────────────────────────────┘

A break (§4.7) is structurally a Task with Status == StatusBreak, a
scheduled interval, and no dependencies; it is excluded from ordering
policies and from ProductivityMetrics' task counts in future generations.

# Core Types

Task:
  - TaskStatus: pending, in_progress, completed, cancelled, break
  - Dependencies: task ids belonging to the same user, acyclic (I4)
  - ScheduledStartTime/ScheduledEndTime: either both set or both nil (I3)
  - ActualStartTime/ActualEndTime: optional, end >= start when both set

Derived report types:
  - TaskSummary: one immutable row per task surfaced by a Report
  - ProductivityMetrics: completion_rate, on_time_rate, avg_delay,
    productivity_score, total_scheduled_time, total_actual_time,
    time_efficiency — see pkg/report for the exact formulas (§4.8)
  - Report: id, user, date, tasks, metrics, optional ai_summary; immutable
    once generated (§3, P8)

Policy (§4.2): a tagged value naming one of the five required ordering
policies — round_robin, fcfs, sjf, ljf, priority — rather than a class
hierarchy, per the data-driven comparator design in §9.
*/
package types
