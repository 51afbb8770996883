/*
Package log provides structured logging for the scheduling core using
zerolog.

The log package wraps zerolog to provide JSON-structured logging with
component-specific loggers, configurable log levels, and helper functions
for common logging patterns. All logs include timestamps and support
filtering by severity level for production debugging.

# Architecture

	┌──────────────────── LOGGING SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │            Global Logger                    │          │
	│  │  - Zerolog instance                         │          │
	│  │  - Initialized via log.Init()               │          │
	│  │  - Thread-safe for concurrent use           │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           Configuration                     │          │
	│  │  - Level: debug/info/warn/error             │          │
	│  │  - Format: JSON or console (human)          │          │
	│  │  - Output: stdout, file, or custom writer   │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │         Component Loggers                   │          │
	│  │  - WithComponent("schedule")                │          │
	│  │  - WithUserID("user-abc123")                │          │
	│  │  - WithReportID("report-xyz")               │          │
	│  │  - WithTaskID("task-def456")                │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │            Log Output                       │          │
	│  │                                              │          │
	│  │  JSON Format:                               │          │
	│  │  {                                           │          │
	│  │    "level": "info",                         │          │
	│  │    "component": "schedule",                 │          │
	│  │    "time": "2026-07-31T10:30:00Z",          │          │
	│  │    "message": "schedule generated"           │          │
	│  │  }                                           │          │
	│  │                                              │          │
	│  │  Console Format:                            │          │
	│  │  2026-07-31T10:30:00Z INF schedule generated component=schedule │  │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Core Components

Global Logger:
  - Package-level zerolog.Logger instance
  - Initialized once via log.Init()
  - Accessible from every core package

Log Levels:
  - Debug: one line per completed operation (§4.10)
  - Info: general informational messages
  - Warn: recoverable failures, e.g. Summary Provider fallback (§7)
  - Error: operation failures
  - Fatal: unrecoverable startup errors (process exits)

Configuration:
  - Level: filter messages below threshold
  - JSONOutput: JSON vs human-readable console
  - Output: io.Writer for log destination (stdout, file)

Context Loggers:
  - WithComponent: tag logs with the owning package (schedule, execution,
    report)
  - WithUserID, WithReportID, WithTaskID: tag logs with the identifier the
    call site is already carrying

# Usage

Initializing the logger:

	import "github.com/tasktimeline/core/pkg/log"

	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
		Output:     os.Stdout,
	})

Simple logging:

	log.Info("scheduling core starting")
	log.Warn("summary provider timed out, using template fallback")
	log.Error("failed to persist report")
	log.Fatal("failed to load config") // exits process

Structured logging, the way Schedule Service, Execution Tracker, and
Report Generator operations log per §4.10:

	s.logger.Debug().
		Str("user_id", params.UserID).
		Str("date", params.Date).
		Int("placed", len(placed)).
		Msg("schedule generated")

Component loggers are constructed once per component in each component's
constructor and reused across calls:

	logger: log.WithComponent("schedule")

# Design Patterns

Global Logger Pattern:
  - Single package-level Logger instance, initialized once at startup
  - Accessible from all packages without passing a logger through every
    call

Context Logger Pattern:
  - Each component (schedule, execution, report) builds its own child
    logger once, via WithComponent, and stores it on the struct
  - Per-call identifiers (user_id, task_id, report_id) are attached as
    event fields rather than new child loggers, since they vary per call

Structured Logging Pattern:
  - Typed fields (.Str, .Int, .Err) instead of string concatenation
  - Enables log aggregation and querying

# See Also

  - Zerolog documentation: https://github.com/rs/zerolog
*/
package log
