/*
Package storage defines the Task Store boundary the core consumes (§2
component 1) and ships two reference adapters against it.

The core never implements persistence itself — generate, reset,
insert_break, and the report generator all go through the Store interface
— but an in-process implementation is useful for tests, the CLI's
ephemeral mode, and small single-user deployments.

# Architecture

	┌───────────────────────── STORE BOUNDARY ─────────────────────────┐
	│                                                                    │
	│  Schedule Service, Execution Tracker, Report Generator            │
	│                         │                                         │
	│                         ▼                                         │
	│                  storage.Store (interface)                        │
	│           CreateTask / GetTask / ListTasks(filter) / ...          │
	│           CreateReport / GetReport / GetReportByUserDate / ...    │
	│                         │                                         │
	│          ┌──────────────┴───────────────┐                        │
	│          ▼                               ▼                        │
	│     MemStore                        BoltStore                     │
	│  (maps + RWMutex,                (go.etcd.io/bbolt,               │
	│   used by tests and               JSON-encoded documents          │
	│   ephemeral CLI runs)              in two buckets)                │
	└────────────────────────────────────────────────────────────────────┘

# Filtering

TaskFilter expresses the field-level queries the core needs: by user,
status set, scheduled-interval intersection with a date, deadline-on-date,
created-on-date, and break exclusion. All set fields AND together; both
reference adapters implement the same matching predicate so tests can
swap one for the other without behavior changes.

# Consistency

Neither adapter is assumed transactional across documents by the core
(§5): the Schedule Service computes all updates in memory first and
applies them one at a time in a stable order, so a BoltStore whose
individual Put calls are durable (each wrapped in its own bolt
transaction) is sufficient without requiring multi-key transactions.
*/
package storage
