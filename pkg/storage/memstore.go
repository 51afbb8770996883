package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/tasktimeline/core/pkg/errs"
	"github.com/tasktimeline/core/pkg/types"
)

// MemStore is an in-memory Store, used by tests and by the CLI's
// ephemeral mode. It stores a deep-enough copy of each document so
// callers cannot mutate state behind the store's back.
type MemStore struct {
	mu      sync.RWMutex
	tasks   map[string]*types.Task
	reports map[string]*types.Report
}

// NewMemStore creates an empty in-memory Store.
func NewMemStore() *MemStore {
	return &MemStore{
		tasks:   make(map[string]*types.Task),
		reports: make(map[string]*types.Report),
	}
}

func (m *MemStore) CreateTask(task *types.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.tasks[task.ID]; exists {
		return errs.New(errs.ValidationError, "memstore.CreateTask", "task already exists").WithField("id")
	}
	now := task.CreatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}
	task.CreatedAt = now
	task.UpdatedAt = now
	m.tasks[task.ID] = task.Clone()
	return nil
}

func (m *MemStore) GetTask(id string) (*types.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, errs.New(errs.NotFound, "memstore.GetTask", "task not found").WithField("id")
	}
	return t.Clone(), nil
}

func (m *MemStore) ListTasks(filter TaskFilter) ([]*types.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*types.Task
	for _, t := range m.tasks {
		if !matches(t, filter) {
			continue
		}
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func matches(t *types.Task, f TaskFilter) bool {
	if f.UserID != "" && t.UserID != f.UserID {
		return false
	}
	if f.ExcludeBreaks && t.IsBreak() {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if t.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.ScheduledIntersects {
		if !t.Scheduled() {
			return false
		}
		start, end := t.ScheduledInterval()
		if !intervalsIntersect(start, end, f.Start, f.End) {
			return false
		}
	}
	if f.DeadlineOnDate {
		if t.Deadline == nil {
			return false
		}
		if t.Deadline.Before(f.Start) || !t.Deadline.Before(f.End) {
			return false
		}
	}
	if f.CreatedOnDate {
		if t.CreatedAt.Before(f.Start) || !t.CreatedAt.Before(f.End) {
			return false
		}
	}
	return true
}

func intervalsIntersect(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func (m *MemStore) UpdateTask(task *types.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[task.ID]; !ok {
		return errs.New(errs.NotFound, "memstore.UpdateTask", "task not found").WithField("id")
	}
	task.UpdatedAt = time.Now().UTC()
	m.tasks[task.ID] = task.Clone()
	return nil
}

func (m *MemStore) DeleteTask(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return errs.New(errs.NotFound, "memstore.DeleteTask", "task not found").WithField("id")
	}
	delete(m.tasks, id)
	return nil
}

func (m *MemStore) CreateReport(report *types.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.reports[report.ID]; exists {
		return errs.New(errs.ValidationError, "memstore.CreateReport", "report already exists").WithField("id")
	}
	cp := *report
	cp.Tasks = append([]types.TaskSummary(nil), report.Tasks...)
	m.reports[report.ID] = &cp
	return nil
}

func (m *MemStore) GetReport(id string) (*types.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, errs.New(errs.NotFound, "memstore.GetReport", "report not found").WithField("id")
	}
	cp := *r
	return &cp, nil
}

func (m *MemStore) GetReportByUserDate(userID string, date time.Time) (*types.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.reports {
		if r.UserID == userID && r.Date.Equal(date) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, errs.New(errs.NotFound, "memstore.GetReportByUserDate", "no report for user/date")
}

func (m *MemStore) ListReportsByUser(userID string) ([]*types.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*types.Report
	for _, r := range m.reports {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemStore) Close() error { return nil }
