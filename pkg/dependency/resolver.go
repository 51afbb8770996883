// Package dependency implements the Dependency Resolver (§4.1): given a
// candidate task set for one user, it returns a linear order respecting
// "depends-on precedes dependent", or reports the cycle.
package dependency

import (
	"fmt"

	"github.com/gammazero/toposort"
	"github.com/tasktimeline/core/pkg/errs"
	"github.com/tasktimeline/core/pkg/types"
)

// Resolve runs a Kahn-style topological sort over the sub-graph induced by
// tasks. Dependencies referencing tasks outside the set are ignored for
// ordering (the caller is responsible for admission decisions based on
// those — see pkg/schedule). Ties within a topological level preserve the
// input order, so callers must pre-sort tasks by their Ordering Policy
// before calling Resolve (§4.1: "tie-break ... is delegated to the
// Ordering Policy's comparator").
func Resolve(tasks []*types.Task) ([]*types.Task, error) {
	byID := make(map[string]*types.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	var edges []toposort.Edge
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		seen[t.ID] = true
	}
	for _, t := range tasks {
		hasInSetDep := false
		for _, depID := range t.Dependencies {
			if _, ok := byID[depID]; !ok {
				continue // dependency outside the candidate set: ignored for ordering
			}
			edges = append(edges, toposort.Edge{depID, t.ID})
			hasInSetDep = true
		}
		if !hasInSetDep {
			// Ensure tasks without in-set dependencies still appear in
			// the sorted output even if nothing points to them.
			edges = append(edges, toposort.Edge{nil, t.ID})
		}
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return nil, errs.Wrap(errs.CycleDetected, "dependency.Resolve", "dependency cycle among candidate tasks", err)
	}

	out := make([]*types.Task, 0, len(tasks))
	for _, v := range sorted {
		if v == nil {
			continue
		}
		id, ok := v.(string)
		if !ok {
			continue
		}
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}

	if len(out) != len(tasks) {
		return nil, errs.New(errs.CycleDetected, "dependency.Resolve",
			fmt.Sprintf("topological sort dropped %d of %d tasks, indicating a cycle", len(tasks)-len(out), len(tasks)))
	}
	return out, nil
}

// HasCycle reports whether tasks contains a dependency cycle, restricted
// to dependencies that reference another task in the same set (I4: the
// graph is checked per-user, over that user's own tasks).
func HasCycle(tasks []*types.Task) bool {
	_, err := Resolve(tasks)
	return errs.Is(err, errs.CycleDetected)
}
