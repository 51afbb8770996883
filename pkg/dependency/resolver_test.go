package dependency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasktimeline/core/pkg/errs"
	"github.com/tasktimeline/core/pkg/types"
)

func taskWithDeps(id string, deps ...string) *types.Task {
	return &types.Task{ID: id, Dependencies: deps}
}

func TestResolve_RespectsDependencyOrder(t *testing.T) {
	a := taskWithDeps("a")
	b := taskWithDeps("b", "a")
	c := taskWithDeps("c", "b")

	sorted, err := Resolve([]*types.Task{c, b, a})
	require.NoError(t, err)
	require.Len(t, sorted, 3)

	pos := make(map[string]int, len(sorted))
	for i, task := range sorted {
		pos[task.ID] = i
	}

	assert.Less(t, pos["a"], pos["b"])
	assert.Less(t, pos["b"], pos["c"])
}

func TestResolve_IgnoresDependenciesOutsideCandidateSet(t *testing.T) {
	a := taskWithDeps("a", "outside-task")

	sorted, err := Resolve([]*types.Task{a})
	require.NoError(t, err)
	require.Len(t, sorted, 1)
	assert.Equal(t, "a", sorted[0].ID)
}

func TestResolve_IndependentTasksAllAppear(t *testing.T) {
	a := taskWithDeps("a")
	b := taskWithDeps("b")

	sorted, err := Resolve([]*types.Task{a, b})
	require.NoError(t, err)
	assert.Len(t, sorted, 2)
}

func TestResolve_DetectsCycle(t *testing.T) {
	a := taskWithDeps("a", "b")
	b := taskWithDeps("b", "a")

	_, err := Resolve([]*types.Task{a, b})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.CycleDetected))
}

func TestResolve_DetectsSelfCycleThroughLongerChain(t *testing.T) {
	a := taskWithDeps("a", "c")
	b := taskWithDeps("b", "a")
	c := taskWithDeps("c", "b")

	_, err := Resolve([]*types.Task{a, b, c})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.CycleDetected))
}

func TestHasCycle(t *testing.T) {
	tests := []struct {
		name  string
		tasks []*types.Task
		want  bool
	}{
		{
			name:  "acyclic chain",
			tasks: []*types.Task{taskWithDeps("a"), taskWithDeps("b", "a")},
			want:  false,
		},
		{
			name:  "direct cycle",
			tasks: []*types.Task{taskWithDeps("a", "b"), taskWithDeps("b", "a")},
			want:  true,
		},
		{
			name:  "no tasks",
			tasks: nil,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasCycle(tt.tasks))
		})
	}
}
