package packer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var windowStart = time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)

func TestPack_PlacesTasksSequentially(t *testing.T) {
	windowEnd := windowStart.Add(2 * time.Hour)
	durations := []time.Duration{30 * time.Minute, 45 * time.Minute}

	got := Pack(windowStart, windowEnd, durations)

	require.Len(t, got, 2)
	require.NotNil(t, got[0])
	require.NotNil(t, got[1])

	assert.Equal(t, windowStart, got[0].Start)
	assert.Equal(t, windowStart.Add(30*time.Minute), got[0].End)

	assert.Equal(t, got[0].End, got[1].Start)
	assert.Equal(t, got[0].End.Add(45*time.Minute), got[1].End)
}

func TestPack_SkipsTaskThatDoesNotFitAndKeepsCursor(t *testing.T) {
	windowEnd := windowStart.Add(time.Hour)
	durations := []time.Duration{45 * time.Minute, 30 * time.Minute, 10 * time.Minute}

	got := Pack(windowStart, windowEnd, durations)

	require.Len(t, got, 3)
	require.NotNil(t, got[0])
	assert.Nil(t, got[1], "45m task leaves only 15m, 30m task should not fit")
	require.NotNil(t, got[2])

	// Cursor did not move on skip: the third task starts right after the first.
	assert.Equal(t, got[0].End, got[2].Start)
}

func TestPack_EmptyWindow(t *testing.T) {
	got := Pack(windowStart, windowStart, []time.Duration{time.Minute})
	require.Len(t, got, 1)
	assert.Nil(t, got[0])
}

func TestPack_InvertedWindow(t *testing.T) {
	got := Pack(windowStart, windowStart.Add(-time.Hour), []time.Duration{time.Minute})
	require.Len(t, got, 1)
	assert.Nil(t, got[0])
}

func TestPack_NoDurations(t *testing.T) {
	got := Pack(windowStart, windowStart.Add(time.Hour), nil)
	assert.Empty(t, got)
}

func TestPack_TaskExactlyFillsWindow(t *testing.T) {
	windowEnd := windowStart.Add(time.Hour)
	got := Pack(windowStart, windowEnd, []time.Duration{time.Hour})

	require.Len(t, got, 1)
	require.NotNil(t, got[0])
	assert.Equal(t, windowEnd, got[0].End)
}
