package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_ProducesValidID(t *testing.T) {
	got := New(time.Now())

	assert.Len(t, got.String(), 26)
	assert.True(t, Valid(got.String()))
}

func TestNew_MonotonicallyIncreasing(t *testing.T) {
	now := time.Now()
	a := New(now)
	b := New(now)

	assert.True(t, b.String() > a.String(), "expected %q > %q for same-timestamp IDs", b, a)
}

func TestNew_LexicographicallySortableAcrossTime(t *testing.T) {
	earlier := New(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	later := New(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC))

	assert.True(t, later.String() > earlier.String())
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "well-formed ULID", in: New(time.Now()).String(), want: true},
		{name: "lowercase well-formed ULID", in: "01arz3ndektsv4rrffq69g5fav", want: true},
		{name: "empty string", in: "", want: false},
		{name: "too short", in: "01ARZ3", want: false},
		{name: "garbage", in: "not-a-ulid-at-all-nope!!!", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.in))
		})
	}
}
