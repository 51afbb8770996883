package userlock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_LockUnlockEvictsEntry(t *testing.T) {
	r := NewRegistry()

	unlock := r.Lock("user-1")
	assert.Equal(t, 1, r.Size())

	unlock()
	assert.Equal(t, 0, r.Size(), "entry should be evicted once the last holder releases it")
}

func TestRegistry_DifferentUsersDoNotContend(t *testing.T) {
	r := NewRegistry()

	done := make(chan struct{})
	unlockA := r.Lock("user-a")

	go func() {
		unlockB := r.Lock("user-b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock for user-b blocked on unrelated user-a lock")
	}

	unlockA()
}

func TestRegistry_SameUserSerializes(t *testing.T) {
	r := NewRegistry()

	var mu sync.Mutex
	order := make([]int, 0, 2)

	unlock := r.Lock("user-1")

	secondStarted := make(chan struct{})
	secondDone := make(chan struct{})

	go func() {
		close(secondStarted)
		u := r.Lock("user-1")
		mu.Lock()
		order = append(order, 2)
		mu.Unlock()
		u()
		close(secondDone)
	}()

	<-secondStarted
	time.Sleep(20 * time.Millisecond) // give the goroutine a chance to block on Lock

	mu.Lock()
	order = append(order, 1)
	mu.Unlock()
	unlock()

	<-secondDone

	assert.Equal(t, []int{1, 2}, order)
}

func TestRegistry_ReacquireAfterReleaseCreatesFreshEntry(t *testing.T) {
	r := NewRegistry()

	unlock1 := r.Lock("user-1")
	unlock1() // releases immediately, entry evicted

	unlock2 := r.Lock("user-1")
	assert.Equal(t, 1, r.Size())
	unlock2()
	assert.Equal(t, 0, r.Size())
}

func TestRegistry_Size(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.Size())

	unlockA := r.Lock("user-a")
	unlockB := r.Lock("user-b")
	assert.Equal(t, 2, r.Size())

	unlockA()
	assert.Equal(t, 1, r.Size())

	unlockB()
	assert.Equal(t, 0, r.Size())
}
