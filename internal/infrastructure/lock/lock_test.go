package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
)

func newTestManager() *UserLockManager {
	return NewUserLockManager(logger.NewLogger("test", "error"))
}

func TestLockUnlock(t *testing.T) {
	m := newTestManager()

	err := m.Lock(context.Background(), 1)
	assert.NoError(t, err)
	m.Unlock(1)

	err = m.Lock(context.Background(), 1)
	assert.NoError(t, err)
	m.Unlock(1)
}

func TestLockSerializesSameUser(t *testing.T) {
	m := newTestManager()

	const workers = 20
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if err := m.Lock(context.Background(), 42); err != nil {
				t.Error(err)
				return
			}
			defer m.Unlock(42)
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestLockIndependentUsers(t *testing.T) {
	m := newTestManager()

	assert.NoError(t, m.Lock(context.Background(), 1))
	defer m.Unlock(1)

	// a different user's lock must not block
	done := make(chan struct{})
	go func() {
		if err := m.Lock(context.Background(), 2); err == nil {
			m.Unlock(2)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock for an independent user blocked")
	}
}

func TestLockContextCancellation(t *testing.T) {
	m := newTestManager()

	assert.NoError(t, m.Lock(context.Background(), 7))
	defer m.Unlock(7)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := m.Lock(ctx, 7)
	assert.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAbandonedAcquisitionReleasesLock(t *testing.T) {
	m := newTestManager()

	assert.NoError(t, m.Lock(context.Background(), 9))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, m.Lock(ctx, 9))

	// once the holder releases, the abandoned helper goroutine must not
	// leave the mutex held
	m.Unlock(9)

	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Second)
	defer cancel2()
	assert.NoError(t, m.Lock(ctx2, 9))
	m.Unlock(9)
}

func TestTryLock(t *testing.T) {
	m := newTestManager()

	assert.True(t, m.TryLock(3))
	assert.False(t, m.TryLock(3))
	m.Unlock(3)
	assert.True(t, m.TryLock(3))
	m.Unlock(3)
}
