package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const defaultAcquireTimeout = 5 * time.Second

// UserLockManager serializes balance mutations per user. Locks for different
// users are independent, so only writers touching the same balance contend.
type UserLockManager struct {
	locks   sync.Map // map[int64]*sync.Mutex
	timeout time.Duration
	logger  *logger.Logger
}

// NewUserLockManager creates a new lock manager
func NewUserLockManager(logger *logger.Logger) *UserLockManager {
	return &UserLockManager{
		timeout: defaultAcquireTimeout,
		logger:  logger,
	}
}

// Lock acquires the lock for the given userID, honoring context cancellation
// and an acquisition timeout. If acquisition is abandoned, the helper
// goroutine releases the mutex as soon as it obtains it.
func (m *UserLockManager) Lock(ctx context.Context, userID int64) error {
	mu := m.getOrCreateMutex(userID)

	acquired := make(chan struct{})
	abandoned := make(chan struct{})
	go func() {
		mu.Lock()
		select {
		case acquired <- struct{}{}:
		case <-abandoned:
			mu.Unlock()
		}
	}()

	select {
	case <-acquired:
		return nil
	case <-ctx.Done():
		close(abandoned)
		m.logger.Warn("Lock acquisition cancelled",
			zap.Int64("user_id", userID),
			zap.Error(ctx.Err()))
		return fmt.Errorf("failed to acquire lock for user %d: %w", userID, ctx.Err())
	case <-time.After(m.timeout):
		close(abandoned)
		m.logger.Warn("Lock acquisition timed out",
			zap.Int64("user_id", userID),
			zap.Duration("timeout", m.timeout))
		return fmt.Errorf("failed to acquire lock for user %d: timeout", userID)
	}
}

// Unlock releases the lock for the given userID
func (m *UserLockManager) Unlock(userID int64) {
	muInterface, ok := m.locks.Load(userID)
	if !ok {
		m.logger.Warn("No lock found during unlock", zap.Int64("user_id", userID))
		return
	}
	muInterface.(*sync.Mutex).Unlock()
}

// TryLock attempts to acquire the lock without blocking
func (m *UserLockManager) TryLock(userID int64) bool {
	return m.getOrCreateMutex(userID).TryLock()
}

func (m *UserLockManager) getOrCreateMutex(userID int64) *sync.Mutex {
	if mu, ok := m.locks.Load(userID); ok {
		return mu.(*sync.Mutex)
	}
	actual, _ := m.locks.LoadOrStore(userID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}
