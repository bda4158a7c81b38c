package credentials

import (
	"context"
	"time"

	"github.com/gofrs/flock"
)

// FileLock is an inter-process lock on a path.
type FileLock interface {
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)
	Unlock() error
}

// LockFactory creates a FileLock for a lock file path.
type LockFactory interface {
	New(path string) FileLock
}

// FlockFactory creates locks backed by github.com/gofrs/flock.
type FlockFactory struct{}

func (FlockFactory) New(path string) FileLock {
	return flock.New(path)
}
