package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates session access across several bot replicas,
// so two replicas never run commands of the same caller at once.
type DistributedLocker interface {
	// Lock blocks until the lock for key is acquired or ctx is done.
	// The returned UnlockFunc MUST be called to release the lock; the ttl
	// bounds how long a crashed holder can keep it.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
