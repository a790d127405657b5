package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/botcmd/pkg/ports"
	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPollInterval is how often a blocked Lock retries.
const DefaultPollInterval = 100 * time.Millisecond

// unlockScript deletes the key only if we still own it.
var unlockScript = backend.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// Locker implements ports.DistributedLocker using Redis.
type Locker struct {
	client *backend.Client
	prefix string
	poll   time.Duration
}

// NewLocker creates a new Redis locker.
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{
		client: client,
		prefix: prefix,
		poll:   DefaultPollInterval,
	}
}

// Lock acquires a distributed lock for the given key using SET NX PX,
// polling until it succeeds or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key
	token := uuid.NewString()

	unlock := func(ctx context.Context) error {
		return unlockScript.Run(ctx, l.client, []string{lockKey}, token).Err()
	}

	acquire := func() (bool, error) {
		ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
		if err != nil {
			return false, fmt.Errorf("redis error acquiring lock: %w", err)
		}
		return ok, nil
	}

	if ok, err := acquire(); err != nil || ok {
		if err != nil {
			return nil, err
		}
		return unlock, nil
	}

	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			ok, err := acquire()
			if err != nil {
				return nil, err
			}
			if ok {
				return unlock, nil
			}
		}
	}
}
