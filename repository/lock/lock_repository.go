package lock

import (
	"context"
	"time"

	redisclient "github.com/asetku/marketplace/cmd/redis"
	"github.com/asetku/marketplace/constant"
	"github.com/asetku/marketplace/utils/errors"
	"github.com/google/uuid"
)

// Lease is proof of a held lock. Release only deletes the key when the lease
// token still matches, so an expired lease cannot free a lock someone else
// re-acquired.
type Lease struct {
	Key   string
	Token string
}

type Locker interface {
	Acquire(ctx context.Context, key string, wait time.Duration) (*Lease, error)
	Release(ctx context.Context, lease *Lease) error
}

type redisLocker struct {
	leaseTTL     time.Duration
	pollInterval time.Duration
}

func NewLocker(leaseTTL, pollInterval time.Duration) Locker {
	return &redisLocker{
		leaseTTL:     leaseTTL,
		pollInterval: pollInterval,
	}
}

const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) else return 0 end`

// Acquire polls SET NX until the lock is granted or wait elapses. A timeout
// surfaces as ErrLockConflict, the only caller-retryable condition.
func (l *redisLocker) Acquire(ctx context.Context, key string, wait time.Duration) (*Lease, error) {
	client := redisclient.Get()
	if client == nil {
		return &Lease{Key: key}, nil
	}

	lease := &Lease{Key: key, Token: uuid.NewString()}
	deadline := time.Now().Add(wait)

	for {
		ok, err := client.SetNX(ctx, key, lease.Token, l.leaseTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return lease, nil
		}
		if time.Now().After(deadline) {
			return nil, errors.SetCustomError(constant.ErrLockConflict)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.pollInterval):
		}
	}
}

func (l *redisLocker) Release(ctx context.Context, lease *Lease) error {
	client := redisclient.Get()
	if client == nil || lease == nil {
		return nil
	}
	return client.Eval(ctx, releaseScript, []string{lease.Key}, lease.Token).Err()
}
