// Package lock gives at-most-once execution of a screening check across
// service instances.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"seawatch/pkg/platform/sentinel"
)

const keyPrefix = "screening:lock:"

// releaseScript deletes the key only if this holder still owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Release gives up a held lock.
type Release func(ctx context.Context) error

// RedisLock is a SET NX lock with a TTL so a crashed holder cannot block the
// check forever.
type RedisLock struct {
	client *redis.Client
}

// NewRedis creates a RedisLock.
func NewRedis(client *redis.Client) *RedisLock {
	return &RedisLock{client: client}
}

// Acquire takes the lock for key or returns sentinel.ErrAlreadyRunning.
func (l *RedisLock) Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error) {
	token := uuid.NewString()
	fullKey := keyPrefix + key
	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, sentinel.ErrAlreadyRunning
	}
	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err(); err != nil {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		return nil
	}, nil
}
