package settlement

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrJobRunning = errors.New("settlement job already running")

type Unlock func(ctx context.Context) error

// Locker keeps two runs of the same job from overlapping. Lock returns
// ErrJobRunning when the job is held elsewhere.
type Locker interface {
	Lock(ctx context.Context, job string, ttl time.Duration) (Unlock, error)
}

// LocalLocker serializes runs inside one process.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]struct{})}
}

func (l *LocalLocker) Lock(_ context.Context, job string, _ time.Duration) (Unlock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[job]; ok {
		return nil, fmt.Errorf("%s: %w", job, ErrJobRunning)
	}
	l.held[job] = struct{}{}
	return func(context.Context) error {
		l.mu.Lock()
		delete(l.held, job)
		l.mu.Unlock()
		return nil
	}, nil
}

// releaseScript deletes the key only while it still carries our token, so
// an expired lock taken over by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker shares job locks between instances through SET NX with a TTL.
type RedisLocker struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisLocker(client redis.UniversalClient, prefix string) *RedisLocker {
	return &RedisLocker{client: client, prefix: prefix}
}

func (l *RedisLocker) key(job string) string {
	return l.prefix + "settlement:" + job
}

func (l *RedisLocker) Lock(ctx context.Context, job string, ttl time.Duration) (Unlock, error) {
	key := l.key(job)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", job, ErrJobRunning)
	}
	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to release lock %s: %w", key, err)
		}
		return nil
	}, nil
}
