package settlement

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	locker := NewLocalLocker()
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, JobAccrual, time.Minute)
	require.NoError(t, err)

	_, err = locker.Lock(ctx, JobAccrual, time.Minute)
	assert.ErrorIs(t, err, ErrJobRunning)

	other, err := locker.Lock(ctx, JobRelease, time.Minute)
	require.NoError(t, err)
	require.NoError(t, other(ctx))

	require.NoError(t, unlock(ctx))
	again, err := locker.Lock(ctx, JobAccrual, time.Minute)
	require.NoError(t, err)
	assert.NoError(t, again(ctx))
}

func TestRedisLocker_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	locker := NewRedisLocker(client, "test:")
	_, err := locker.Lock(context.Background(), JobAccrual, time.Minute)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrJobRunning)
}

func TestRedisLocker(t *testing.T) {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_ADDRESS not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	locker := NewRedisLocker(client, "investledger-test:")

	unlock, err := locker.Lock(ctx, JobAccrual, time.Minute)
	require.NoError(t, err)

	_, err = locker.Lock(ctx, JobAccrual, time.Minute)
	assert.ErrorIs(t, err, ErrJobRunning)

	require.NoError(t, unlock(ctx))
	again, err := locker.Lock(ctx, JobAccrual, time.Minute)
	require.NoError(t, err)
	assert.NoError(t, again(ctx))
}
