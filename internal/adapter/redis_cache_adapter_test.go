package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"flashgen/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

const rawKey = "flashgen:generation:raw:4f2a"

func TestRedisCacheAdapter_Get(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		mock.ExpectGet(rawKey).SetVal("Q: What is X?\nA: X is Y.")
		val, err := cache.Get(ctx, rawKey)
		assert.NoError(t, err)
		assert.Equal(t, "Q: What is X?\nA: X is Y.", val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss maps to ErrCacheMiss", func(t *testing.T) {
		mock.ExpectGet(rawKey).RedisNil()
		val, err := cache.Get(ctx, rawKey)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("backend error passes through", func(t *testing.T) {
		backendErr := errors.New("READONLY replica")
		mock.ExpectGet(rawKey).SetErr(backendErr)
		_, err := cache.Get(ctx, rawKey)
		assert.ErrorIs(t, err, backendErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_SetWithTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)
	ttl := 24 * time.Hour

	mock.ExpectSet(rawKey, "raw output", ttl).SetVal("OK")
	assert.NoError(t, cache.Set(context.Background(), rawKey, "raw output", ttl))

	backendErr := errors.New("OOM command not allowed")
	mock.ExpectSet(rawKey, "raw output", ttl).SetErr(backendErr)
	assert.ErrorIs(t, cache.Set(context.Background(), rawKey, "raw output", ttl), backendErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Ping(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, cache.Ping(context.Background()))

	mock.ExpectPing().SetErr(redis.ErrClosed)
	assert.ErrorIs(t, cache.Ping(context.Background()), redis.ErrClosed)

	assert.NoError(t, mock.ExpectationsWereMet())
}
