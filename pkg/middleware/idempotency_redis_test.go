package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisIdempotencyStore_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisIdempotencyStore(db, time.Hour)

	mock.ExpectGet(redisIdempotencyPrefix + "k1").RedisNil()

	cached, found, err := store.Get(context.Background(), "k1")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, cached)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisIdempotencyStore_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisIdempotencyStore(db, time.Hour)

	stored := CachedResponse{
		StatusCode: http.StatusCreated,
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(`{"data":{"id":"b1"}}`),
	}
	data, err := json.Marshal(stored)
	require.NoError(t, err)

	mock.ExpectGet(redisIdempotencyPrefix + "k2").SetVal(string(data))

	cached, found, err := store.Get(context.Background(), "k2")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, http.StatusCreated, cached.StatusCode)
	assert.Equal(t, stored.Body, cached.Body)
	assert.Equal(t, "application/json", cached.Headers.Get("Content-Type"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisIdempotencyStore_Error(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisIdempotencyStore(db, time.Hour)

	mock.ExpectGet(redisIdempotencyPrefix + "k3").SetErr(errors.New("connection refused"))

	_, found, err := store.Get(context.Background(), "k3")
	assert.Error(t, err)
	assert.False(t, found)
}
