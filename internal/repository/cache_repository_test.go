package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/exam-seat-finder/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	var dest map[string]string
	err := repo.Get(ctx, "seatfinder:search:exam-1:A10013", &dest)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))

	assert.NoError(t, repo.Set(ctx, "k", map[string]string{"a": "b"}, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "seatfinder:*"))
	assert.NoError(t, repo.Close())
}

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestCacheRepositorySetRejectsUnmarshalableValues(t *testing.T) {
	repo := NewCacheRepository(unreachableClient(), nil)
	defer repo.Close()

	err := repo.Set(context.Background(), "k", make(chan int), time.Minute)
	assert.ErrorContains(t, err, "marshal cache value for k")
}

func TestCacheRepositoryBackendErrorIsNotAMiss(t *testing.T) {
	repo := NewCacheRepository(unreachableClient(), nil)
	defer repo.Close()

	var dest string
	err := repo.Get(context.Background(), "k", &dest)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, appErrors.ErrCacheMiss))
}
