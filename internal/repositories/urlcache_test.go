package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedisContainer(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "6379")

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", host, port.Int()),
	})

	for i := 0; i < 10; i++ {
		if err = rdb.Ping(context.Background()).Err(); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	teardown := func() {
		rdb.Close()
		container.Terminate(context.Background())
	}

	return rdb, teardown
}

func TestDownloadURLCache_SetGet(t *testing.T) {
	rdb, teardown := setupRedisContainer(t)
	defer teardown()

	cache := NewDownloadURLCache(rdb, time.Minute)
	ctx := context.Background()

	locator := "https://bucket.s3.amazonaws.com/recipes/abc-dinner.jpg"

	t.Run("Miss", func(t *testing.T) {
		url, err := cache.Get(ctx, locator)
		assert.NoError(t, err)
		assert.Empty(t, url)
	})

	t.Run("Hit", func(t *testing.T) {
		err := cache.Set(ctx, locator, "https://signed.example/get")
		assert.NoError(t, err)

		url, err := cache.Get(ctx, locator)
		assert.NoError(t, err)
		assert.Equal(t, "https://signed.example/get", url)
	})
}

func TestDownloadURLCache_Expiry(t *testing.T) {
	rdb, teardown := setupRedisContainer(t)
	defer teardown()

	cache := NewDownloadURLCache(rdb, time.Second)
	ctx := context.Background()

	err := cache.Set(ctx, "locator", "https://signed.example/get")
	assert.NoError(t, err)

	time.Sleep(1500 * time.Millisecond)

	url, err := cache.Get(ctx, "locator")
	assert.NoError(t, err)
	assert.Empty(t, url)
}

func TestNewDownloadURLCache_DefaultTTL(t *testing.T) {
	cache := NewDownloadURLCache(nil, 0)
	assert.Equal(t, DefaultDownloadURLTTL, cache.ttl)
}
