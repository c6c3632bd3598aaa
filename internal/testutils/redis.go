package testutils

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// DefaultTestRedisURL points at DB 15 so tests never touch bot data
const DefaultTestRedisURL = "redis://localhost:6379/15"

// TestRedisURL returns REDIS_TEST_URL or the default test database
func TestRedisURL() string {
	if url := os.Getenv("REDIS_TEST_URL"); url != "" {
		return url
	}
	return DefaultTestRedisURL
}

// CreateTestRedisClient connects to url, flushes the database and registers
// cleanup. The test is skipped when redis does not answer.
func CreateTestRedisClient(t *testing.T, url string) redis.UniversalClient {
	t.Helper()

	opts, err := redis.ParseURL(url)
	require.NoError(t, err, "invalid redis url")

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available for testing: %v", err)
	}

	require.NoError(t, client.FlushDB(ctx).Err(), "Failed to flush test Redis database")

	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})

	return client
}

// CreateTestRedisClientOrSkip uses TestRedisURL
func CreateTestRedisClientOrSkip(t *testing.T) redis.UniversalClient {
	t.Helper()
	return CreateTestRedisClient(t, TestRedisURL())
}

// WaitForRedis waits for Redis to be ready or times out
func WaitForRedis(url string, timeout time.Duration) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}
	client := redis.NewClient(opts)
	defer client.Close()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		err := client.Ping(ctx).Err()
		cancel()

		if err == nil {
			return nil
		}

		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("redis not ready after %v", timeout)
}
