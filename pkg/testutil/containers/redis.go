//go:build integration

package containers

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"readiness/internal/platform/config"
	redisclient "readiness/internal/platform/redis"
)

// RedisContainer is a throwaway Redis with a client connected the way the
// service connects.
type RedisContainer struct {
	Container testcontainers.Container
	URL       string
	Client    *redisclient.Client
}

// NewRedisContainer starts Redis and terminates it when t ends.
func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	url, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get redis connection string: %v", err)
	}

	client, err := redisclient.New(ctx, config.RedisConfig{URL: url})
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return &RedisContainer{Container: container, URL: url, Client: client}
}
