package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"jobportal/internal/storage"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPKeyNormalisesEmail(t *testing.T) {
	assert.Equal(t, "otp:user@example.com", otpKey("  User@Example.COM "))
}

func TestOTPStoreIntegration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_URL")
	if addr == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	client := redislib.NewClient(&redislib.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	store := NewOTPStore(client)
	email := "otp-integration@example.com"

	require.NoError(t, store.Save(ctx, email, "123456", time.Minute))
	code, err := store.Get(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	ttl, err := client.TTL(ctx, otpKey(email)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, email))
	_, err = store.Get(ctx, email)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
