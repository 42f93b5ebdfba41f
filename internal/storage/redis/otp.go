// Package redis holds storage implementations backed by Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobportal/internal/storage"

	redislib "github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:"

// OTPStore keeps one code per email under a TTL so Redis expires it.
type OTPStore struct {
	client redislib.UniversalClient
}

// NewOTPStore creates an OTPStore using client.
func NewOTPStore(client redislib.UniversalClient) *OTPStore {
	return &OTPStore{client: client}
}

var _ storage.OTPStore = (*OTPStore)(nil)

func otpKey(email string) string {
	return otpKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Save overwrites any previous code for email.
func (s *OTPStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, otpKey(email), code, ttl).Err(); err != nil {
		return fmt.Errorf("storing otp: %w", err)
	}
	return nil
}

func (s *OTPStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, otpKey(email)).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("loading otp: %w", err)
	}
	return code, nil
}

func (s *OTPStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, otpKey(email)).Err(); err != nil {
		return fmt.Errorf("deleting otp: %w", err)
	}
	return nil
}
