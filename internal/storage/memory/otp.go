package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"jobportal/internal/storage"
)

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// OTPStore implements storage.OTPStore in memory with lazy expiry.
type OTPStore struct {
	mu      sync.Mutex
	entries map[string]otpEntry
	now     func() time.Time
}

// NewOTPStore creates an empty OTPStore. now may be nil.
func NewOTPStore(now func() time.Time) *OTPStore {
	if now == nil {
		now = time.Now
	}
	return &OTPStore{entries: make(map[string]otpEntry), now: now}
}

var _ storage.OTPStore = (*OTPStore)(nil)

func (s *OTPStore) Save(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[strings.ToLower(email)] = otpEntry{code: code, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *OTPStore) Get(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(email)
	e, ok := s.entries[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return "", storage.ErrNotFound
	}
	return e.code, nil
}

func (s *OTPStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, strings.ToLower(email))
	return nil
}
