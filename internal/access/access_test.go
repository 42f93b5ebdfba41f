package access

import (
	"errors"
	"testing"
	"time"

	"jobportal/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireRole(t *testing.T) {
	recruiter := &Principal{UserID: uuid.New(), Role: models.RoleRecruiter}
	seeker := &Principal{UserID: uuid.New(), Role: models.RoleJobSeeker}

	assert.NoError(t, RequireRole(recruiter, models.RoleRecruiter))
	assert.NoError(t, RequireRole(seeker, models.RoleRecruiter, models.RoleJobSeeker))
	assert.ErrorIs(t, RequireRole(seeker, models.RoleRecruiter), ErrForbidden)
	assert.ErrorIs(t, RequireRole(nil, models.RoleRecruiter), ErrUnauthenticated)
	assert.ErrorIs(t, RequireRole(&Principal{Role: models.RoleRecruiter}, models.RoleRecruiter), ErrUnauthenticated)
	assert.ErrorIs(t, RequireRole(&Principal{UserID: uuid.New(), Role: "Admin"}, models.RoleRecruiter), ErrUnauthenticated)
}

func TestRequireOwner(t *testing.T) {
	owner := uuid.New()
	p := &Principal{UserID: owner, Role: models.RoleRecruiter}

	assert.NoError(t, RequireOwner(p, owner))
	assert.True(t, IsOwner(p, owner))
	assert.ErrorIs(t, RequireOwner(p, uuid.New()), ErrForbidden)
	assert.False(t, IsOwner(nil, owner))
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	tm := NewTokenManager("secret", 24*time.Hour, clock)

	user := &models.User{ID: uuid.New(), Email: "r@example.com", Role: models.RoleRecruiter}
	token, err := tm.Issue(user)
	require.NoError(t, err)

	p, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, p.UserID)
	assert.Equal(t, user.Email, p.Email)
	assert.Equal(t, models.RoleRecruiter, p.Role)
}

func TestTokenRejections(t *testing.T) {
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	issuer := NewTokenManager("secret", time.Hour, func() time.Time { return now })
	user := &models.User{ID: uuid.New(), Email: "s@example.com", Role: models.RoleJobSeeker}
	token, err := issuer.Issue(user)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := NewTokenManager("secret", time.Hour, func() time.Time { return now.Add(2 * time.Hour) })
		_, err := later.Parse(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("other", time.Hour, func() time.Time { return now })
		_, err := other.Parse(token)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("unknown role claim", func(t *testing.T) {
		claims := &Claims{
			Role: "Admin",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   uuid.NewString(),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = issuer.Parse(signed)
		assert.True(t, errors.Is(err, ErrUnauthenticated))
	})
}
