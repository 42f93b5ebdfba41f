package access

import (
	"errors"
	"fmt"
	"time"

	"jobportal/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenExpired is returned by Parse for a well-formed token past its expiry.
var ErrTokenExpired = errors.New("token has expired")

// Claims is the signed token payload.
type Claims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"accountType"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 tokens.
type TokenManager struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewTokenManager creates a TokenManager. now may be nil.
func NewTokenManager(secret string, expiration time.Duration, now func() time.Time) *TokenManager {
	if now == nil {
		now = time.Now
	}
	return &TokenManager{secret: []byte(secret), expiration: expiration, now: now}
}

// Expiration is the token lifetime.
func (m *TokenManager) Expiration() time.Duration {
	return m.expiration
}

// Issue signs a token for user.
func (m *TokenManager) Issue(user *models.User) (string, error) {
	issuedAt := m.now()
	claims := &Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.expiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Parse verifies tokenString and resolves the Principal it carries.
func (m *TokenManager) Parse(tokenString string) (*Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrUnauthenticated
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subject", ErrUnauthenticated)
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: invalid role claim", ErrUnauthenticated)
	}
	return &Principal{UserID: userID, Email: claims.Email, Role: claims.Role}, nil
}
