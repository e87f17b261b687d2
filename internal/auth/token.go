package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the JWT payload: the user id plus the registered claim set.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies user-identity tokens with a server-held
// HMAC secret.
type TokenManager struct {
	secret     []byte
	expiration time.Duration
}

// NewTokenManager creates a TokenManager. The expiration defaults to 30 days
// when not set, matching the cookie lifetime.
func NewTokenManager(secret string, expiration time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	if expiration <= 0 {
		expiration = 30 * 24 * time.Hour
	}
	return &TokenManager{
		secret:     []byte(secret),
		expiration: expiration,
	}, nil
}

// Expiration returns the configured token lifetime.
func (m *TokenManager) Expiration() time.Duration {
	return m.expiration
}

// Issue signs a new HS256 token embedding the user id and an expiry.
func (m *TokenManager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "fitbuzz-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token string and returns the embedded user
// id. Expired tokens fail with ErrTokenExpired, anything else malformed or
// tampered with fails with ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
