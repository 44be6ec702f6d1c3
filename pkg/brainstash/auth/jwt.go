package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	// ErrNoSecret means the signing secret is absent from the
	// environment. main refuses to start without it, so seeing this
	// at request time is an unexpected server-side failure.
	ErrNoSecret = errors.New("jwt signing secret is not configured")
)

// Claims represents the JWT claims. The user ID is the only custom
// claim the token carries.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// getJWTSecret returns the signing secret from the environment
func getJWTSecret() ([]byte, error) {
	secret := os.Getenv("BRAINSTASH_JWT_SECRET")
	if secret == "" {
		return nil, ErrNoSecret
	}
	return []byte(secret), nil
}

// getTokenDuration returns the token validity duration from
// BRAINSTASH_JWT_EXPIRY (a Go duration string, validated at startup)
func getTokenDuration() time.Duration {
	if d, err := time.ParseDuration(os.Getenv("BRAINSTASH_JWT_EXPIRY")); err == nil {
		return d
	}
	return 24 * time.Hour
}

// GenerateToken creates a new signed token for a user
func GenerateToken(userID uint) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}

	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(getTokenDuration())),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "brainstash",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates a token string and returns its claims.
// Expired and otherwise-invalid tokens come back as ErrExpiredToken
// and ErrInvalidToken; anything else (such as a missing secret) is
// passed through so callers can treat it as a server failure rather
// than a credential problem.
func ValidateToken(tokenString string) (*Claims, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
