package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/soma-connects/onelga-local-services/pkg/domain"
)

// DefaultTokenExpiry is the token lifetime used when none is configured.
const DefaultTokenExpiry = "7d"

// TokenConfig holds token issuer configuration.
type TokenConfig struct {
	// Secret signs tokens. Empty is a fatal configuration error.
	Secret []byte
	Issuer string
	// Expiry is an enumerated duration string: an integer followed by
	// s, m, h, or d (e.g. "30m", "24h", "7d").
	Expiry string
}

// TokenIssuer issues and validates signed session tokens.
type TokenIssuer struct {
	config TokenConfig
}

// NewTokenIssuer creates a token issuer. A missing signing secret is a
// configuration error; the caller is expected to treat it as fatal.
func NewTokenIssuer(config TokenConfig) (*TokenIssuer, error) {
	if len(config.Secret) == 0 {
		return nil, fmt.Errorf("token signing secret is required")
	}
	if config.Expiry == "" {
		config.Expiry = DefaultTokenExpiry
	}
	return &TokenIssuer{config: config}, nil
}

// Claims represents the claims carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Issue produces a signed token carrying the account identifier. An
// unrecognized configured expiry is an error, never a silently-applied
// default.
func (t *TokenIssuer) Issue(account *domain.Account) (string, error) {
	ttl, err := ParseExpiry(t.config.Expiry)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    t.config.Issuer,
			ID:        uuid.New().String(),
		},
		Email: account.Email,
		Role:  account.Profile().Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.config.Secret)
}

// TTL returns the configured token lifetime.
func (t *TokenIssuer) TTL() (time.Duration, error) {
	return ParseExpiry(t.config.Expiry)
}

// Validate validates a token and returns its claims.
func (t *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return t.config.Secret, nil
	})
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}

// AccountIDFromToken extracts the account ID from a token.
func (t *TokenIssuer) AccountIDFromToken(tokenString string) (uuid.UUID, error) {
	claims, err := t.Validate(tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(claims.Subject)
}

// ParseExpiry parses an expiry duration string drawn from the allowed set:
// a positive integer followed by one of s (seconds), m (minutes), h (hours),
// or d (days).
func ParseExpiry(expiry string) (time.Duration, error) {
	if len(expiry) < 2 {
		return 0, fmt.Errorf("invalid token expiry %q", expiry)
	}

	unit := expiry[len(expiry)-1]
	n, err := strconv.Atoi(expiry[:len(expiry)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid token expiry %q", expiry)
	}

	switch unit {
	case 's':
		return time.Duration(n) * time.Second, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("invalid token expiry %q", expiry)
	}
}
