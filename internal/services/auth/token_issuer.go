package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the payload carried by both access and refresh tokens.
type TokenClaims struct {
	UserID   string
	Email    string
	Role     string
	TenantID string
}

type jwtClaims struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies access and refresh tokens. The two token kinds
// use distinct symmetric secrets and distinct TTLs.
type JWTIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     string
	refreshTTL    string
}

// NewJWTIssuer constructs an issuer. TTLs are duration strings like "1h",
// "15m", "7d", "30s".
func NewJWTIssuer(accessSecret, refreshSecret, accessTTL, refreshTTL string) *JWTIssuer {
	return &JWTIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessToken signs a short-lived access token for the given claims
func (i *JWTIssuer) IssueAccessToken(c TokenClaims) (string, error) {
	return i.issue(c, i.accessSecret, i.accessTTL)
}

// IssueRefreshToken signs a long-lived refresh token for the given claims
func (i *JWTIssuer) IssueRefreshToken(c TokenClaims) (string, error) {
	return i.issue(c, i.refreshSecret, i.refreshTTL)
}

// VerifyAccessToken verifies signature and expiry of an access token
func (i *JWTIssuer) VerifyAccessToken(token string) (TokenClaims, error) {
	return i.verify(token, i.accessSecret)
}

// VerifyRefreshToken verifies signature and expiry of a refresh token
func (i *JWTIssuer) VerifyRefreshToken(token string) (TokenClaims, error) {
	return i.verify(token, i.refreshSecret)
}

// AccessTokenTTLSeconds returns the access-token lifetime in seconds, as
// reported to clients in `expires_in`.
func (i *JWTIssuer) AccessTokenTTLSeconds() int64 {
	return TTLSeconds(i.accessTTL)
}

func (i *JWTIssuer) issue(c TokenClaims, secret []byte, ttl string) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		Email:    c.Email,
		Role:     c.Role,
		TenantID: c.TenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(TTLSeconds(ttl)) * time.Second)),
			ID:        uuid.NewString(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// verify returns a single generic error for every failure mode, so callers
// cannot tell an expired token from a malformed one.
func (i *JWTIssuer) verify(token string, secret []byte) (TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return TokenClaims{}, fmt.Errorf("invalid token")
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok {
		return TokenClaims{}, fmt.Errorf("invalid token")
	}

	return TokenClaims{
		UserID:   claims.Subject,
		Email:    claims.Email,
		Role:     claims.Role,
		TenantID: claims.TenantID,
	}, nil
}

// TTLSeconds parses a duration string whose trailing unit is one of s, m, h
// or d. Unparseable values fall back to 3600.
func TTLSeconds(ttl string) int64 {
	if len(ttl) < 2 {
		return 3600
	}

	n, err := strconv.ParseInt(ttl[:len(ttl)-1], 10, 64)
	if err != nil || n < 0 {
		return 3600
	}

	switch ttl[len(ttl)-1] {
	case 's':
		return n
	case 'm':
		return n * 60
	case 'h':
		return n * 3600
	case 'd':
		return n * 86400
	default:
		return 3600
	}
}
