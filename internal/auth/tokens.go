package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/patrickmn/go-cache"

	"labtrack-backend/config"
	"labtrack-backend/internal/model"
	"labtrack-backend/internal/policy"
)

// ErrInvalidToken is returned for tokens that are missing, expired, malformed
// or signed with the wrong key.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the access-token payload. The role travels in the token so that
// authorization never re-reads mutable user state during a request.
type Claims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Pair is an issued access/refresh token pair.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenService issues and validates bearer tokens. Access tokens are signed
// JWTs; refresh tokens are opaque random strings held server-side with a TTL
// and rotated on every use.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	sessions   *cache.Cache
}

// NewTokenService creates a token service from the auth configuration.
func NewTokenService(cfg *config.AuthConfig) *TokenService {
	return &TokenService{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		sessions:   cache.New(cfg.RefreshTTL, 2*cfg.RefreshTTL),
	}
}

// IssuePair creates an access/refresh pair for the given user.
func (ts *TokenService) IssuePair(user *model.User) (*Pair, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.accessTTL)),
		},
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refresh := hex.EncodeToString(buf)
	ts.sessions.Set(refresh, user.ID, ts.refreshTTL)

	return &Pair{Access: access, Refresh: refresh}, nil
}

// ParseAccess validates an access token and returns the actor it carries.
func (ts *TokenService) ParseAccess(token string) (*policy.Actor, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ts.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return &policy.Actor{ID: claims.UserID, Username: claims.Username, Role: claims.Role}, nil
}

// Redeem consumes a refresh token and returns the user id it belongs to.
// The token is evicted so it can only be used once.
func (ts *TokenService) Redeem(refresh string) (int64, error) {
	v, found := ts.sessions.Get(refresh)
	if !found {
		return 0, ErrInvalidToken
	}
	ts.sessions.Delete(refresh)
	return v.(int64), nil
}
