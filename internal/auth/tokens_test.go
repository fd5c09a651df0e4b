package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labtrack-backend/config"
	"labtrack-backend/internal/model"
)

func newTestTokenService() *TokenService {
	return NewTokenService(&config.AuthConfig{
		JWTSecret:  "test-secret",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
}

func TestIssueAndParseAccess(t *testing.T) {
	ts := newTestTokenService()
	user := &model.User{ID: 42, Username: "sam", Role: model.RoleStudent}

	pair, err := ts.IssuePair(user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	actor, err := ts.ParseAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), actor.ID)
	assert.Equal(t, "sam", actor.Username)
	assert.Equal(t, model.RoleStudent, actor.Role)
}

func TestParseAccessRejectsGarbage(t *testing.T) {
	ts := newTestTokenService()

	_, err := ts.ParseAccess("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessRejectsWrongKey(t *testing.T) {
	ts := newTestTokenService()
	other := NewTokenService(&config.AuthConfig{
		JWTSecret:  "different-secret",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})

	pair, err := other.IssuePair(&model.User{ID: 1, Username: "eve", Role: model.RoleStudent})
	require.NoError(t, err)

	_, err = ts.ParseAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRedeemRotatesRefreshToken(t *testing.T) {
	ts := newTestTokenService()
	user := &model.User{ID: 7, Username: "ana", Role: model.RoleAdmin}

	pair, err := ts.IssuePair(user)
	require.NoError(t, err)

	uid, err := ts.Redeem(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(7), uid)

	// The same refresh token must not be redeemable twice.
	_, err = ts.Redeem(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRedeemUnknownToken(t *testing.T) {
	ts := newTestTokenService()

	_, err := ts.Redeem("never-issued")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
