package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamehub-dev/gamehub-service/internal/domain"
)

const testSecret = "unit-test-signing-secret"

func newTestManager() *TokenManager {
	return NewTokenManager(testSecret, 15*time.Minute, 12*time.Hour, 30*24*time.Hour)
}

func TestIssueAndDecodeRoundTrip(t *testing.T) {
	tm := newTestManager()

	pair, err := tm.IssueTokens(42, Fingerprint("hash-of-secret"), true)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RememberMe)

	for _, token := range []string{pair.AccessToken, pair.RefreshToken} {
		claims, err := tm.GetClaims(token)
		require.NoError(t, err)
		assert.Equal(t, 42, claims.UserID)
		assert.Equal(t, Fingerprint("hash-of-secret"), claims.Fingerprint)
		assert.Equal(t, domain.RoleUser, claims.Role)
		assert.True(t, claims.RememberMe)
		assert.Equal(t, "42", claims.Subject)
		require.NotNil(t, claims.ExpiresAt)
	}
}

func TestDecodeRejectsTamperedSignature(t *testing.T) {
	tm := newTestManager()

	pair, err := tm.IssueTokens(7, Fingerprint("h"), false)
	require.NoError(t, err)

	parts := strings.Split(pair.AccessToken, ".")
	require.Len(t, parts, 3)

	// The final character carries base64 trailing bits that a lenient decoder
	// may discard, so tamper every position before it.
	sig := []byte(parts[2])
	for i := 0; i < len(sig)-1; i++ {
		tampered := make([]byte, len(sig))
		copy(tampered, sig)
		if tampered[i] == 'A' {
			tampered[i] = 'B'
		} else {
			tampered[i] = 'A'
		}
		forged := parts[0] + "." + parts[1] + "." + string(tampered)

		_, err := tm.GetClaims(forged)
		assert.ErrorIs(t, err, ErrClaimsInvalid, "byte %d", i)
	}
}

func TestDecodeRejectsWrongSecretAndGarbage(t *testing.T) {
	tm := newTestManager()
	other := NewTokenManager("a-different-secret", 15*time.Minute, 12*time.Hour, 30*24*time.Hour)

	pair, err := other.IssueTokens(7, Fingerprint("h"), false)
	require.NoError(t, err)

	_, err = tm.GetClaims(pair.AccessToken)
	assert.ErrorIs(t, err, ErrClaimsInvalid)

	_, err = tm.GetClaims("not-a-token")
	assert.ErrorIs(t, err, ErrClaimsInvalid)
}

func TestDecodeRejectsForeignSigningMethod(t *testing.T) {
	tm := newTestManager()

	// Same secret, different HMAC variant: the method check must refuse it.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:      42,
		Fingerprint: "fp",
		Role:        domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	claims, err := tm.GetClaims(signed)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrClaimsInvalid)
}

func TestRememberMeLifetimeExceedsStandardRefresh(t *testing.T) {
	tm := newTestManager()

	standard, err := tm.IssueTokens(1, "fp", false)
	require.NoError(t, err)
	extended, err := tm.IssueTokens(1, "fp", true)
	require.NoError(t, err)

	standardClaims, err := tm.GetClaims(standard.RefreshToken)
	require.NoError(t, err)
	extendedClaims, err := tm.GetClaims(extended.RefreshToken)
	require.NoError(t, err)

	assert.True(t, extendedClaims.ExpiresAt.Time.After(standardClaims.ExpiresAt.Time),
		"remember-me refresh token must outlive the standard one")
}

func TestAccessTokenShorterThanRefresh(t *testing.T) {
	tm := newTestManager()

	pair, err := tm.IssueTokens(1, "fp", false)
	require.NoError(t, err)

	accessClaims, err := tm.GetClaims(pair.AccessToken)
	require.NoError(t, err)
	refreshClaims, err := tm.GetClaims(pair.RefreshToken)
	require.NoError(t, err)

	assert.True(t, refreshClaims.ExpiresAt.Time.After(accessClaims.ExpiresAt.Time))
}
