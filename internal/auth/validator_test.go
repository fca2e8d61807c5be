package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamehub-dev/gamehub-service/internal/domain"
)

type fakeDirectory struct {
	users map[int]*domain.User
	err   error
}

func (f *fakeDirectory) GetByID(_ context.Context, id int) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func strPtr(s string) *string { return &s }

func newTestValidator(dir *fakeDirectory) (*TokenManager, *Validator) {
	tm := newTestManager()
	return tm, NewValidator(tm, dir)
}

func TestValidateHappyPath(t *testing.T) {
	dir := &fakeDirectory{users: map[int]*domain.User{
		42: {ID: 42, Username: "alice", PasswordHash: strPtr("hash-p1"), Role: domain.RoleUser},
	}}
	tm, v := newTestValidator(dir)

	pair, err := tm.IssueTokens(42, Fingerprint("hash-p1"), false)
	require.NoError(t, err)

	ok, err := v.Validate(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateExpirationBoundary(t *testing.T) {
	dir := &fakeDirectory{users: map[int]*domain.User{
		1: {ID: 1, PasswordHash: strPtr("h"), Role: domain.RoleUser},
	}}
	tm, v := newTestValidator(dir)

	pair, err := tm.IssueTokens(1, Fingerprint("h"), false)
	require.NoError(t, err)
	claims, err := tm.GetClaims(pair.AccessToken)
	require.NoError(t, err)
	exp := claims.ExpiresAt.Time

	cases := []struct {
		name  string
		now   time.Time
		valid bool
	}{
		{"one second before expiry", exp.Add(-time.Second), true},
		{"exactly at expiry", exp, false},
		{"one second after expiry", exp.Add(time.Second), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v.now = func() time.Time { return tc.now }
			ok, err := v.Validate(context.Background(), pair.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, tc.valid, ok)
		})
	}
}

func TestValidateStaleCredentialRevocation(t *testing.T) {
	user := &domain.User{ID: 9, PasswordHash: strPtr("hash-p1"), Role: domain.RoleUser}
	dir := &fakeDirectory{users: map[int]*domain.User{9: user}}
	tm, v := newTestValidator(dir)

	pair, err := tm.IssueTokens(9, Fingerprint("hash-p1"), false)
	require.NoError(t, err)

	ok, err := v.Validate(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	require.True(t, ok)

	// Password change: signature and expiry are still fine, the token dies anyway.
	user.PasswordHash = strPtr("hash-p2")

	ok, err = v.Validate(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, resolveErr := v.Resolve(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, resolveErr, ErrStaleCredential)
}

func TestValidateMissingIdentity(t *testing.T) {
	dir := &fakeDirectory{users: map[int]*domain.User{
		5: {ID: 5, PasswordHash: strPtr("h"), Role: domain.RoleUser},
	}}
	tm, v := newTestValidator(dir)

	pair, err := tm.IssueTokens(5, Fingerprint("h"), false)
	require.NoError(t, err)

	delete(dir.users, 5)

	ok, err := v.Validate(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, resolveErr := v.Resolve(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, resolveErr, ErrUserNotFound)
}

func TestValidateSkipsFingerprintForPasswordlessAccounts(t *testing.T) {
	dir := &fakeDirectory{users: map[int]*domain.User{
		3: {ID: 3, Username: "oauth-only", PasswordHash: nil, Role: domain.RoleUser},
	}}
	tm, v := newTestValidator(dir)

	pair, err := tm.IssueTokens(3, "", false)
	require.NoError(t, err)

	ok, err := v.Validate(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateLookupOutageIsNotInvalid(t *testing.T) {
	dir := &fakeDirectory{err: errors.New("connection refused")}
	tm, v := newTestValidator(dir)

	pair, err := tm.IssueTokens(1, "fp", false)
	require.NoError(t, err)

	ok, err := v.Validate(context.Background(), pair.AccessToken)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrLookupUnavailable)
}

func TestValidateGarbageTokenIsFalseNotError(t *testing.T) {
	dir := &fakeDirectory{users: map[int]*domain.User{}}
	_, v := newTestValidator(dir)

	ok, err := v.Validate(context.Background(), "garbage")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFingerprintMatches(t *testing.T) {
	assert.True(t, FingerprintMatches("credential", Fingerprint("credential")))
	assert.False(t, FingerprintMatches("credential", Fingerprint("other")))
	assert.False(t, FingerprintMatches("credential", ""))
}
