package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gamehub-dev/gamehub-service/internal/domain"
)

// Freshness failures. All of them mean "token invalid" to the boolean check;
// only ErrLookupUnavailable escapes it, because it is a collaborator outage
// rather than a verdict about the token.
var (
	ErrTokenExpired      = errors.New("token expired")
	ErrUserNotFound      = errors.New("token subject no longer exists")
	ErrStaleCredential   = errors.New("credential changed since token issuance")
	ErrLookupUnavailable = errors.New("identity lookup unavailable")
)

// UserLookup is the identity directory consulted on every validation. A
// missing identity is reported as pgx.ErrNoRows; any other error is treated
// as a transport failure.
type UserLookup interface {
	GetByID(ctx context.Context, id int) (*domain.User, error)
}

// Validator evaluates decoded claims against current identity state. Validity
// is computed fresh on every call; a password change revokes outstanding
// tokens without any blocklist.
type Validator struct {
	tokens *TokenManager
	users  UserLookup
	now    func() time.Time
}

// NewValidator builds a validator over the given manager and directory.
func NewValidator(tokens *TokenManager, users UserLookup) *Validator {
	return &Validator{tokens: tokens, users: users, now: time.Now}
}

// GetClaims exposes signature verification without freshness checks.
func (v *Validator) GetClaims(tokenStr string) (*Claims, error) {
	return v.tokens.GetClaims(tokenStr)
}

// Resolve returns the identity a token proves, applying every freshness rule.
// The returned error is one of ErrClaimsInvalid, ErrTokenExpired,
// ErrUserNotFound, ErrStaleCredential, or wraps ErrLookupUnavailable.
func (v *Validator) Resolve(ctx context.Context, tokenStr string) (*domain.User, *Claims, error) {
	claims, err := v.tokens.GetClaims(tokenStr)
	if err != nil {
		return nil, nil, err
	}

	// Exactly-at-expiration counts as expired.
	if claims.ExpiresAt != nil && !claims.ExpiresAt.Time.After(v.now()) {
		return nil, nil, ErrTokenExpired
	}

	user, err := v.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrLookupUnavailable, err)
	}

	// Identities without a password credential (external-provider accounts)
	// have nothing to compare the fingerprint against.
	if user.PasswordHash != nil && !FingerprintMatches(*user.PasswordHash, claims.Fingerprint) {
		return nil, nil, ErrStaleCredential
	}

	return user, claims, nil
}

// Validate is the non-throwing status check. Decode and freshness failures
// fold into false; only a lookup outage surfaces as an error.
func (v *Validator) Validate(ctx context.Context, tokenStr string) (bool, error) {
	_, _, err := v.Resolve(ctx, tokenStr)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrLookupUnavailable) {
		return false, err
	}
	return false, nil
}
