package auth

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/gamehub-dev/gamehub-service/internal/domain"
)

// ErrClaimsInvalid is the umbrella decode failure: malformed structure,
// wrong signing method, or a signature that does not verify. Callers never
// learn which one it was.
var ErrClaimsInvalid = errors.New("token claims cannot be trusted")

// TokenManager encodes and decodes signed claims and issues token pairs.
// The signing secret is fixed at construction and never mutated.
type TokenManager struct {
	secret        []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	rememberMeTTL time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, access, refresh, rememberMe time.Duration) *TokenManager {
	if access <= 0 {
		access = 15 * time.Minute
	}
	if refresh <= 0 {
		refresh = 12 * time.Hour
	}
	if rememberMe <= refresh {
		rememberMe = 30 * 24 * time.Hour
	}
	return &TokenManager{
		secret:        []byte(secret),
		accessTTL:     access,
		refreshTTL:    refresh,
		rememberMeTTL: rememberMe,
	}
}

// Claims describes the JWT payload. Values are immutable once signed; the
// validator only ever reads them.
type Claims struct {
	UserID      int         `json:"uid"`
	Fingerprint string      `json:"pwd_fp"`
	Role        domain.Role `json:"role"`
	RememberMe  bool        `json:"remember_me"`
	jwt.RegisteredClaims
}

// TokenPair bundles the access and refresh tokens issued at login. The two
// tokens are not linked server-side; each stands alone.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	RememberMe   bool   `json:"rememberMe"`
}

// IssueTokens builds an access/refresh pair for an identity. The fingerprint
// is a snapshot of the identity's current credential (see Fingerprint); the
// role is fixed to USER at issuance, no elevation path exists here.
func (tm *TokenManager) IssueTokens(userID int, fingerprint string, rememberMe bool) (TokenPair, error) {
	accessToken, err := tm.signToken(userID, fingerprint, rememberMe, tm.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}

	refreshTTL := tm.refreshTTL
	if rememberMe {
		refreshTTL = tm.rememberMeTTL
	}
	refreshToken, err := tm.signToken(userID, fingerprint, rememberMe, refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken, RememberMe: rememberMe}, nil
}

func (tm *TokenManager) signToken(userID int, fingerprint string, rememberMe bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:      userID,
		Fingerprint: fingerprint,
		Role:        domain.RoleUser,
		RememberMe:  rememberMe,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(tm.secret)
}

// GetClaims verifies the signature and returns the decoded claims. It does
// not evaluate freshness rules; that is the validator's job. No field of an
// unverified payload is ever returned.
func (tm *TokenManager) GetClaims(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS512 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, ErrClaimsInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrClaimsInvalid
	}
	return claims, nil
}
