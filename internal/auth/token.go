package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Error kinds surfaced by token parsing. Signature failures are kept
// distinct so callers can log tampered or foreign tokens separately.
var (
	ErrSignatureInvalid = errors.New("invalid token signature")
	ErrTokenInvalid     = errors.New("token validation failed")
)

// ClaimFormatError reports a claim that is present but not shaped as a
// list of strings (or, for "sub", not a string). A malformed claim is an
// error, never an empty default: a token must not silently lose its
// authorities.
type ClaimFormatError struct {
	Claim string
}

func (e *ClaimFormatError) Error() string {
	return fmt.Sprintf("invalid %s claim format", e.Claim)
}

// Identity is the bundle of facts embedded into a token.
type Identity struct {
	UserID      int64
	Username    string
	Roles       []string
	Permissions []string
	Groups      []string
}

// TokenPair is the login response payload.
type TokenPair struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// TokenManager signs and verifies JWT tokens with a symmetric key held
// for the process lifetime. The same instance must serve every sign and
// verify call or previously issued tokens stop verifying.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a manager. An empty secret generates a random
// 256-bit key; failure to obtain one is fatal for the caller since no
// token could ever be signed.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if ttl <= 0 {
		ttl = 240 * time.Hour
	}
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
	}
	return &TokenManager{secret: key, ttl: ttl}, nil
}

// TTL returns the validity window applied to issued tokens.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue builds and signs a token for the identity. Expiry is always
// issued-at plus the fixed validity window.
func (tm *TokenManager) Issue(identity Identity) (TokenPair, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":         identity.Username,
		"id":          identity.UserID,
		"roles":       nonNil(identity.Roles),
		"permissions": nonNil(identity.Permissions),
		"groups":      nonNil(identity.Groups),
		"iat":         jwt.NewNumericDate(now),
		"exp":         jwt.NewNumericDate(now.Add(tm.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Username: identity.Username, Token: signed}, nil
}

// ExtractClaims verifies the signature and structural validity of the
// token and returns its claim set. Signature mismatches surface as
// ErrSignatureInvalid; every other decode or verify failure as
// ErrTokenInvalid.
func (tm *TokenManager) ExtractClaims(tokenStr string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ExtractUsername returns the subject claim.
func (tm *TokenManager) ExtractUsername(tokenStr string) (string, error) {
	claims, err := tm.ExtractClaims(tokenStr)
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return "", &ClaimFormatError{Claim: "sub"}
	}
	return sub, nil
}

// ExtractUserID returns the numeric id claim.
func (tm *TokenManager) ExtractUserID(tokenStr string) (int64, error) {
	claims, err := tm.ExtractClaims(tokenStr)
	if err != nil {
		return 0, err
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, &ClaimFormatError{Claim: "id"}
	}
	return int64(id), nil
}

// ExtractRoles returns the roles claim as a string list.
func (tm *TokenManager) ExtractRoles(tokenStr string) ([]string, error) {
	claims, err := tm.ExtractClaims(tokenStr)
	if err != nil {
		return nil, err
	}
	return stringListClaim(claims, "roles")
}

// ExtractPermissions returns the permissions claim as a string list.
func (tm *TokenManager) ExtractPermissions(tokenStr string) ([]string, error) {
	claims, err := tm.ExtractClaims(tokenStr)
	if err != nil {
		return nil, err
	}
	return stringListClaim(claims, "permissions")
}

// ExtractGroups returns the groups claim as a string list.
func (tm *TokenManager) ExtractGroups(tokenStr string) ([]string, error) {
	claims, err := tm.ExtractClaims(tokenStr)
	if err != nil {
		return nil, err
	}
	return stringListClaim(claims, "groups")
}

// ExtractAuthorities flattens role and permission names into the
// authority list used by access-control checks, roles first. Duplicates
// are kept; authority checks are membership tests.
func (tm *TokenManager) ExtractAuthorities(tokenStr string) ([]string, error) {
	roles, err := tm.ExtractRoles(tokenStr)
	if err != nil {
		return nil, err
	}
	permissions, err := tm.ExtractPermissions(tokenStr)
	if err != nil {
		return nil, err
	}
	authorities := make([]string, 0, len(roles)+len(permissions))
	authorities = append(authorities, roles...)
	return append(authorities, permissions...), nil
}

// HasExpired reports whether the token's expiry has passed. Fail-closed:
// a token whose expiry cannot be determined is treated as expired.
func (tm *TokenManager) HasExpired(tokenStr string) bool {
	claims, err := tm.ExtractClaims(tokenStr)
	if err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Before(time.Now())
}

// Validate reports whether the token belongs to the expected username
// and has not expired. Both conditions are required.
func (tm *TokenManager) Validate(tokenStr, username string) bool {
	extracted, err := tm.ExtractUsername(tokenStr)
	if err != nil {
		return false
	}
	return extracted == username && !tm.HasExpired(tokenStr)
}

func stringListClaim(claims jwt.MapClaims, name string) ([]string, error) {
	raw, ok := claims[name]
	if !ok {
		return nil, &ClaimFormatError{Claim: name}
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, &ClaimFormatError{Claim: name}
	}
	values := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
