package kernel

import (
	"fmt"

	"freight/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrAccessTokenIsNotConstructed is returned when validating a zero-value AccessToken.
var ErrAccessTokenIsNotConstructed = errs.NewValueIsRequiredError(
	"access token must be created via NewAccessToken or AccessTokenFromString")

// AccessToken is the unguessable secret embedded in a carrier invitation link.
// Possession of the token is the only credential a carrier needs to view a
// request and submit an offer, so tokens are generated from a random UUID and
// never derived from other identifiers.
//
// The zero value is invalid; use NewAccessToken or AccessTokenFromString.
type AccessToken struct {
	value uuid.UUID
}

// NewAccessToken generates a fresh random token.
func NewAccessToken() AccessToken {
	return AccessToken{
		value: uuid.New(),
	}
}

// AccessTokenFromString parses a token received in a URL path or loaded from
// persistence. A malformed string yields an error without revealing whether
// any invitation exists.
func AccessTokenFromString(s string) (AccessToken, error) {
	value, err := uuid.Parse(s)
	if err != nil {
		return AccessToken{}, fmt.Errorf("invalid access token format: %w", err)
	}
	return AccessToken{value: value}, nil
}

// String returns the token in its canonical URL-safe representation.
func (t AccessToken) String() string {
	return t.value.String()
}

// IsEqual reports whether two tokens carry the same secret.
func (t AccessToken) IsEqual(other AccessToken) bool {
	return t.value == other.value
}

// Validate returns ErrAccessTokenIsNotConstructed for the zero value.
func (t AccessToken) Validate() error {
	if t.value == uuid.Nil {
		return ErrAccessTokenIsNotConstructed
	}
	return nil
}
