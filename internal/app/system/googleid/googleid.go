// Package googleid verifies Google Sign-In credentials.
//
// The login handler depends on the Verifier interface so tests can swap a
// fake in; the production implementation validates the ID token against
// Google's public keys and the configured OAuth client ID.
package googleid

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

// ErrInvalidToken reports a credential that failed verification
// (malformed, expired, wrong audience). Distinct from "valid identity that
// is not allow-listed", which is an authorization failure, not ours.
var ErrInvalidToken = errors.New("invalid identity token")

// Identity is a verified Google identity.
type Identity struct {
	Email string
	Name  string
}

// Verifier validates an opaque credential token and returns the identity
// it asserts.
type Verifier interface {
	Verify(ctx context.Context, credential string) (Identity, error)
}

// TokenVerifier verifies Google ID tokens for a single OAuth client ID.
type TokenVerifier struct {
	clientID string
}

// NewTokenVerifier returns a Verifier that accepts tokens issued to clientID.
func NewTokenVerifier(clientID string) *TokenVerifier {
	return &TokenVerifier{clientID: clientID}
}

// Verify validates credential against Google's certs and the expected
// audience. Any validation failure is reported as ErrInvalidToken.
func (v *TokenVerifier) Verify(ctx context.Context, credential string) (Identity, error) {
	payload, err := idtoken.Validate(ctx, credential, v.clientID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id := Identity{
		Email: claimString(payload, "email"),
		Name:  claimString(payload, "name"),
	}
	return id, nil
}

func claimString(p *idtoken.Payload, key string) string {
	if v, ok := p.Claims[key].(string); ok {
		return v
	}
	return ""
}
