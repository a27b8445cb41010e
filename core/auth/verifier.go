package auth

import (
	"context"
	"errors"
)

var ErrUnauthenticated = errors.New("user not authenticated")

// Verifier resolves a bearer ID token into the acting User.
type Verifier interface {
	// Verify checks the token's signature and expiry and returns the user it
	// identifies, or ErrUnauthenticated.
	Verify(ctx context.Context, idToken string) (User, error)
}
