// auth package decides if a caller's credential (api key) is allowed to submit jobs.
package auth

import (
	"context"
	"fmt"

	ie "github.com/voidshard/jobgate/pkg/errors"
)

// Registry knows which credentials exist.
type Registry interface {
	// Exists returns if the key is a known credential. An error means we couldn't find out,
	// which is not the same as the key being unknown.
	Exists(ctx context.Context, key string) (bool, error)
}

// Gate admits or denies callers by their credential.
type Gate struct {
	reg Registry
}

// NewGate returns a Gate backed by the given registry.
func NewGate(reg Registry) *Gate {
	return &Gate{reg: reg}
}

// Authenticate returns nil if the credential is known.
//
// ErrMissingCredential is returned for an empty credential & ErrUnknownCredential if the
// registry doesn't know it (both are ErrUnauthorized). Registry failures are returned as is.
func (g *Gate) Authenticate(ctx context.Context, credential string) error {
	if credential == "" {
		return ie.ErrMissingCredential
	}
	ok, err := g.reg.Exists(ctx, credential)
	if err != nil {
		return fmt.Errorf("failed to look up credential: %w", err)
	}
	if !ok {
		return ie.ErrUnknownCredential
	}
	return nil
}
