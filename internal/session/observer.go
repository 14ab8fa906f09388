package session

import (
	"alcyxob/fitness-admin/internal/auth"
	"context"
)

// TokenVerifier turns a session token into an identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Identity, error)
}

// TokenObserver reports the identity carried by one request's token. It never
// changes, so subscribers are called exactly once.
type TokenObserver struct {
	Verifier TokenVerifier
	Token    string
}

func (o TokenObserver) Subscribe(ctx context.Context, fn func(*auth.Identity)) func() {
	var identity *auth.Identity
	if o.Token != "" {
		if id, err := o.Verifier.Verify(ctx, o.Token); err == nil {
			identity = id
		}
	}
	fn(identity)
	return func() {}
}
