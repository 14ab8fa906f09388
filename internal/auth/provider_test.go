package auth

import (
	"alcyxob/fitness-admin/internal/domain"
	"alcyxob/fitness-admin/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestProvider() (*Provider, *memory.Store) {
	store := memory.NewStore()
	return NewProvider(store, "test-secret", time.Hour), store
}

func TestProvider_CreateAndSignIn(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestProvider()

	id, err := p.CreateUser(ctx, "Coach@Example.com ", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, id.UID)
	require.Equal(t, "coach@example.com", id.Email)

	signedIn, token, err := p.SignIn(ctx, "coach@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, id.UID, signedIn.UID)
	require.NotEmpty(t, token)

	verified, err := p.Verify(ctx, token)
	require.NoError(t, err)
	require.Equal(t, *id, *verified)
}

func TestProvider_CreateUserValidation(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestProvider()

	_, err := p.CreateUser(ctx, "not-an-email", "secret1")
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = p.CreateUser(ctx, "a@example.com", "123")
	require.ErrorIs(t, err, ErrWeakPassword)

	_, err = p.CreateUser(ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	_, err = p.CreateUser(ctx, "A@example.com", "secret2")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestProvider_SignInWrongPassword(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestProvider()
	_, err := p.CreateUser(ctx, "a@example.com", "secret1")
	require.NoError(t, err)

	_, _, err = p.SignIn(ctx, "a@example.com", "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = p.SignIn(ctx, "nobody@example.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProvider_SignOutRevokesToken(t *testing.T) {
	ctx := context.Background()
	p, store := newTestProvider()
	_, err := p.CreateUser(ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	_, token, err := p.SignIn(ctx, "a@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, p.SignOut(ctx, token))
	require.Equal(t, 1, store.Len(domain.RevokedTokenCollection))

	_, err = p.Verify(ctx, token)
	require.ErrorIs(t, err, ErrTokenRevoked)

	require.NoError(t, p.SignOut(ctx, "garbage"))
}

func TestProvider_VerifyRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	p, store := newTestProvider()
	_, err := p.CreateUser(ctx, "a@example.com", "secret1")
	require.NoError(t, err)

	_, err = p.Verify(ctx, "not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)

	other := NewProvider(store, "other-secret", time.Hour)
	_, token, err := other.SignIn(ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	_, err = p.Verify(ctx, token)
	require.ErrorIs(t, err, ErrInvalidToken)

	p.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	_, expired, err := p.SignIn(ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	_, err = p.Verify(ctx, expired)
	require.ErrorIs(t, err, ErrInvalidToken)
}
