package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolved(identityIsAdmin bool, signedIn bool) *Session {
	s := New(adminsOnly("admin-1"), nil)
	switch {
	case signedIn && identityIsAdmin:
		s.Resolve(context.Background(), admin)
	case signedIn:
		s.Resolve(context.Background(), member)
	default:
		s.Resolve(context.Background(), nil)
	}
	return s
}

func TestGuard_AdminRouteWithoutSessionRedirectsToLogin(t *testing.T) {
	g := NewGuard("", "")
	route := Route{Path: "/admin/levels", RequiresAdmin: true}

	d, err := g.Check(context.Background(), resolved(false, false), route)
	require.NoError(t, err)
	assert.False(t, d.Allow)
	assert.Equal(t, "/login", d.Redirect)

	d, err = g.Check(context.Background(), resolved(false, true), route)
	require.NoError(t, err)
	assert.Equal(t, Decision{Redirect: "/login"}, d)
}

func TestGuard_AdminRouteAllowsAdmin(t *testing.T) {
	g := NewGuard("/login", "/admin/main-categories")
	d, err := g.Check(context.Background(), resolved(true, true), Route{RequiresAdmin: true})
	require.NoError(t, err)
	assert.True(t, d.Allow)
}

func TestGuard_GuestRouteRedirectsSignedInAdmin(t *testing.T) {
	g := NewGuard("/login", "/admin/main-categories")
	route := Route{Path: "/login", RequiresGuest: true}

	d, err := g.Check(context.Background(), resolved(true, true), route)
	require.NoError(t, err)
	assert.Equal(t, Decision{Redirect: "/admin/main-categories"}, d)

	d, err = g.Check(context.Background(), resolved(false, false), route)
	require.NoError(t, err)
	assert.True(t, d.Allow)
}

func TestGuard_PublicRouteDoesNotWait(t *testing.T) {
	g := NewGuard("", "")
	s := New(adminsOnly(), nil)

	d, err := g.Check(context.Background(), s, Route{Path: "/setup-admin", Public: true})
	require.NoError(t, err)
	assert.True(t, d.Allow)
}

func TestGuard_WaitsForResolution(t *testing.T) {
	g := NewGuard("", "")
	s := New(adminsOnly("admin-1"), nil)

	go func() {
		time.Sleep(5 * time.Millisecond)
		s.Resolve(context.Background(), admin)
	}()

	d, err := g.Check(context.Background(), s, Route{RequiresAdmin: true})
	require.NoError(t, err)
	assert.True(t, d.Allow)
}

func TestGuard_ContextEndsWhileChecking(t *testing.T) {
	g := NewGuard("", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Check(ctx, New(adminsOnly(), nil), Route{RequiresAdmin: true})
	require.ErrorIs(t, err, context.Canceled)
}
