package session

import (
	"alcyxob/fitness-admin/internal/auth"
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verifierFunc func(ctx context.Context, identity *auth.Identity) bool

func (f verifierFunc) VerifyAdminAccess(ctx context.Context, identity *auth.Identity) bool {
	return f(ctx, identity)
}

func adminsOnly(uids ...string) verifierFunc {
	return func(_ context.Context, identity *auth.Identity) bool {
		for _, uid := range uids {
			if identity != nil && identity.UID == uid {
				return true
			}
		}
		return false
	}
}

var (
	admin  = &auth.Identity{UID: "admin-1", Email: "admin@example.com"}
	member = &auth.Identity{UID: "user-1", Email: "user@example.com"}
)

func TestSession_StartsChecking(t *testing.T) {
	s := New(adminsOnly(), nil)
	assert.Equal(t, StateChecking, s.Snapshot().State)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := s.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSession_ResolvesAdmin(t *testing.T) {
	s := New(adminsOnly("admin-1"), nil)
	s.Resolve(context.Background(), admin)

	snap, err := s.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateReady, snap.State)
	assert.True(t, snap.IsAdmin)
	assert.True(t, snap.IsAuthenticated)
}

func TestSession_SignsOutNonAdmin(t *testing.T) {
	var signedOut atomic.Int32
	s := New(adminsOnly("admin-1"), func(context.Context) error {
		signedOut.Add(1)
		return nil
	})
	s.Resolve(context.Background(), member)

	snap, err := s.Wait(context.Background())
	require.NoError(t, err)
	assert.False(t, snap.IsAdmin)
	assert.False(t, snap.IsAuthenticated)
	assert.Equal(t, int32(1), signedOut.Load())
}

func TestSession_ResolvesOncePerIdentity(t *testing.T) {
	var checks atomic.Int32
	s := New(verifierFunc(func(context.Context, *auth.Identity) bool {
		checks.Add(1)
		return true
	}), nil)

	s.Resolve(context.Background(), admin)
	s.Resolve(context.Background(), &auth.Identity{UID: admin.UID})
	assert.Equal(t, int32(1), checks.Load())

	s.Resolve(context.Background(), nil)
	snap, err := s.Wait(context.Background())
	require.NoError(t, err)
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.Identity)
}

func TestSession_WaitUnblocksOnResolve(t *testing.T) {
	s := New(adminsOnly("admin-1"), nil)

	done := make(chan Snapshot, 1)
	go func() {
		snap, _ := s.Wait(context.Background())
		done <- snap
	}()

	s.Resolve(context.Background(), admin)
	select {
	case snap := <-done:
		assert.True(t, snap.IsAdmin)
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Resolve")
	}
}

// pushObserver lets a test deliver identity changes after Attach.
type pushObserver struct {
	fn func(*auth.Identity)
}

func (o *pushObserver) Subscribe(_ context.Context, fn func(*auth.Identity)) func() {
	o.fn = fn
	fn(nil)
	return func() { o.fn = nil }
}

func TestSession_AttachFollowsIdentityChanges(t *testing.T) {
	obs := &pushObserver{}
	s := New(adminsOnly("admin-1"), nil)
	detach := s.Attach(context.Background(), obs)

	snap, err := s.Wait(context.Background())
	require.NoError(t, err)
	assert.False(t, snap.IsAdmin)

	obs.fn(admin)
	snap, err = s.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.IsAdmin)
	assert.Equal(t, admin.UID, snap.Identity.UID)

	detach()
	assert.Nil(t, obs.fn)
}

type tokenVerifierFunc func(ctx context.Context, token string) (*auth.Identity, error)

func (f tokenVerifierFunc) Verify(ctx context.Context, token string) (*auth.Identity, error) {
	return f(ctx, token)
}

func TestTokenObserver_FiresOnce(t *testing.T) {
	obs := TokenObserver{
		Verifier: tokenVerifierFunc(func(_ context.Context, token string) (*auth.Identity, error) {
			if token == "good" {
				return admin, nil
			}
			return nil, auth.ErrInvalidToken
		}),
		Token: "good",
	}

	var calls []*auth.Identity
	obs.Subscribe(context.Background(), func(id *auth.Identity) { calls = append(calls, id) })
	require.Len(t, calls, 1)
	assert.Equal(t, admin, calls[0])

	obs.Token = "bad"
	calls = nil
	obs.Subscribe(context.Background(), func(id *auth.Identity) { calls = append(calls, id) })
	require.Len(t, calls, 1)
	assert.Nil(t, calls[0])
}
