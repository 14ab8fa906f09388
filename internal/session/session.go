// Package session holds the resolved auth state of one console visitor and
// the route guard evaluated against it.
package session

import (
	"alcyxob/fitness-admin/internal/auth"
	"context"
	"log"
	"sync"
)

// State is the resolution phase of a Session.
type State int

const (
	StateChecking State = iota
	StateReady
)

func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "checking"
}

// Snapshot is the auth state at one point in time.
type Snapshot struct {
	State           State
	Identity        *auth.Identity
	IsAuthenticated bool
	IsAdmin         bool
}

// AdminVerifier decides whether an identity may use the console.
type AdminVerifier interface {
	VerifyAdminAccess(ctx context.Context, identity *auth.Identity) bool
}

// Observer reports the current identity. Subscribe calls fn once with the
// current identity (nil when anonymous) and again whenever it changes.
type Observer interface {
	Subscribe(ctx context.Context, fn func(*auth.Identity)) (unsubscribe func())
}

// Session moves from checking to ready once per identity. A different
// identity starts a new checking cycle.
type Session struct {
	verifier AdminVerifier
	signOut  func(ctx context.Context) error

	mu         sync.Mutex
	snap       Snapshot
	resolved   bool
	ready      chan struct{}
	generation uint64
}

// New returns a Session in the checking state. signOut ends the credential
// of an authenticated non-admin and may be nil.
func New(verifier AdminVerifier, signOut func(ctx context.Context) error) *Session {
	return &Session{
		verifier: verifier,
		signOut:  signOut,
		ready:    make(chan struct{}),
	}
}

// Attach subscribes the session to obs. Every identity obs reports is resolved.
func (s *Session) Attach(ctx context.Context, obs Observer) (detach func()) {
	return obs.Subscribe(ctx, func(identity *auth.Identity) {
		s.Resolve(ctx, identity)
	})
}

// Resolve checks identity's role and moves the session to ready. Resolving
// the identity the session is already ready for is a no-op.
func (s *Session) Resolve(ctx context.Context, identity *auth.Identity) {
	s.mu.Lock()
	if s.resolved && sameIdentity(s.snap.Identity, identity) {
		s.mu.Unlock()
		return
	}
	if s.snap.State == StateReady {
		s.ready = make(chan struct{})
	}
	s.generation++
	gen := s.generation
	s.resolved = true
	s.snap = Snapshot{State: StateChecking, Identity: identity}
	s.mu.Unlock()

	isAdmin := identity != nil && s.verifier.VerifyAdminAccess(ctx, identity)
	authenticated := isAdmin
	if identity != nil && !isAdmin {
		log.Printf("INFO: Signing out non-admin identity %s", identity.Email)
		if s.signOut != nil {
			if err := s.signOut(ctx); err != nil {
				log.Printf("WARN: Failed to sign out non-admin identity %s: %v", identity.Email, err)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	s.snap = Snapshot{
		State:           StateReady,
		Identity:        identity,
		IsAuthenticated: authenticated,
		IsAdmin:         isAdmin,
	}
	close(s.ready)
}

// Snapshot returns the current state without waiting.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Wait blocks until the session is ready or ctx is done.
func (s *Session) Wait(ctx context.Context) (Snapshot, error) {
	for {
		s.mu.Lock()
		if s.snap.State == StateReady {
			snap := s.snap
			s.mu.Unlock()
			return snap, nil
		}
		ready := s.ready
		s.mu.Unlock()

		select {
		case <-ready:
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		}
	}
}

func sameIdentity(a, b *auth.Identity) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.UID == b.UID
}
