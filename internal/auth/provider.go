// Package auth is the identity provider of the console: it owns credentials
// and issues, verifies and revokes session tokens.
package auth

import (
	"alcyxob/fitness-admin/internal/domain"
	"alcyxob/fitness-admin/internal/repository"
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email address is already in use")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrTokenRevoked       = errors.New("session token has been revoked")
)

const (
	minPasswordLength = 6
	issuer            = "fitness-admin"
)

// Identity is an authenticated principal.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// claims is the JWT payload of a session token.
type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Provider keeps credentials and revocations in the document store.
type Provider struct {
	credentials *repository.Manager[domain.Credential]
	revoked     repository.Collection
	secret      []byte
	expiration  time.Duration
	now         func() time.Time
}

// NewProvider panics on an empty secret, there is no safe default for it.
func NewProvider(store repository.Store, secret string, expiration time.Duration) *Provider {
	if secret == "" {
		panic("JWT secret cannot be empty")
	}
	if expiration <= 0 {
		expiration = time.Hour
	}
	return &Provider{
		credentials: repository.NewManager(store, repository.Schema[domain.Credential]{
			Collection: domain.CredentialCollection,
			Decode:     domain.CredentialFromDocument,
			Encode:     domain.Credential.ToDocument,
			OrderBy:    "createdAt",
		}),
		revoked:    store.Collection(domain.RevokedTokenCollection),
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// CreateUser registers a new credential under a fresh uid.
func (p *Provider) CreateUser(ctx context.Context, email, password string) (*Identity, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	existing, err := p.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	uid := uuid.NewString()
	cred := domain.Credential{ID: uid, Email: email, PasswordHash: string(hash)}
	if err := p.credentials.CreateWithID(ctx, uid, cred); err != nil {
		return nil, err
	}
	log.Printf("INFO: Created identity %s for %s", uid, email)
	return &Identity{UID: uid, Email: email}, nil
}

// DeleteUser removes the credential of uid. Used to roll back a registration
// whose role document could not be written.
func (p *Provider) DeleteUser(ctx context.Context, uid string) error {
	return p.credentials.Delete(ctx, uid)
}

// SignIn checks the password and issues a session token.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*Identity, string, error) {
	cred, err := p.findByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", err
	}
	if cred == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	identity := &Identity{UID: cred.ID, Email: cred.Email}
	token, err := p.issue(identity)
	if err != nil {
		return nil, "", err
	}
	return identity, token, nil
}

// Verify returns the identity a valid, unrevoked token was issued to.
func (p *Provider) Verify(ctx context.Context, token string) (*Identity, error) {
	c, err := p.parse(token)
	if err != nil {
		return nil, err
	}

	_, err = p.revoked.Get(ctx, c.ID)
	switch {
	case err == nil:
		return nil, ErrTokenRevoked
	case !errors.Is(err, repository.ErrNotFound):
		log.Printf("ERROR: Failed to check revocation of token %s: %v", c.ID, err)
		return nil, err
	}
	return &Identity{UID: c.Subject, Email: c.Email}, nil
}

// SignOut revokes token until it would have expired anyway.
func (p *Provider) SignOut(ctx context.Context, token string) error {
	c, err := p.parse(token)
	if err != nil {
		// An unusable token cannot start a session, so there is nothing to end.
		return nil
	}
	revoked := domain.RevokedToken{ID: c.ID, UserID: c.Subject, ExpiresAt: c.ExpiresAt.Time}
	if err := p.revoked.Set(ctx, c.ID, revoked.ToDocument()); err != nil {
		log.Printf("ERROR: Failed to revoke token for user '%s': %v", c.Subject, err)
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (p *Provider) findByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	creds, err := p.credentials.List(ctx, []repository.Filter{repository.Eq("email", email)}, false, 1)
	if err != nil {
		return nil, err
	}
	if len(creds) == 0 {
		return nil, nil
	}
	return &creds[0], nil
}

func (p *Provider) issue(identity *Identity) (string, error) {
	now := p.now()
	c := &claims{
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.UID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiration)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (p *Provider) parse(token string) (*claims, error) {
	c := &claims{}
	parsed, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid || c.Subject == "" || c.ID == "" || c.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	return c, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
