package service

import (
	"alcyxob/fitness-admin/internal/auth"
	"alcyxob/fitness-admin/internal/domain"
	"alcyxob/fitness-admin/internal/repository"
	"context"
	"errors"
	"log"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrNotAdmin             = errors.New("access denied: admin privileges required")
	ErrAdminAlreadyExists   = errors.New("an admin account already exists")
	ErrRegistrationClosed   = errors.New("user registration is disabled")
)

// RegistrationResult reports the outcome of RegisterUser. Failures are carried
// in Error rather than returned.
type RegistrationResult struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// LoginResult is a signed-in admin session.
type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// IdentityProvider is the credential side of authentication.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password string) (*auth.Identity, error)
	DeleteUser(ctx context.Context, uid string) error
	SignIn(ctx context.Context, email, password string) (*auth.Identity, string, error)
	Verify(ctx context.Context, token string) (*auth.Identity, error)
	SignOut(ctx context.Context, token string) error
}

type AuthService interface {
	RegisterUser(ctx context.Context, email, password string, role domain.Role) RegistrationResult
	VerifyAdminAccess(ctx context.Context, identity *auth.Identity) bool
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (*auth.Identity, error)
	CurrentUser(ctx context.Context, identity *auth.Identity) (*domain.User, error)
	SetupAdmin(ctx context.Context, email, password string) RegistrationResult
	SignUp(ctx context.Context, email, password string) RegistrationResult
}

// authService implements the AuthService interface.
type authService struct {
	provider IdentityProvider
	users    *repository.UserRepository
	settings *repository.AdminSettingsRepository
}

func NewAuthService(provider IdentityProvider, users *repository.UserRepository, settings *repository.AdminSettingsRepository) AuthService {
	return &authService{provider: provider, users: users, settings: settings}
}

// RegisterUser creates the credential and the role document keyed by its uid.
func (s *authService) RegisterUser(ctx context.Context, email, password string, role domain.Role) RegistrationResult {
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return RegistrationResult{Error: "unknown role: " + string(role)}
	}

	identity, err := s.provider.CreateUser(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			err = ErrUserAlreadyExists
		}
		log.Printf("ERROR: Failed to register user %s: %v", email, err)
		return RegistrationResult{Error: err.Error()}
	}

	user := domain.NewUser(identity.UID, identity.Email, role)
	if err := s.users.CreateWithID(ctx, identity.UID, user); err != nil {
		log.Printf("ERROR: Failed to write role document for %s: %v", identity.UID, err)
		if delErr := s.provider.DeleteUser(ctx, identity.UID); delErr != nil {
			log.Printf("WARN: Failed to roll back credential %s: %v", identity.UID, delErr)
		}
		return RegistrationResult{Error: err.Error()}
	}

	stored, err := s.users.GetByID(ctx, identity.UID)
	if err != nil || stored == nil {
		stored = &user
	}
	return RegistrationResult{Success: true, User: stored}
}

// VerifyAdminAccess is false for a nil identity, a missing role document and
// any lookup failure.
func (s *authService) VerifyAdminAccess(ctx context.Context, identity *auth.Identity) bool {
	if identity == nil {
		return false
	}
	user, err := s.users.GetByID(ctx, identity.UID)
	if err != nil {
		log.Printf("ERROR: Failed to verify admin access for %s: %v", identity.Email, err)
		return false
	}
	return user != nil && user.IsAdmin()
}

// Login signs in and keeps the session only for admins.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	identity, token, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}

	if !s.VerifyAdminAccess(ctx, identity) {
		if err := s.provider.SignOut(ctx, token); err != nil {
			log.Printf("WARN: Failed to sign out non-admin %s: %v", identity.Email, err)
		}
		return nil, ErrNotAdmin
	}

	user, err := s.users.GetByID(ctx, identity.UID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.provider.SignOut(ctx, token)
}

func (s *authService) Verify(ctx context.Context, token string) (*auth.Identity, error) {
	return s.provider.Verify(ctx, token)
}

// CurrentUser returns the role document of identity, or nil if it has none.
func (s *authService) CurrentUser(ctx context.Context, identity *auth.Identity) (*domain.User, error) {
	if identity == nil {
		return nil, nil
	}
	return s.users.GetByID(ctx, identity.UID)
}

// SetupAdmin registers the first admin. It refuses once any admin exists.
// The new address is also put on the admin email list.
func (s *authService) SetupAdmin(ctx context.Context, email, password string) RegistrationResult {
	exists, err := s.users.HasAdmin(ctx)
	if err != nil {
		return RegistrationResult{Error: err.Error()}
	}
	if exists {
		return RegistrationResult{Error: ErrAdminAlreadyExists.Error()}
	}

	result := s.RegisterUser(ctx, email, password, domain.RoleAdmin)
	if !result.Success {
		return result
	}
	if _, err := s.settings.AddAdminEmail(ctx, result.User.Email); err != nil {
		log.Printf("WARN: Failed to add %s to admin email list: %v", result.User.Email, err)
	}
	log.Printf("INFO: Admin account %s set up", result.User.Email)
	return result
}

// SignUp is self-service registration of a plain user. It honours the
// enableUserRegistration feature setting.
func (s *authService) SignUp(ctx context.Context, email, password string) RegistrationResult {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return RegistrationResult{Error: err.Error()}
	}
	if open, ok := settings.FeatureModeSetting["enableUserRegistration"].(bool); ok && !open {
		return RegistrationResult{Error: ErrRegistrationClosed.Error()}
	}
	return s.RegisterUser(ctx, email, password, domain.RoleUser)
}
