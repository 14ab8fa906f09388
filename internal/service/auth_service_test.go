package service

import (
	"alcyxob/fitness-admin/internal/auth"
	"alcyxob/fitness-admin/internal/domain"
	"alcyxob/fitness-admin/internal/repository"
	"alcyxob/fitness-admin/internal/repository/memory"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type authFixture struct {
	store    *memory.Store
	provider *auth.Provider
	users    *repository.UserRepository
	settings *repository.AdminSettingsRepository
	svc      AuthService
}

func newAuthFixture() *authFixture {
	store := memory.NewStore()
	f := &authFixture{
		store:    store,
		provider: auth.NewProvider(store, "test-secret", time.Hour),
		users:    repository.NewUserRepository(store),
		settings: repository.NewAdminSettingsRepository(store),
	}
	f.svc = NewAuthService(f.provider, f.users, f.settings)
	return f
}

func TestRegisterUser_CreatesRoleDocument(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	res := f.svc.RegisterUser(ctx, "coach@example.com", "secret1", "")
	require.True(t, res.Success)
	require.Empty(t, res.Error)
	require.NotNil(t, res.User)
	require.Equal(t, domain.RoleUser, res.User.Role)

	stored, err := f.users.GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	require.Equal(t, "coach@example.com", stored.Email)
}

func TestRegisterUser_FailuresAreReported(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	require.True(t, f.svc.RegisterUser(ctx, "a@example.com", "secret1", domain.RoleAdmin).Success)

	res := f.svc.RegisterUser(ctx, "a@example.com", "secret1", domain.RoleUser)
	require.False(t, res.Success)
	require.Equal(t, ErrUserAlreadyExists.Error(), res.Error)

	res = f.svc.RegisterUser(ctx, "b@example.com", "x", domain.RoleUser)
	require.False(t, res.Success)
	require.NotEmpty(t, res.Error)

	res = f.svc.RegisterUser(ctx, "c@example.com", "secret1", domain.Role("owner"))
	require.False(t, res.Success)
}

type failingProvider struct {
	IdentityProvider
	deleted string
}

func (p *failingProvider) CreateUser(context.Context, string, string) (*auth.Identity, error) {
	return &auth.Identity{UID: "uid-1", Email: "a@example.com"}, nil
}

func (p *failingProvider) DeleteUser(_ context.Context, uid string) error {
	p.deleted = uid
	return nil
}

func TestRegisterUser_RollsBackCredentialWhenRoleWriteFails(t *testing.T) {
	store := memory.NewStore()
	provider := &failingProvider{}
	svc := NewAuthService(provider, repository.NewUserRepository(store), repository.NewAdminSettingsRepository(store))
	store.FailWith(repository.ErrStoreUnavailable)

	res := svc.RegisterUser(context.Background(), "a@example.com", "secret1", domain.RoleUser)
	require.False(t, res.Success)
	require.Equal(t, "uid-1", provider.deleted)
}

func TestVerifyAdminAccess(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	require.False(t, f.svc.VerifyAdminAccess(ctx, nil))
	require.False(t, f.svc.VerifyAdminAccess(ctx, &auth.Identity{UID: "ghost"}))

	admin := f.svc.RegisterUser(ctx, "admin@example.com", "secret1", domain.RoleAdmin)
	member := f.svc.RegisterUser(ctx, "user@example.com", "secret1", domain.RoleUser)
	require.True(t, f.svc.VerifyAdminAccess(ctx, &auth.Identity{UID: admin.User.ID}))
	require.False(t, f.svc.VerifyAdminAccess(ctx, &auth.Identity{UID: member.User.ID}))

	f.store.FailWith(errors.New("down"))
	require.False(t, f.svc.VerifyAdminAccess(ctx, &auth.Identity{UID: admin.User.ID}))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	f.svc.RegisterUser(ctx, "admin@example.com", "secret1", domain.RoleAdmin)
	f.svc.RegisterUser(ctx, "user@example.com", "secret1", domain.RoleUser)

	res, err := f.svc.Login(ctx, "admin@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.True(t, res.User.IsAdmin())

	identity, err := f.svc.Verify(ctx, res.Token)
	require.NoError(t, err)
	require.Equal(t, res.User.ID, identity.UID)

	_, err = f.svc.Login(ctx, "admin@example.com", "wrong-pass")
	require.ErrorIs(t, err, ErrAuthenticationFailed)

	_, err = f.svc.Login(ctx, "user@example.com", "secret1")
	require.ErrorIs(t, err, ErrNotAdmin)
	require.Equal(t, 1, f.store.Len(domain.RevokedTokenCollection))

	require.NoError(t, f.svc.Logout(ctx, res.Token))
	_, err = f.svc.Verify(ctx, res.Token)
	require.ErrorIs(t, err, auth.ErrTokenRevoked)
}

func TestSetupAdmin_OnlyWhileNoAdminExists(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	res := f.svc.SetupAdmin(ctx, "first@example.com", "secret1")
	require.True(t, res.Success)
	require.True(t, res.User.IsAdmin())

	settings, err := f.settings.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"first@example.com"}, settings.AdminEmailList)

	res = f.svc.SetupAdmin(ctx, "second@example.com", "secret1")
	require.False(t, res.Success)
	require.Equal(t, ErrAdminAlreadyExists.Error(), res.Error)
}

func TestSignUp_HonoursRegistrationSetting(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	require.True(t, f.svc.SignUp(ctx, "a@example.com", "secret1").Success)

	_, err := f.settings.UpdateFeatureSettings(ctx, map[string]any{"enableUserRegistration": false})
	require.NoError(t, err)
	res := f.svc.SignUp(ctx, "b@example.com", "secret1")
	require.False(t, res.Success)
	require.Equal(t, ErrRegistrationClosed.Error(), res.Error)
}
