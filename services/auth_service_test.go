package services

import (
	"context"
	"errors"
	"testing"

	"restay/constants"
	apperrors "restay/errors"

	"github.com/stretchr/testify/require"
)

type memorySessionStore struct {
	session *Session
}

func (s *memorySessionStore) Load(ctx context.Context) (*Session, error) {
	return s.session, nil
}

func (s *memorySessionStore) Save(ctx context.Context, session *Session) error {
	s.session = session
	return nil
}

func (s *memorySessionStore) Clear(ctx context.Context) error {
	s.session = nil
	return nil
}

func newTestAuthManager(t *testing.T, store SessionStore, verifier TokenVerifier) *AuthManager {
	t.Helper()
	users := NewUserService(UserServiceOptions{DB: testDB(t)})
	return NewAuthManager(AuthManagerOptions{
		Users:    users,
		Sessions: store,
		Verifier: verifier,
	})
}

func TestLoginWithFallbackAccount(t *testing.T) {
	store := &memorySessionStore{}
	mgr := newTestAuthManager(t, store, nil)
	ctx := context.Background()

	session, err := mgr.Login(ctx, "admin@restay.com", "password")
	require.NoError(t, err)
	require.Equal(t, constants.RoleAdmin, session.Role)
	require.Equal(t, StateAuthenticated, mgr.State())
	require.NotNil(t, store.session)
	require.Equal(t, "admin@restay.com", store.session.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	mgr := newTestAuthManager(t, &memorySessionStore{}, nil)

	_, err := mgr.Login(context.Background(), "admin@restay.com", "wrong")
	require.Error(t, err)
	require.Equal(t, apperrors.ErrCodeInvalidCredentials, apperrors.CodeOf(err))
	require.Equal(t, StateUnauthenticated, mgr.State())
	require.Nil(t, mgr.Current())
}

func TestLoginUnknownAccount(t *testing.T) {
	mgr := newTestAuthManager(t, &memorySessionStore{}, nil)

	_, err := mgr.Login(context.Background(), "stranger@restay.com", "password")
	require.Error(t, err)
	require.Equal(t, apperrors.ErrCodeInvalidCredentials, apperrors.CodeOf(err))
}

func TestLoginStoreAccountWithHash(t *testing.T) {
	store := &memorySessionStore{}
	mgr := newTestAuthManager(t, store, nil)
	ctx := context.Background()

	user := sampleUser("priya@restay.com")
	require.NoError(t, mgr.users.Create(ctx, user, "her-own-password"))

	// The hashed account rejects the shared default.
	_, err := mgr.Login(ctx, "priya@restay.com", "password")
	require.Error(t, err)
	require.Equal(t, apperrors.ErrCodeInvalidCredentials, apperrors.CodeOf(err))

	session, err := mgr.Login(ctx, "priya@restay.com", "her-own-password")
	require.NoError(t, err)
	require.Equal(t, constants.RoleManager, session.Role)

	// Login stamps lastLogin on the stored account.
	got, err := mgr.users.Get(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, got.LastLogin.IsZero())
}

func TestLoginInactiveAccount(t *testing.T) {
	mgr := newTestAuthManager(t, &memorySessionStore{}, nil)
	ctx := context.Background()

	user := sampleUser("gone@restay.com")
	user.Status = constants.UserStatusInactive
	require.NoError(t, mgr.users.Create(ctx, user, ""))

	_, err := mgr.Login(ctx, "gone@restay.com", "password")
	require.Error(t, err)
	require.Equal(t, apperrors.ErrCodeInvalidCredentials, apperrors.CodeOf(err))
}

func TestLogoutClearsSlot(t *testing.T) {
	store := &memorySessionStore{}
	mgr := newTestAuthManager(t, store, nil)
	ctx := context.Background()

	_, err := mgr.Login(ctx, "manager@restay.com", "password")
	require.NoError(t, err)
	require.NotNil(t, store.session)

	require.NoError(t, mgr.Logout(ctx))
	require.Equal(t, StateUnauthenticated, mgr.State())
	require.Nil(t, mgr.Current())
	require.Nil(t, store.session)
}

func TestRestorePersistedSession(t *testing.T) {
	store := &memorySessionStore{session: &Session{
		UserID: 2,
		Email:  "manager@restay.com",
		Name:   "Property Manager",
		Role:   constants.RoleManager,
	}}
	mgr := newTestAuthManager(t, store, nil)

	require.NoError(t, mgr.Restore(context.Background()))
	require.Equal(t, StateAuthenticated, mgr.State())
	require.Equal(t, "manager@restay.com", mgr.Current().Email)
}

func TestRestoreEmptySlot(t *testing.T) {
	mgr := newTestAuthManager(t, &memorySessionStore{}, nil)

	require.NoError(t, mgr.Restore(context.Background()))
	require.Equal(t, StateUnauthenticated, mgr.State())
}

func TestGoogleLoginResolvesProfile(t *testing.T) {
	verifier := func(ctx context.Context, tokenID string) (string, string, error) {
		return "priya@restay.com", "Priya", nil
	}
	mgr := newTestAuthManager(t, &memorySessionStore{}, verifier)
	ctx := context.Background()

	require.NoError(t, mgr.users.Create(ctx, sampleUser("priya@restay.com"), ""))

	session, err := mgr.LoginWithGoogle(ctx, "provider-token")
	require.NoError(t, err)
	require.Equal(t, "priya@restay.com", session.Email)
	require.Equal(t, StateAuthenticated, mgr.State())
}

func TestGoogleLoginWithoutProfile(t *testing.T) {
	verifier := func(ctx context.Context, tokenID string) (string, string, error) {
		return "nobody@restay.com", "Nobody", nil
	}
	mgr := newTestAuthManager(t, &memorySessionStore{}, verifier)

	_, err := mgr.LoginWithGoogle(context.Background(), "provider-token")
	require.Error(t, err)
	require.Equal(t, apperrors.ErrCodeProfileNotFound, apperrors.CodeOf(err))
	require.Equal(t, StateUnauthenticated, mgr.State())
}

func TestGoogleLoginRejectedToken(t *testing.T) {
	verifier := func(ctx context.Context, tokenID string) (string, string, error) {
		return "", "", errors.New("token expired")
	}
	mgr := newTestAuthManager(t, &memorySessionStore{}, verifier)

	_, err := mgr.LoginWithGoogle(context.Background(), "stale-token")
	require.Error(t, err)
	require.Equal(t, apperrors.ErrCodeInvalidToken, apperrors.CodeOf(err))
}
