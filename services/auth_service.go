package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"restay/constants"
	apperrors "restay/errors"
	"restay/models"
	"restay/services/logger"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

// AuthState is the session lifecycle phase.
type AuthState string

const (
	StateUnauthenticated AuthState = "unauthenticated"
	StateLoading         AuthState = "loading"
	StateAuthenticated   AuthState = "authenticated"
)

// defaultPassword is the shared fallback credential for accounts provisioned
// without a password hash and for the built-in demo accounts. Every such
// account shares it, so any one holder can log in as any other. Set real
// passwords on production accounts.
const defaultPassword = "password"

// sessionKey is the fixed slot holding the current session. One slot means
// one active session per deployment; a new login overwrites the previous
// session.
const sessionKey = "restay:session:current"

// Session is the persisted identity snapshot restored on startup.
type Session struct {
	UserID    uint      `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	LoginedAt time.Time `json:"loginedAt"`
}

// SessionStore persists the session slot across restarts.
type SessionStore interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Clear(ctx context.Context) error
}

// RedisSessionStore keeps the session slot in redis under a fixed key.
type RedisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

func (s *RedisSessionStore) Load(ctx context.Context) (*Session, error) {
	data, err := s.rdb.Get(ctx, sessionKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey, data, s.ttl).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, sessionKey).Err()
}

// TokenVerifier exchanges an identity-provider token for the email it
// asserts. Injected so tests can stub the provider round trip.
type TokenVerifier func(ctx context.Context, tokenID string) (email string, name string, err error)

// GoogleTokenVerifier validates a Google ID token against the configured
// client id.
func GoogleTokenVerifier(clientID string) TokenVerifier {
	return func(ctx context.Context, tokenID string) (string, string, error) {
		payload, err := idtoken.Validate(ctx, tokenID, clientID)
		if err != nil {
			return "", "", err
		}
		email, _ := payload.Claims["email"].(string)
		name, _ := payload.Claims["name"].(string)
		return email, name, nil
	}
}

// AuthManager owns the session lifecycle. It moves between unauthenticated,
// loading and authenticated; the loading phase covers startup restore and
// in-flight logins so the UI can hold its first paint.
type AuthManager struct {
	users    *UserService
	sessions SessionStore
	verifier TokenVerifier
	logger   logger.Logger

	mu      sync.RWMutex
	state   AuthState
	current *Session
}

type AuthManagerOptions struct {
	Users    *UserService
	Sessions SessionStore
	Verifier TokenVerifier
	Logger   logger.Logger
}

func NewAuthManager(opts AuthManagerOptions) *AuthManager {
	l := opts.Logger
	if l == nil {
		l = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &AuthManager{
		users:    opts.Users,
		sessions: opts.Sessions,
		verifier: opts.Verifier,
		logger:   l,
		state:    StateUnauthenticated,
	}
}

// fallbackUsers are the built-in demo accounts used when the store holds no
// matching account. They all share the default password.
func fallbackUsers() []models.User {
	return []models.User{
		{ID: 1, Name: "Admin User", Email: "admin@restay.com", Role: constants.RoleAdmin, Status: constants.UserStatusActive},
		{ID: 2, Name: "Property Manager", Email: "manager@restay.com", Role: constants.RoleManager, Status: constants.UserStatusActive},
		{ID: 3, Name: "Accountant", Email: "accountant@restay.com", Role: constants.RoleAccountant, Status: constants.UserStatusActive},
	}
}

// State returns the current lifecycle phase.
func (m *AuthManager) State() AuthState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Current returns the active session, nil when unauthenticated.
func (m *AuthManager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	session := *m.current
	return &session
}

func (m *AuthManager) setState(state AuthState, session *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.current = session
}

// Restore loads the persisted session slot on startup. The manager sits in
// the loading phase until the slot is resolved either way.
func (m *AuthManager) Restore(ctx context.Context) error {
	m.setState(StateLoading, nil)

	if m.sessions == nil {
		m.setState(StateUnauthenticated, nil)
		return nil
	}

	session, err := m.sessions.Load(ctx)
	if err != nil {
		m.logger.Error("session restore failed: %v", err)
		m.setState(StateUnauthenticated, nil)
		return err
	}
	if session == nil {
		m.setState(StateUnauthenticated, nil)
		return nil
	}

	m.logger.Info("restored session for %s", session.Email)
	m.setState(StateAuthenticated, session)
	return nil
}

// Login authenticates a credential pair. Accounts come from the store first
// and fall back to the built-in demo accounts; an account without a password
// hash accepts the shared default credential.
func (m *AuthManager) Login(ctx context.Context, email, password string) (*Session, error) {
	m.setState(StateLoading, nil)

	email = strings.ToLower(strings.TrimSpace(email))
	user, err := m.resolveAccount(ctx, email)
	if err != nil {
		m.setState(StateUnauthenticated, nil)
		return nil, err
	}

	if !m.checkPassword(user, password) {
		m.setState(StateUnauthenticated, nil)
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidCredentials, fmt.Sprintf("invalid credentials for %s", email), nil)
	}

	if user.Status != constants.UserStatusActive {
		m.setState(StateUnauthenticated, nil)
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidCredentials, fmt.Sprintf("account %s is inactive", email), nil)
	}

	return m.establish(ctx, user)
}

// LoginWithGoogle exchanges an identity-provider token for a session. The
// asserted email must map to an existing account; otherwise the exchange
// fails with a profile-not-found error.
func (m *AuthManager) LoginWithGoogle(ctx context.Context, tokenID string) (*Session, error) {
	if m.verifier == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidOperation, "identity-provider login is not configured", nil)
	}

	m.setState(StateLoading, nil)

	email, _, err := m.verifier(ctx, tokenID)
	if err != nil {
		m.setState(StateUnauthenticated, nil)
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "identity token rejected", err)
	}

	user, err := m.resolveAccount(ctx, email)
	if err != nil {
		m.setState(StateUnauthenticated, nil)
		return nil, apperrors.NewAppError(apperrors.ErrCodeProfileNotFound, fmt.Sprintf("no profile for %s", email), err)
	}

	return m.establish(ctx, user)
}

// Logout clears the in-memory session and the persisted slot.
func (m *AuthManager) Logout(ctx context.Context) error {
	m.setState(StateUnauthenticated, nil)
	if m.sessions == nil {
		return nil
	}
	if err := m.sessions.Clear(ctx); err != nil {
		m.logger.Error("failed to clear session slot: %v", err)
		return err
	}
	return nil
}

func (m *AuthManager) establish(ctx context.Context, user *models.User) (*Session, error) {
	session := &Session{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		LoginedAt: time.Now(),
	}

	if m.sessions != nil {
		if err := m.sessions.Save(ctx, session); err != nil {
			m.logger.Error("failed to persist session: %v", err)
		}
	}
	if m.users != nil {
		if err := m.users.TouchLastLogin(ctx, user.ID); err != nil {
			m.logger.Error("failed to stamp last login: %v", err)
		}
	}

	m.logger.Info("authenticated %s (%s)", user.Email, user.Role)
	m.setState(StateAuthenticated, session)
	return session, nil
}

// resolveAccount looks up an account in the store, then in the built-in
// demo accounts.
func (m *AuthManager) resolveAccount(ctx context.Context, email string) (*models.User, error) {
	if m.users != nil {
		user, err := m.users.GetByEmail(ctx, email)
		if err == nil {
			return user, nil
		}
		if !apperrors.Is(err, apperrors.ErrCodeNotFound) {
			return nil, err
		}
	}

	for _, u := range fallbackUsers() {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidCredentials, fmt.Sprintf("invalid credentials for %s", email), nil)
}

// checkPassword verifies the supplied password against the account's hash,
// falling back to the shared default when no hash is set.
func (m *AuthManager) checkPassword(user *models.User, password string) bool {
	if user.Password == "" {
		return password == defaultPassword
	}
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}
