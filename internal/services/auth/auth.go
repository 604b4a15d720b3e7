// Package auth provides authentication services
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/brandontaylor1/quibotanicals/internal/config"
	"github.com/brandontaylor1/quibotanicals/internal/kv"
	"github.com/brandontaylor1/quibotanicals/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrStorageUnavailable = errors.New("session storage unavailable")
	ErrInvalidToken       = errors.New("invalid token")
)

// Persisted session record: identity and expiry are stored under
// separate keys and must be written and deleted together. A record with
// one key present and the other absent is treated as no valid session.
const (
	userKey    = "adminUser"
	sessionKey = "adminSession"
)

type persistedUser struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

type persistedWindow struct {
	Expires int64 `json:"expires"` // Unix millis
}

// State describes what the service knows about the current session.
// StateUnknown is reported until Initialize completes so callers can
// show a loading view instead of flashing an unauthenticated one.
type State int

const (
	StateUnknown State = iota
	StateNone
	StateActive
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// Service manages the single admin session's lifecycle. Concurrent
// login/logout within one process resolve last-write-wins; with one
// human operating the admin surface this is an accepted race.
type Service struct {
	cfg      *config.Config
	store    kv.Store
	verifier CredentialVerifier
	now      func() time.Time

	mu          sync.RWMutex
	session     *models.Session
	initialized bool
}

// NewService creates a new auth service. Initialize must be called once
// before the session state is trusted.
func NewService(cfg *config.Config, store kv.Store, verifier CredentialVerifier) *Service {
	return &Service{
		cfg:      cfg,
		store:    store,
		verifier: verifier,
		now:      time.Now,
	}
}

// Initialize loads any persisted session record. An expired or
// half-present record is deleted and treated as no session; expiry is
// routine, not an error. Storage failures are reported as
// ErrStorageUnavailable but the service still becomes ready with an
// in-memory-only (empty) state.
func (s *Service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.initialized = true }()

	rawUser, okUser, err := s.store.Get(ctx, userKey)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	rawWindow, okWindow, err := s.store.Get(ctx, sessionKey)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if !okUser || !okWindow {
		if okUser || okWindow {
			s.deleteRecord(ctx)
		}
		return nil
	}

	var user persistedUser
	var window persistedWindow
	if json.Unmarshal([]byte(rawUser), &user) != nil ||
		json.Unmarshal([]byte(rawWindow), &window) != nil {
		s.deleteRecord(ctx)
		return nil
	}

	expiresAt := time.UnixMilli(window.Expires).UTC()
	if !s.now().Before(expiresAt) {
		s.deleteRecord(ctx)
		return nil
	}

	s.session = &models.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		IssuedAt:  expiresAt.Add(-s.cfg.SessionDuration),
		ExpiresAt: expiresAt,
	}
	return nil
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	Session *models.Session
	Token   string
	Expires time.Time
}

// Login verifies the credential pair and starts a new admin session.
// Invalid credentials are an expected outcome reported as
// ErrInvalidCredentials with no state change. When the durable store
// cannot be written, the session is still active in memory and the
// result is returned together with an ErrStorageUnavailable error.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	role, err := s.verifier.Verify(email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}
	if role != models.RoleAdmin {
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	session := models.NewSession(demoAdminID, email, s.cfg.AdminName, now, s.cfg.SessionDuration)

	token, err := s.createToken(session)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	result := &LoginResult{Session: session, Token: token, Expires: session.ExpiresAt}

	if err := s.persistRecord(ctx, session); err != nil {
		return result, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return result, nil
}

// Logout clears the active session and deletes the persisted record.
// Idempotent: logging out with no session is a no-op.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	if err := s.deleteRecord(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Current returns the active session or nil. Validity is re-derived
// against the expiry on every call; an expired session is cleared from
// memory and the persisted record is removed.
func (s *Service) Current() *models.Session {
	s.mu.RLock()
	session := s.session
	s.mu.RUnlock()

	if session == nil {
		return nil
	}
	if !session.ExpiredAt(s.now()) {
		return session
	}

	s.mu.Lock()
	if s.session == session {
		s.session = nil
	}
	s.mu.Unlock()

	s.deleteRecord(context.Background())
	return nil
}

// IsAdmin returns true iff an unexpired admin session is active
func (s *Service) IsAdmin() bool {
	session := s.Current()
	return session != nil && session.IsAdmin()
}

// State reports the session lifecycle state
func (s *Service) State() State {
	s.mu.RLock()
	initialized := s.initialized
	s.mu.RUnlock()

	if !initialized {
		return StateUnknown
	}
	if s.Current() != nil {
		return StateActive
	}
	return StateNone
}

// ValidateToken verifies a JWT session cookie and returns the active
// session it belongs to. A token that outlived the in-process session
// (logout, expiry) is rejected.
func (s *Service) ValidateToken(tokenString string) (*models.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	session := s.Current()
	if session == nil || session.Email != email {
		return nil, ErrInvalidToken
	}
	return session, nil
}

func (s *Service) persistRecord(ctx context.Context, session *models.Session) error {
	user, err := json.Marshal(persistedUser{
		ID:    session.UserID,
		Email: session.Email,
		Name:  session.Name,
		Role:  session.Role,
	})
	if err != nil {
		return err
	}
	window, err := json.Marshal(persistedWindow{Expires: session.ExpiresAt.UnixMilli()})
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, userKey, string(user)); err != nil {
		return err
	}
	return s.store.Set(ctx, sessionKey, string(window))
}

func (s *Service) deleteRecord(ctx context.Context) error {
	errUser := s.store.Delete(ctx, userKey)
	errWindow := s.store.Delete(ctx, sessionKey)
	if errUser != nil {
		return errUser
	}
	return errWindow
}

func (s *Service) createToken(session *models.Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":   session.UserID,
		"email": session.Email,
		"name":  session.Name,
		"role":  string(session.Role),
		"exp":   session.ExpiresAt.Unix(),
		"iat":   session.IssuedAt.Unix(),
		"jti":   generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func generateJTI() string {
	b := make([]byte, 16)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
