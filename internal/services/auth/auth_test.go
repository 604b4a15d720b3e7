package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/brandontaylor1/quibotanicals/internal/config"
	"github.com/brandontaylor1/quibotanicals/internal/kv"
	"github.com/brandontaylor1/quibotanicals/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "admin@quibotanicals.com"
	testPassword = "admin123"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:       "test-secret-key",
		SessionDuration: 24 * time.Hour,
		AdminEmail:      testEmail,
		AdminPassword:   testPassword,
		AdminName:       "QuiBotanicals Admin",
	}
}

// newTestService returns a service over an in-memory store with a
// controllable clock
func newTestService(t *testing.T) (*Service, *kv.MemoryStore, *time.Time) {
	t.Helper()

	store := kv.NewMemoryStore()
	verifier, err := NewStaticVerifier(testEmail, testPassword)
	require.NoError(t, err)

	svc := NewService(testConfig(), store, verifier)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return svc, store, &now
}

func storeHasRecord(t *testing.T, store kv.Store) bool {
	t.Helper()
	_, okUser, err := store.Get(context.Background(), userKey)
	require.NoError(t, err)
	_, okWindow, err := store.Get(context.Background(), sessionKey)
	require.NoError(t, err)
	require.Equal(t, okUser, okWindow, "session record keys must live and die together")
	return okUser
}

func TestStateUnknownBeforeInitialize(t *testing.T) {
	svc, _, _ := newTestService(t)
	assert.Equal(t, StateUnknown, svc.State())

	require.NoError(t, svc.Initialize(context.Background()))
	assert.Equal(t, StateNone, svc.State())
}

func TestLoginSuccess(t *testing.T) {
	svc, store, _ := newTestService(t)
	require.NoError(t, svc.Initialize(context.Background()))

	result, err := svc.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Token)

	session := svc.Current()
	require.NotNil(t, session)
	assert.Equal(t, models.RoleAdmin, session.Role)
	assert.Equal(t, testEmail, session.Email)
	assert.True(t, svc.IsAdmin())
	assert.Equal(t, StateActive, svc.State())
	assert.True(t, storeHasRecord(t, store))
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, store, _ := newTestService(t)
	require.NoError(t, svc.Initialize(context.Background()))

	tests := []struct {
		email    string
		password string
	}{
		{testEmail, "wrong"},
		{"someone@example.com", testPassword},
		{"ADMIN@QUIBOTANICALS.COM", testPassword}, // email match is case-sensitive
		{"", ""},
	}

	for _, tt := range tests {
		result, err := svc.Login(context.Background(), tt.email, tt.password)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	assert.Nil(t, svc.Current())
	assert.False(t, svc.IsAdmin())
	assert.False(t, storeHasRecord(t, store))
}

func TestLoginDoesNotDisturbExistingSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	require.NoError(t, svc.Initialize(context.Background()))

	_, err := svc.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	before := svc.Current()

	_, err = svc.Login(context.Background(), testEmail, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Same(t, before, svc.Current())
}

func TestInitializeRestoresPersistedSession(t *testing.T) {
	svc, store, now := newTestService(t)

	// Simulate a record written by an earlier process
	user, _ := json.Marshal(persistedUser{ID: "1", Email: testEmail, Name: "QuiBotanicals Admin", Role: models.RoleAdmin})
	window, _ := json.Marshal(persistedWindow{Expires: now.Add(12 * time.Hour).UnixMilli()})
	require.NoError(t, store.Set(context.Background(), userKey, string(user)))
	require.NoError(t, store.Set(context.Background(), sessionKey, string(window)))

	require.NoError(t, svc.Initialize(context.Background()))

	session := svc.Current()
	require.NotNil(t, session)
	assert.Equal(t, testEmail, session.Email)
	assert.True(t, svc.IsAdmin())
}

func TestInitializeRemovesExpiredSession(t *testing.T) {
	svc, store, now := newTestService(t)

	user, _ := json.Marshal(persistedUser{ID: "1", Email: testEmail, Name: "QuiBotanicals Admin", Role: models.RoleAdmin})
	window, _ := json.Marshal(persistedWindow{Expires: now.Add(-time.Minute).UnixMilli()})
	require.NoError(t, store.Set(context.Background(), userKey, string(user)))
	require.NoError(t, store.Set(context.Background(), sessionKey, string(window)))

	// Expiry is routine, not an error
	require.NoError(t, svc.Initialize(context.Background()))

	assert.Nil(t, svc.Current())
	assert.Equal(t, StateNone, svc.State())
	assert.False(t, storeHasRecord(t, store))
}

func TestInitializeTreatsHalfRecordAsNoSession(t *testing.T) {
	svc, store, now := newTestService(t)

	window, _ := json.Marshal(persistedWindow{Expires: now.Add(time.Hour).UnixMilli()})
	require.NoError(t, store.Set(context.Background(), sessionKey, string(window)))

	require.NoError(t, svc.Initialize(context.Background()))

	assert.Nil(t, svc.Current())
	assert.False(t, storeHasRecord(t, store))
}

func TestInitializeTreatsMalformedRecordAsNoSession(t *testing.T) {
	svc, store, _ := newTestService(t)

	require.NoError(t, store.Set(context.Background(), userKey, "{not json"))
	require.NoError(t, store.Set(context.Background(), sessionKey, "also not json"))

	require.NoError(t, svc.Initialize(context.Background()))

	assert.Nil(t, svc.Current())
	assert.False(t, storeHasRecord(t, store))
}

func TestCurrentLazyExpiry(t *testing.T) {
	svc, store, now := newTestService(t)
	require.NoError(t, svc.Initialize(context.Background()))

	_, err := svc.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	require.NotNil(t, svc.Current())

	*now = now.Add(25 * time.Hour)

	assert.Nil(t, svc.Current())
	assert.False(t, svc.IsAdmin())
	assert.Equal(t, StateNone, svc.State())
	assert.False(t, storeHasRecord(t, store))
}

func TestLogout(t *testing.T) {
	svc, store, _ := newTestService(t)
	require.NoError(t, svc.Initialize(context.Background()))

	_, err := svc.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Nil(t, svc.Current())
	assert.False(t, storeHasRecord(t, store))

	// Idempotent: a second logout is a no-op, not an error
	require.NoError(t, svc.Logout(context.Background()))
	assert.Nil(t, svc.Current())
}

func TestLogoutWithoutSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	require.NoError(t, svc.Initialize(context.Background()))

	require.NoError(t, svc.Logout(context.Background()))
	assert.Nil(t, svc.Current())
}

func TestValidateToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	require.NoError(t, svc.Initialize(context.Background()))

	result, err := svc.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)

	session, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, testEmail, session.Email)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A token does not outlive the session it belongs to
	require.NoError(t, svc.Logout(context.Background()))
	_, err = svc.ValidateToken(result.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// failingStore simulates an unavailable durable backend
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}
func (failingStore) Set(context.Context, string, string) error { return errors.New("disk on fire") }
func (failingStore) Delete(context.Context, string) error      { return errors.New("disk on fire") }

func TestStorageUnavailable(t *testing.T) {
	verifier, err := NewStaticVerifier(testEmail, testPassword)
	require.NoError(t, err)
	svc := NewService(testConfig(), failingStore{}, verifier)

	// Initialize reports the failure but the service still becomes ready
	err = svc.Initialize(context.Background())
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Equal(t, StateNone, svc.State())

	// Login degrades to an in-memory session alongside the error
	result, err := svc.Login(context.Background(), testEmail, testPassword)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	require.NotNil(t, result)
	assert.NotNil(t, svc.Current())
	assert.True(t, svc.IsAdmin())
}
