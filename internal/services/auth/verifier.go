package auth

import (
	"fmt"

	"github.com/brandontaylor1/quibotanicals/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// The demo identity has a fixed user ID, matching the single seeded
// admin account a real identity provider would replace.
const demoAdminID = "1"

// CredentialVerifier checks a credential pair and reports the role it
// grants. Swapping in a real identity provider only replaces this seam;
// the session state machine is unaffected.
type CredentialVerifier interface {
	Verify(email, password string) (models.Role, error)
}

// StaticVerifier matches against a single fixed credential record.
// Email comparison is a case-sensitive exact match; the password is
// compared against a bcrypt hash.
type StaticVerifier struct {
	email        string
	passwordHash []byte
}

// NewStaticVerifier creates a verifier for the demo admin credential
func NewStaticVerifier(email, password string) (*StaticVerifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash credential: %w", err)
	}
	return &StaticVerifier{email: email, passwordHash: hash}, nil
}

// Verify reports RoleAdmin for the fixed credential, RoleNone otherwise.
// A mismatch is an expected outcome, never an error.
func (v *StaticVerifier) Verify(email, password string) (models.Role, error) {
	if email != v.email {
		return models.RoleNone, nil
	}
	if bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)) != nil {
		return models.RoleNone, nil
	}
	return models.RoleAdmin, nil
}
