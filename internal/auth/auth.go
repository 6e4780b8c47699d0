// Package auth holds the placeholder credential check in front of the users
// screen. It is a navigation gate, not a security boundary.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/five82/rollcall/internal/session"
)

// Default placeholder credentials accepted by StaticVerifier.
const (
	DefaultEmail    = "test@gmail.com"
	DefaultPassword = "pass123"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrInvalidCredentials is returned for well-formed credentials that do not match.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Credentials is the email/password pair entered on the login form.
type Credentials struct {
	Email    string
	Password string
}

// Validate checks that both fields are present and the email is well formed.
func Validate(c Credentials) error {
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	if c.Password == "" {
		return &ValidationError{Field: "password", Reason: "is required"}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	return nil
}

// Verifier decides whether credentials are accepted.
type Verifier interface {
	Verify(c Credentials) bool
}

// StaticVerifier accepts exactly one configured email/password pair.
type StaticVerifier struct {
	Email    string
	Password string
}

// NewStaticVerifier returns a verifier for the pair, falling back to the
// defaults for empty values.
func NewStaticVerifier(email, password string) StaticVerifier {
	if strings.TrimSpace(email) == "" {
		email = DefaultEmail
	}
	if password == "" {
		password = DefaultPassword
	}
	return StaticVerifier{Email: strings.TrimSpace(email), Password: password}
}

// Verify implements Verifier.
func (v StaticVerifier) Verify(c Credentials) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(c.Email)), []byte(v.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(c.Password), []byte(v.Password)) == 1
	return emailOK && passOK
}

// SessionCreator persists the session flag after a successful login.
type SessionCreator interface {
	Create(ctx context.Context, id session.Identity) error
}

// Authenticator runs validation, verification and session creation.
type Authenticator struct {
	Verifier Verifier
	Sessions SessionCreator
}

// Login validates and verifies c, then creates the session. The returned
// error is a *ValidationError, ErrInvalidCredentials or a wrapped store error.
func (a Authenticator) Login(ctx context.Context, c Credentials) error {
	if err := Validate(c); err != nil {
		return err
	}
	if a.Verifier == nil || !a.Verifier.Verify(c) {
		return ErrInvalidCredentials
	}
	if a.Sessions == nil {
		return fmt.Errorf("session store is nil")
	}
	if err := a.Sessions.Create(ctx, session.Identity{Email: strings.TrimSpace(c.Email)}); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}
