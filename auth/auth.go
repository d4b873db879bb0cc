// Package auth signs a user in as an admin or a brand.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	nt "portal/entity"
)

// DefaultLoginDelay is how long Mock takes to answer by default.
const DefaultLoginDelay = 1500 * time.Millisecond

var (
	// ErrMissing is reported when email or password is blank.
	ErrMissing = errors.New("Please enter both email and password")
	// ErrDenied is reported for unknown credentials.
	ErrDenied = errors.New("invalid email or password")
)

// Authenticator checks credentials for a role.
type Authenticator interface {
	Login(ctx context.Context, role nt.Role, email, password string) (user nt.User, err error)
}

// Mock accepts any credentials after Delay, unless Passwords is populated,
// in which case the email must be present with a matching password.
type Mock struct {
	Delay     time.Duration
	Passwords map[string]string
}

func (mock Mock) Login(ctx context.Context, role nt.Role, email, password string) (user nt.User, err error) {

	timer := time.NewTimer(mock.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		err = errors.Wrapf(ctx.Err(), "login abandoned for %s", email)
		return
	case <-timer.C:
	}

	if len(mock.Passwords) > 0 && mock.Passwords[email] != password {
		err = ErrDenied
		return
	}

	user = nt.User{
		Id:    uuid.NewString(),
		Email: email,
		Name:  displayName(email),
		Role:  role,
	}
	return
}

// displayName guesses a name from the local part of an email
func displayName(email string) string {

	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return email
	}
	return strings.ToUpper(local[:1]) + local[1:]
}
