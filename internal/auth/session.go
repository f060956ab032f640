// Package auth holds the role gate in front of the catalog. It is a
// convenience gate for a trusted shared device, not an access-control
// boundary: credentials are checked by the catalog in plaintext.
package auth

import (
	"errors"
)

var (
	ErrAlreadyLoggedIn = errors.New("session already logged in")
	ErrNotLoggedIn     = errors.New("session not logged in")
)

type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

// Identity is who a LoggedIn session belongs to.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Session moves LoggedOut -> LoggedIn(role) -> LoggedOut. It has no expiry of
// its own.
type Session struct {
	state State
	id    Identity
}

func (s *Session) State() State { return s.state }

func (s *Session) Login(id Identity) error {
	if s.state == LoggedIn {
		return ErrAlreadyLoggedIn
	}
	s.state = LoggedIn
	s.id = id
	return nil
}

func (s *Session) Logout() error {
	if s.state != LoggedIn {
		return ErrNotLoggedIn
	}
	s.state = LoggedOut
	s.id = Identity{}
	return nil
}

func (s *Session) Identity() (Identity, bool) {
	return s.id, s.state == LoggedIn
}

// Allows reports whether the session is logged in with one of roles.
func (s *Session) Allows(roles ...string) bool {
	if s.state != LoggedIn {
		return false
	}
	for _, r := range roles {
		if s.id.Role == r {
			return true
		}
	}
	return false
}
