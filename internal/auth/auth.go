// Package auth is the credential store: a persisted user list plus one
// current session.
//
// Authentication is simulated. By default passwords are kept and compared
// as plain text and session tokens are opaque, non-cryptographic strings;
// both can be hardened through Options (see cryptox and JWTIssuer).
package auth

import (
	"errors"
	"time"
)

var (
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// SessionTTL is how long a session stays valid after login.
const SessionTTL = 24 * time.Hour

// AvatarBaseURL is prefixed to the user's name to build the default avatar.
const AvatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// User is the public part of a user record.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// record is a user as persisted under the users key.
type record struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Avatar   string `json:"avatar,omitempty"`
}

func (r record) user() User {
	return User{ID: r.ID, Email: r.Email, Name: r.Name, Avatar: r.Avatar}
}

// Session is the persisted login. ExpiresAt is Unix milliseconds.
type Session struct {
	Token     string `json:"token"`
	User      User   `json:"user"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Valid reports whether the session is still usable at now.
func (s Session) Valid(now time.Time) bool {
	return now.UnixMilli() < s.ExpiresAt
}

// demoUser is written on first access to an empty user list.
var demoUser = record{
	ID:       "1",
	Email:    "demo@example.com",
	Name:     "Demo User",
	Password: "password123",
}
