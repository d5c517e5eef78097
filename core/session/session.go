// Package session holds the request session as read from the auth layer and
// the guard that decides whether a route group may be entered with it.
package session

import (
	"time"

	"github.com/trezcool/timetable/core/user"
)

// Session is the authenticated identity attached to a request.
type Session struct {
	UserID int       `json:"user_id"`
	Role   user.Role `json:"role"`
	Expiry time.Time `json:"expiry"`
}

// New builds a session for usr valid for ttl.
// The role goes through user.NormalizeRole on the way in and out of the session store.
func New(usr user.User, ttl time.Duration) *Session {
	return &Session{
		UserID: usr.ID,
		Role:   usr.Role,
		Expiry: time.Now().Add(ttl).UTC(),
	}
}

// Valid reports whether s identifies a user and has not expired at now.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.UserID != 0 && now.Before(s.Expiry)
}

// EffectiveRole is the role that applies to the request: RoleUnknown (guest) when the session is not valid.
func (s *Session) EffectiveRole(now time.Time) user.Role {
	if !s.Valid(now) {
		return user.RoleUnknown
	}
	return s.Role
}
