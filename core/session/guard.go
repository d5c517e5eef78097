package session

import (
	"time"

	"github.com/trezcool/timetable/core/user"
)

type (
	// State is the authentication state of a request.
	State uint8

	// Policy is the protection applied to a route group.
	Policy uint8

	// Action is the outcome of the guard for a request.
	Action uint8
)

const (
	Unauthenticated State = iota
	AuthenticatedNonAdmin
	AuthenticatedAdmin
)

const (
	// Protected lets any authenticated role in.
	Protected Policy = iota
	// AdminOnly lets only admins in.
	AdminOnly
)

const (
	Allow Action = iota
	RedirectSignIn
	Forbid
)

var (
	stateNames  = [...]string{"unauthenticated", "authenticated-non-admin", "authenticated-admin"}
	policyNames = [...]string{"protected", "admin-only"}
	actionNames = [...]string{"allow", "redirect-signin", "forbid"}

	// transitions[policy][state]
	transitions = [...][3]Action{
		Protected: {Unauthenticated: RedirectSignIn, AuthenticatedNonAdmin: Allow, AuthenticatedAdmin: Allow},
		AdminOnly: {Unauthenticated: RedirectSignIn, AuthenticatedNonAdmin: Forbid, AuthenticatedAdmin: Allow},
	}
)

// StateOf classifies sess at now. A nil, anonymous or expired session is Unauthenticated.
func StateOf(sess *Session, now time.Time) State {
	if !sess.Valid(now) {
		return Unauthenticated
	}
	if user.IsAdmin(sess.Role) {
		return AuthenticatedAdmin
	}
	return AuthenticatedNonAdmin
}

// Decide returns the action p takes for a request in state st.
func (p Policy) Decide(st State) Action {
	if int(p) >= len(transitions) || int(st) >= len(stateNames) {
		return RedirectSignIn
	}
	return transitions[p][st]
}

// Guard evaluates a Policy once per request against the resolved session.
type Guard struct {
	Policy Policy
	Now    func() time.Time
}

func NewGuard(p Policy) Guard {
	return Guard{Policy: p, Now: time.Now}
}

func (g Guard) Check(sess *Session) Action {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return g.Policy.Decide(StateOf(sess, now()))
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

func (p Policy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return "unknown"
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}
