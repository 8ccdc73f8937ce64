// Package access holds the single authorization decision for protected resources.
//
// Every protected view or route is judged by Evaluate: one pure, synchronous function
// instead of role checks re-derived at each call site. Denials are valid terminal
// outcomes with a defined caller-visible payload, not errors.
package access

import (
	"trolley/internal/domain/entity"
)

// LoginPath is the redirect target handed to callers on an unauthenticated denial,
// together with the originally requested location.
const LoginPath = "/auth/login"

// Outcome is the result kind of one access evaluation.
type Outcome string

const (
	// OutcomeResolving means the session state is not yet known; no decision is made
	// and the caller must not expose protected content.
	OutcomeResolving Outcome = "resolving"
	// OutcomeGranted means the caller may proceed.
	OutcomeGranted Outcome = "granted"
	// OutcomeDeniedUnauthenticated means no identity is present; the caller should
	// send the visitor to the login view and bring them back afterwards.
	OutcomeDeniedUnauthenticated Outcome = "denied_unauthenticated"
	// OutcomeDeniedForbidden means an identity is present but its role does not
	// satisfy the requirement. There is no redirect: the caller stays on a denied
	// state until the identity changes.
	OutcomeDeniedForbidden Outcome = "denied_forbidden"
)

// Session is a snapshot of the session store as seen by the gate. Loading is true
// while the session status is still being established; Identity is nil for an
// anonymous visitor.
type Session struct {
	Loading  bool
	Identity *entity.Identity
}

// Decision is the outcome of one evaluation plus the payload the caller needs to
// act on it.
type Decision struct {
	Outcome Outcome

	// RedirectTo and ReturnTo are set only for OutcomeDeniedUnauthenticated:
	// the login view to send the visitor to, and the originally requested
	// location to return them to after login.
	RedirectTo string
	ReturnTo   string

	// Role and Required are set only for OutcomeDeniedForbidden, for display.
	Role     string
	Required entity.Roles
}

// Granted is a convenience check for the only outcome that lets protected content render.
func (d Decision) Granted() bool {
	return d.Outcome == OutcomeGranted
}

// Evaluate decides whether a session may access a resource guarded by the required
// role set. An empty required set admits any authenticated identity. Role comparison
// is case-insensitive; an unrecognized role string matches no requirement, so the
// gate fails closed rather than granting. Evaluate never returns an error.
func Evaluate(session Session, required entity.Roles, requestedPath string) Decision {
	if session.Loading {
		return Decision{Outcome: OutcomeResolving}
	}

	if session.Identity == nil {
		return Decision{
			Outcome:    OutcomeDeniedUnauthenticated,
			RedirectTo: LoginPath,
			ReturnTo:   requestedPath,
		}
	}

	if len(required) == 0 || required.ContainsMatch(session.Identity.Role) {
		return Decision{Outcome: OutcomeGranted}
	}

	return Decision{
		Outcome:  OutcomeDeniedForbidden,
		Role:     session.Identity.Role,
		Required: required,
	}
}
