// Package session sequences BillPoint login, signup and logout flows and
// exposes the resulting authentication state to observers.
//
// The state machine is implemented once, as plain data plus explicit
// transitions, and can be observed two ways: by polling State() for the
// current snapshot, or by Subscribe() for a channel that receives every
// new snapshot. Snapshots are replaced whole on each transition; observers
// never see a partially updated state.
package session

import "github.com/billpoint/billpoint/pkg/authsdk"

// Phase is the machine's position in the authentication flow.
type Phase string

const (
	// PhaseIdle: no user, no call in flight. The initial shape.
	PhaseIdle Phase = "idle"

	// PhaseInFlight: a login or signup call has been dispatched and not
	// yet resolved. Only one call may be in flight per Manager.
	PhaseInFlight Phase = "in_flight"

	// PhaseAuthenticated: a user is signed in.
	PhaseAuthenticated Phase = "authenticated"

	// PhaseFailed: the last attempt failed; Err carries the message.
	PhaseFailed Phase = "failed"
)

// State is the observable snapshot of the authentication flow.
type State struct {
	Phase Phase

	// Err is the human-readable failure message; empty unless Phase is Failed.
	Err string

	// User is the signed-in identity; nil unless authenticated.
	User *authsdk.UserRecord

	// HidePassword is the form's password-visibility toggle. It rides along
	// in the snapshot because the presentation layer observes it the same
	// way it observes the rest of the state.
	HidePassword bool
}

// Loading reports whether a call is in flight, matching the presentation
// layer's notion of a disabled submit button.
func (s State) Loading() bool { return s.Phase == PhaseInFlight }

// initialState is the Idle shape the machine starts from and returns to on
// logout.
func initialState() State {
	return State{Phase: PhaseIdle, HidePassword: true}
}
