package gate

// State is the position of one activation in the gate's state machine:
//
//	Unknown -> NoCredential                          (terminal, redirects to the public route)
//	Unknown -> Authenticated -> IdentityPending -> IdentityResolved | IdentityFailed
//
// Without role gating an activation stops at Authenticated.
type State int

const (
	StateUnknown State = iota
	StateNoCredential
	StateAuthenticated
	StateIdentityPending
	StateIdentityResolved
	StateIdentityFailed
)

func (s State) String() string {
	switch s {
	case StateNoCredential:
		return "no-credential"
	case StateAuthenticated:
		return "authenticated"
	case StateIdentityPending:
		return "identity-pending"
	case StateIdentityResolved:
		return "identity-resolved"
	case StateIdentityFailed:
		return "identity-failed"
	default:
		return "unknown"
	}
}
