package mlme

// State is the connection lifecycle position of the management entity.
type State int

const (
	StateIdle State = iota
	StateScanning
	StateAuthenticating
	StateAuthenticated
	StateAssociating
	StateAssociated
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateAssociating:
		return "associating"
	case StateAssociated:
		return "associated"
	}
	return "idle"
}
