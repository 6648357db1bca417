package reminder

// State is the lifecycle stage of a reminder scheduler.
type State int

const (
	// StateIdle means nothing is armed.
	StateIdle State = iota
	// StateArmed means a target instant is pending.
	StateArmed
	// StateFired means the last armed target was reached.
	StateFired
)

// String returns a lower-case state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateFired:
		return "fired"
	default:
		return "unknown"
	}
}

// Permission is the desktop notification permission state.
type Permission int

const (
	// PermissionUndetermined means nobody has asked yet.
	PermissionUndetermined Permission = iota
	// PermissionGranted allows system-level notifications.
	PermissionGranted
	// PermissionDenied forces the inline fallback.
	PermissionDenied
)

// String returns a lower-case permission name for logs.
func (p Permission) String() string {
	switch p {
	case PermissionUndetermined:
		return "undetermined"
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "unknown"
	}
}
