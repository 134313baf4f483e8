package business

// Tristate is a three-valued boolean for research-sourced facts that may
// not have been verified for a jurisdiction yet. The empty string is
// treated as TristateUnknown so the zero value is safe.
type Tristate string

const (
	TristateTrue    Tristate = "true"
	TristateFalse   Tristate = "false"
	TristateUnknown Tristate = "unknown"
)

// TristateFromBool converts a verified boolean into a Tristate.
func TristateFromBool(b bool) Tristate {
	if b {
		return TristateTrue
	}
	return TristateFalse
}

// Known reports whether the value has been verified either way.
func (t Tristate) Known() bool {
	return t == TristateTrue || t == TristateFalse
}

// Resolve returns the boolean value, substituting fallback when the value
// is unknown. The second return reports whether the fallback was used, so
// callers can surface the assumption instead of hiding it.
func (t Tristate) Resolve(fallback bool) (value bool, defaulted bool) {
	switch t {
	case TristateTrue:
		return true, false
	case TristateFalse:
		return false, false
	default:
		return fallback, true
	}
}

func (t Tristate) String() string {
	if !t.Known() {
		return string(TristateUnknown)
	}
	return string(t)
}
