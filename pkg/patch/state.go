// pkg/patch/state.go
package patch

import "fmt"

// State is the patch state of one source file
type State int

const (
	// Pristine files hold the content shipped with the sources
	Pristine State = iota
	// Patched files hold transformed content; the original is in the backup
	Patched
)

func (s State) String() string {
	switch s {
	case Pristine:
		return "pristine"
	case Patched:
		return "patched"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText stores states by name in the ledger
func (s State) MarshalText() ([]byte, error) {
	switch s {
	case Pristine, Patched:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("unknown patch state %d", int(s))
	}
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pristine":
		*s = Pristine
	case "patched":
		*s = Patched
	default:
		return fmt.Errorf("unknown patch state %q", string(text))
	}
	return nil
}
