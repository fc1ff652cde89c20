package machine

import "fmt"

// Capability names accepted in derive_states and derive_events lists.
// Eq, PartialEq, Clone, Copy, and Hash are inherent properties of the
// dense-integer enumerations the emitter produces; they are validated but
// generate no code. Debug adds a String method; Text adds
// encoding.TextMarshaler / TextUnmarshaler.
const (
	CapDebug     = "Debug"
	CapText      = "Text"
	CapEq        = "Eq"
	CapPartialEq = "PartialEq"
	CapClone     = "Clone"
	CapCopy      = "Copy"
	CapHash      = "Hash"
)

var knownCapabilities = map[string]bool{
	CapDebug:     true,
	CapText:      true,
	CapEq:        true,
	CapPartialEq: true,
	CapClone:     true,
	CapCopy:      true,
	CapHash:      true,
}

// DefaultDerives returns the capability set applied when a definition omits
// a derive list.
func DefaultDerives() []string {
	return []string{CapDebug, CapClone, CapPartialEq, CapEq}
}

// HasCapability reports whether a derive list requests the named capability.
func HasCapability(list []string, capability string) bool {
	for _, c := range list {
		if c == capability {
			return true
		}
	}
	return false
}

func validateDerives(which string, list []string) error {
	for _, c := range list {
		if !knownCapabilities[c] {
			return &Error{
				Kind:   ErrUnknownCapability,
				Detail: fmt.Sprintf("%s lists %q", which, c),
				Hint:   "supported capabilities: Debug, Text, Eq, PartialEq, Clone, Copy, Hash",
			}
		}
	}
	return nil
}
