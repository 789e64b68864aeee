package services

import (
	"strings"
)

// ShortcutService resolves single-token commands against a static table and
// validates which senders may use the privileged shortcuts.
type ShortcutService struct {
	shortcuts      map[string]string
	allowedSenders []string
}

// NewShortcutService creates a shortcut service. Passing nil/empty values
// keeps the built-in defaults.
func NewShortcutService(shortcuts map[string]string, allowedSenders []string) *ShortcutService {
	if shortcuts == nil {
		shortcuts = map[string]string{
			"I": "Cual es el monto del ingreso de dinero.",
			"S": "Cual es el monto de la salida de dinero.",
		}
	}
	if len(allowedSenders) == 0 {
		// Only this number may trigger the protected customer-list
		// shortcut. Matched by suffix to tolerate country prefixes.
		allowedSenders = []string{"3004356388"}
	}

	return &ShortcutService{
		shortcuts:      shortcuts,
		allowedSenders: allowedSenders,
	}
}

// Lookup returns the canned reply for an exact (post-trim) shortcut match.
// The second return value distinguishes "no match" from an empty reply.
func (s *ShortcutService) Lookup(text string) (string, bool) {
	reply, ok := s.shortcuts[strings.TrimSpace(text)]
	return reply, ok
}

// IsPrivilegedSender reports whether the sender may run privileged
// shortcuts. The id is reduced to its digits and compared by suffix, so
// "573004356388" and "+573004356388" both match an allowed "3004356388".
func (s *ShortcutService) IsPrivilegedSender(sender string) bool {
	if sender == "" {
		return false
	}

	var digits strings.Builder
	for _, ch := range sender {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		}
	}
	if digits.Len() == 0 {
		return false
	}

	normalized := digits.String()
	for _, allowed := range s.allowedSenders {
		if allowed != "" && strings.HasSuffix(normalized, allowed) {
			return true
		}
	}
	return false
}
