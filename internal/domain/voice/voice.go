// Package voice implements the speaker-selection policy: one voice is
// resolved per run, before any segment is synthesized, and applied uniformly.
package voice

// Selection is the resolved speaker identity for one run. Speaker is empty
// when the engine exposes no roster (single-speaker model or cloning via
// reference audio).
type Selection struct {
	Speaker string
	// Fallback reports that the requested voice was not in the roster and
	// the first roster entry was used instead. The caller logs a warning;
	// it is never an error.
	Fallback bool
}

// Resolve applies the fixed policy: a requested voice present in the roster
// wins; an unknown requested voice degrades to the first roster entry; no
// request also means the first roster entry; an empty roster selects nothing.
func Resolve(roster []string, requested string) Selection {
	if len(roster) == 0 {
		return Selection{}
	}
	if requested != "" {
		for _, v := range roster {
			if v == requested {
				return Selection{Speaker: v}
			}
		}
		return Selection{Speaker: roster[0], Fallback: true}
	}
	return Selection{Speaker: roster[0]}
}
