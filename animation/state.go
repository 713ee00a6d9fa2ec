package animation

import "strings"

// StateEntry is one named bucket of animation names, e.g. "IDLINGLEVEL1"
// with members ["RestPose", "Idle1_1", ...]. Member case may differ from
// an animation's actual stored name; lookups are case-insensitive.
type StateEntry struct {
	Name    string
	Members []string
}

// StateTable is the character's full set of named states, in file order.
// The core treats state names as opaque identifiers except for the
// idle-fallback rule below, which only cares whether a name contains
// "IDL".
type StateTable []StateEntry

// IdleMembers returns the case-insensitive union of every member animation
// name belonging to a state whose name contains "IDL" (e.g. IDLINGLEVEL1/2/3).
func (t StateTable) IdleMembers() []string {
	var names []string
	seen := make(map[string]bool)
	for _, s := range t {
		if strings.Contains(strings.ToUpper(s.Name), "IDL") {
			for _, m := range s.Members {
				key := strings.ToUpper(m)
				if !seen[key] {
					seen[key] = true
					names = append(names, m)
				}
			}
		}
	}
	return names
}

// isIdleAnimation reports whether name is a member of any state whose name
// contains "IDL", case-insensitively.
func (t StateTable) isIdleAnimation(name string) bool {
	upper := strings.ToUpper(name)
	for _, n := range t.IdleMembers() {
		if strings.ToUpper(n) == upper {
			return true
		}
	}
	return false
}
