package automata

import (
	"slices"
	"strings"
)

// stateSet is what it says on the tin; implements a set semantic on
// States. It could be a bare map[State]bool everywhere, but the callers
// read better this way, and canonical below is the one place where
// "set of states" has to behave like a value.
type stateSet struct {
	set map[State]bool
}

func newStateSet(states ...State) *stateSet {
	ss := &stateSet{set: make(map[State]bool, len(states))}
	for _, s := range states {
		ss.set[s] = true
	}
	return ss
}

// add reports whether s was new, which is how the worklist loops in
// EpsilonClosure and ToDFA know they have reached their fixed point.
func (ss *stateSet) add(s State) bool {
	if ss.set[s] {
		return false
	}
	ss.set[s] = true
	return true
}

// intersects reports whether the set shares a member with other, which
// is the acceptance test for a set of simultaneously-active states.
func (ss *stateSet) intersects(other map[State]bool) bool {
	for s := range ss.set {
		if other[s] {
			return true
		}
	}
	return false
}

// states returns the members sorted by name. Every []State that leaves
// this package for a set-valued result is ordered this way, so equal
// sets always present identically.
func (ss *stateSet) states() []State {
	states := make([]State, 0, len(ss.set))
	for s := range ss.set {
		states = append(states, s)
	}
	slices.Sort(states)
	return states
}

// label is the readable name for the set: the member names sorted and
// joined, brace-wrapped. Two structurally identical subsets produce
// the same label, and it is the name the subset's DFA state gets. It
// is not the dedup key: a state named "a,b" makes {a,b} and {"a,b"}
// label identically, which is what canonical is for.
func (ss *stateSet) label() State {
	names := ss.states()
	var sb strings.Builder
	sb.WriteByte('{')
	for i, s := range names {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(string(s))
	}
	sb.WriteByte('}')
	return State(sb.String())
}

// canonical is the dedup key for subset construction: the sorted
// member names joined with commas, any comma or backslash inside a
// name backslash-escaped. Escaping makes the key injective, so
// distinct subsets never collide no matter what the states are named.
func (ss *stateSet) canonical() string {
	var sb strings.Builder
	for i, s := range ss.states() {
		if i > 0 {
			sb.WriteByte(',')
		}
		for _, r := range string(s) {
			if r == ',' || r == '\\' {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
