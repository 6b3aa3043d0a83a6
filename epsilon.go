package automata

// This file strips ε transitions: closure computation plus the
// ε-elimination rewrite that turns an ENFA into a plain NFA over the
// same states.

// EpsilonClosure returns the smallest superset of from that is closed
// under ε transitions, sorted by state name. The computation is a
// worklist fixed point: keep following ε edges off newly-added states
// until nothing is new. It terminates because the state set is finite
// and the closure only grows. Closure is idempotent: feeding a result
// back in returns the same set.
func (e *ENFA) EpsilonClosure(from ...State) []State {
	closure := newStateSet(from...)
	work := make([]State, len(from))
	copy(work, from)
	for len(work) > 0 {
		s := work[len(work)-1]
		work = work[:len(work)-1]
		for _, to := range e.delta[s][Epsilon] {
			if closure.add(to) {
				work = append(work, to)
			}
		}
	}
	return closure.states()
}

// EliminateEpsilon builds the equivalent plain NFA: same states, same
// alphabet, no ε edges. For every state s and symbol a the new
// destination set is closure(move(closure({s}), a)), and s accepts in
// the result iff its closure contains an accepting state, which is
// also what makes the empty string come out right. The input is left
// untouched; the result is a fresh machine.
func (e *ENFA) EliminateEpsilon() *NFA {
	var transitions []Transition
	var accepting []State

	for _, s := range e.states {
		closure := newStateSet(e.EpsilonClosure(s)...)
		if closure.intersects(e.accepting) {
			accepting = append(accepting, s)
		}
		for _, a := range e.alphabet {
			moved := e.move(closure.states(), a)
			if len(moved) == 0 {
				continue
			}
			for _, to := range e.EpsilonClosure(moved...) {
				transitions = append(transitions, Transition{From: s, On: a, To: to})
			}
		}
	}

	nfa, err := NewNFA(e.States(), e.Alphabet(), transitions, e.start, accepting)
	if err != nil {
		// every state and symbol above came from a validated machine
		panic("EliminateEpsilon built an invalid NFA: " + err.Error())
	}
	return nfa
}
