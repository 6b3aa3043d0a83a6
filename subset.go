package automata

import "fmt"

// Subset construction: an NFA's reachable sets of simultaneously-active
// states become single DFA states. The collection of states may, viewed
// as a set, equal a previously-seen set, in which case the DFA state
// already exists: stateSet.canonical is the dedup key, and
// stateSet.label names the new state, so {q1,q0} and {q0,q1} collapse
// to the one state named "{q0,q1}". The two are separate because the
// label is not injective: a state named "a,b" would make {a,b} and
// {"a,b"} label identically, so colliding labels get primes while the
// escaped canonical form keeps the subsets apart.

// ToDFA converts the NFA to an equivalent DFA by reachable-subset
// construction. The start state is the subset {start}; for each known
// subset S and symbol a, move(S, a) becomes a state when non-empty and
// a transition S --a--> move(S, a) is recorded. Empty moves are not
// recorded, so the result may be partial; Totalize fills the gaps with
// a reject sink when a total machine is wanted. Termination is assured
// because a finite state set has finitely many subsets. The result
// accepts a subset-state iff the subset contains an accepting NFA
// state.
func (n *NFA) ToDFA() *DFA {
	return subsetConstruct(&n.machine, []State{n.start})
}

// ToDFA converts the ENFA to an equivalent DFA. ε transitions are
// eliminated first so subset construction consumes a plain NFA; the
// DFA start state is the ε-closure of the original start state.
func (e *ENFA) ToDFA() *DFA {
	return subsetConstruct(&e.EliminateEpsilon().machine, e.EpsilonClosure(e.start))
}

func subsetConstruct(m *machine, startStates []State) *DFA {
	start := newStateSet(startStates...)
	startLabel := start.label()
	labels := map[string]State{start.canonical(): startLabel}
	taken := map[State]bool{startLabel: true}
	worklist := []*stateSet{start}

	var states []State
	var accepting []State
	var transitions []Transition
	states = append(states, startLabel)
	if start.intersects(m.accepting) {
		accepting = append(accepting, startLabel)
	}

	for len(worklist) > 0 {
		current := worklist[0]
		worklist = worklist[1:]
		from := labels[current.canonical()]
		for _, a := range m.alphabet {
			moved := m.move(current.states(), a)
			if len(moved) == 0 {
				continue
			}
			next := newStateSet(moved...)
			to, ok := labels[next.canonical()]
			if !ok {
				to = next.label()
				for taken[to] {
					to += "'"
				}
				labels[next.canonical()] = to
				taken[to] = true
				worklist = append(worklist, next)
				states = append(states, to)
				if next.intersects(m.accepting) {
					accepting = append(accepting, to)
				}
			}
			transitions = append(transitions, Transition{From: from, On: a, To: to})
		}
	}

	dfa, err := NewDFA(states, m.Alphabet(), transitions, startLabel, accepting)
	if err != nil {
		// subsets of a validated machine can't produce anything undeclared
		panic("subset construction built an invalid DFA: " + err.Error())
	}
	return dfa
}

// IsTotal reports whether every (state, symbol) pair has a destination.
func (d *DFA) IsTotal() bool {
	return d.CheckTotal() == nil
}

// CheckTotal returns nil for a total DFA and a wrapped
// ErrUndefinedTransition naming the first gap otherwise, scanning
// states in state-list order and symbols in alphabet order. Callers
// that want the gaps filled instead call Totalize.
func (d *DFA) CheckTotal() error {
	for _, s := range d.states {
		for _, a := range d.alphabet {
			if _, ok := d.Step(s, a); !ok {
				return fmt.Errorf("%w: no transition for (%q, %q)", ErrUndefinedTransition, s, a)
			}
		}
	}
	return nil
}

// Totalize returns a total DFA accepting the same language: a fresh
// machine in which one synthetic non-accepting reject state absorbs
// every undefined (state, symbol) pair and loops to itself on every
// symbol. The sink is named for the empty subset, "∅", with a prime
// appended as long as that name is taken. The input, as with every
// conversion here, is not modified; if it was already total the result
// is simply an independent copy.
func (d *DFA) Totalize() *DFA {
	sink := State("∅")
	for d.stateSet[sink] {
		sink += "'"
	}

	states := d.States()
	transitions := d.Transitions()
	sinkNeeded := false
	for _, s := range d.states {
		for _, a := range d.alphabet {
			if _, ok := d.Step(s, a); !ok {
				transitions = append(transitions, Transition{From: s, On: a, To: sink})
				sinkNeeded = true
			}
		}
	}
	if sinkNeeded {
		states = append(states, sink)
		for _, a := range d.alphabet {
			transitions = append(transitions, Transition{From: sink, On: a, To: sink})
		}
	}

	total, err := NewDFA(states, d.Alphabet(), transitions, d.start, d.AcceptingStates())
	if err != nil {
		panic("totalization built an invalid DFA: " + err.Error())
	}
	return total
}
