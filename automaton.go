package automata

import (
	"fmt"
	"slices"
	"strings"
)

// State identifies one state of an automaton. States are opaque labels
// ("q0", "2", "{q0,q1}"), unique within the machine that declares them.
// A conversion always mints a fresh machine; it never shares state
// identity with its input.
type State string

// Symbol is one atomic input symbol. Symbols are usually single runes
// in a teaching setting but nothing here requires that.
type Symbol string

// Epsilon is the empty-string symbol. It may label ENFA transitions and
// nothing else: not NFA or DFA transitions, not a declared alphabet,
// not simulation input. The definition formats in package def also
// accept λ for it and normalize to this marker.
const Epsilon Symbol = "ε"

// Transition is one edge of the transition relation. Nondeterminism is
// expressed by listing several Transitions with the same From and On.
type Transition struct {
	From State
	On   Symbol
	To   State
}

// machine is the shape shared by the DFA, NFA and ENFA variants: the
// ordered state and alphabet lists, the transition relation, the start
// state and the accepting set. A machine is built once by newMachine
// and read-only forever after; conversions that want a different one
// build a different one.
type machine struct {
	states    []State
	stateSet  map[State]bool
	alphabet  []Symbol
	symbolSet map[Symbol]bool
	delta     map[State]map[Symbol][]State
	start     State
	accepting map[State]bool
}

// DFA is a deterministic finite automaton: at most one destination per
// (state, symbol) pair and no ε transitions.
type DFA struct {
	machine
}

// NFA is a nondeterministic finite automaton: any number of
// destinations per (state, symbol) pair, no ε transitions.
type NFA struct {
	machine
}

// ENFA is an NFA that additionally permits ε (empty-string) transitions.
type ENFA struct {
	machine
}

// NewDFA validates and builds a deterministic automaton. The error is
// ErrMalformedAutomaton (wrapped with detail) if start or an accepting
// state is not in states, a transition mentions an undeclared state or
// symbol, any transition is labeled ε, or some (state, symbol) pair has
// two destinations.
func NewDFA(states []State, alphabet []Symbol, transitions []Transition, start State, accepting []State) (*DFA, error) {
	m, err := newMachine("DFA", states, alphabet, transitions, start, accepting, false, true)
	if err != nil {
		return nil, err
	}
	return &DFA{m}, nil
}

// NewNFA validates and builds a nondeterministic automaton. ε
// transitions are rejected; use NewENFA for those.
func NewNFA(states []State, alphabet []Symbol, transitions []Transition, start State, accepting []State) (*NFA, error) {
	m, err := newMachine("NFA", states, alphabet, transitions, start, accepting, false, false)
	if err != nil {
		return nil, err
	}
	return &NFA{m}, nil
}

// NewENFA validates and builds a nondeterministic automaton whose
// transitions may be labeled Epsilon. The declared alphabet still must
// not contain ε; emptiness is a property of edges, not a symbol you
// can feed to the machine.
func NewENFA(states []State, alphabet []Symbol, transitions []Transition, start State, accepting []State) (*ENFA, error) {
	m, err := newMachine("e-NFA", states, alphabet, transitions, start, accepting, true, false)
	if err != nil {
		return nil, err
	}
	return &ENFA{m}, nil
}

func newMachine(kind string, states []State, alphabet []Symbol, transitions []Transition, start State, accepting []State, epsilonOK, deterministic bool) (machine, error) {
	m := machine{
		stateSet:  make(map[State]bool, len(states)),
		symbolSet: make(map[Symbol]bool, len(alphabet)),
		delta:     make(map[State]map[Symbol][]State),
		start:     start,
		accepting: make(map[State]bool, len(accepting)),
	}

	for _, s := range states {
		if !m.stateSet[s] {
			m.stateSet[s] = true
			m.states = append(m.states, s)
		}
	}
	for _, a := range alphabet {
		if a == Epsilon {
			return machine{}, fmt.Errorf("%w: %s alphabet may not contain ε", ErrMalformedAutomaton, kind)
		}
		if !m.symbolSet[a] {
			m.symbolSet[a] = true
			m.alphabet = append(m.alphabet, a)
		}
	}

	if !m.stateSet[start] {
		return machine{}, fmt.Errorf("%w: start state %q is not in the state set", ErrMalformedAutomaton, start)
	}
	for _, f := range accepting {
		if !m.stateSet[f] {
			return machine{}, fmt.Errorf("%w: accepting state %q is not in the state set", ErrMalformedAutomaton, f)
		}
		m.accepting[f] = true
	}

	for _, t := range transitions {
		if !m.stateSet[t.From] {
			return machine{}, fmt.Errorf("%w: transition from undeclared state %q", ErrMalformedAutomaton, t.From)
		}
		if !m.stateSet[t.To] {
			return machine{}, fmt.Errorf("%w: transition to undeclared state %q", ErrMalformedAutomaton, t.To)
		}
		if t.On == Epsilon {
			if !epsilonOK {
				return machine{}, fmt.Errorf("%w: ε transition %q → %q not allowed in a %s", ErrMalformedAutomaton, t.From, t.To, kind)
			}
		} else if !m.symbolSet[t.On] {
			return machine{}, fmt.Errorf("%w: transition on undeclared symbol %q", ErrMalformedAutomaton, t.On)
		}
		row := m.delta[t.From]
		if row == nil {
			row = make(map[Symbol][]State)
			m.delta[t.From] = row
		}
		if !slices.Contains(row[t.On], t.To) {
			if deterministic && len(row[t.On]) != 0 {
				return machine{}, fmt.Errorf("%w: two destinations for (%q, %q): %q and %q",
					ErrMalformedAutomaton, t.From, t.On, row[t.On][0], t.To)
			}
			row[t.On] = append(row[t.On], t.To)
		}
	}

	for _, row := range m.delta {
		for _, dests := range row {
			slices.Sort(dests)
		}
	}
	return m, nil
}

// Start returns the start state.
func (m *machine) Start() State {
	return m.start
}

// States returns the state list in declaration order (for conversion
// results, discovery order). The slice is the caller's to keep.
func (m *machine) States() []State {
	return slices.Clone(m.states)
}

// Alphabet returns the declared input symbols in declaration order,
// never including ε.
func (m *machine) Alphabet() []Symbol {
	return slices.Clone(m.alphabet)
}

// IsAccepting reports whether s is an accepting state.
func (m *machine) IsAccepting(s State) bool {
	return m.accepting[s]
}

// AcceptingStates returns the accepting states in state-list order.
func (m *machine) AcceptingStates() []State {
	var accepting []State
	for _, s := range m.states {
		if m.accepting[s] {
			accepting = append(accepting, s)
		}
	}
	return accepting
}

// TransitionsFrom returns the destination set for (from, on), sorted by
// name; empty if the pair is undefined. For a DFA the set has at most
// one member, and Step is the more convenient form there.
func (m *machine) TransitionsFrom(from State, on Symbol) []State {
	return slices.Clone(m.delta[from][on])
}

// Transitions returns the full transition list: states in state-list
// order, symbols in alphabet order with ε last, destinations by name.
// This ordering plus States, Start and IsAccepting is the entire
// contract a diagram renderer needs.
func (m *machine) Transitions() []Transition {
	var ts []Transition
	for _, from := range m.states {
		row := m.delta[from]
		if row == nil {
			continue
		}
		for _, on := range m.alphabet {
			for _, to := range row[on] {
				ts = append(ts, Transition{From: from, On: on, To: to})
			}
		}
		for _, to := range row[Epsilon] {
			ts = append(ts, Transition{From: from, On: Epsilon, To: to})
		}
	}
	return ts
}

// move returns the union of destination sets over every state in from
// on the symbol on, sorted by name. It is the per-symbol step shared by
// ε elimination, subset construction and set-based simulation.
func (m *machine) move(from []State, on Symbol) []State {
	ss := newStateSet()
	for _, s := range from {
		for _, to := range m.delta[s][on] {
			ss.add(to)
		}
	}
	return ss.states()
}

// Step returns the destination for (from, on) and whether one is
// defined. A false result during simulation means immediate rejection;
// during totality checking it names the gap.
func (d *DFA) Step(from State, on Symbol) (State, bool) {
	dests := d.delta[from][on]
	if len(dests) == 0 {
		return "", false
	}
	return dests[0], true
}

// String renders the machine in the compact one-line-per-part form used
// in test failures and CLI logging. Diagrams come from package dot.
func (m *machine) String() string {
	var sb strings.Builder
	sb.WriteString("states:")
	for _, s := range m.states {
		sb.WriteByte(' ')
		sb.WriteString(string(s))
	}
	sb.WriteString("\nalphabet:")
	for _, a := range m.alphabet {
		sb.WriteByte(' ')
		sb.WriteString(string(a))
	}
	fmt.Fprintf(&sb, "\nstart: %s\naccepting:", m.start)
	for _, s := range m.AcceptingStates() {
		sb.WriteByte(' ')
		sb.WriteString(string(s))
	}
	sb.WriteString("\ntransitions:\n")
	for _, t := range m.Transitions() {
		fmt.Fprintf(&sb, "  %s --%s--> %s\n", t.From, t.On, t.To)
	}
	return sb.String()
}

// Symbols splits s into one Symbol per rune, the convenient form for
// the single-rune alphabets of a teaching setting. Machines with
// multi-rune symbols build their input slices directly.
func Symbols(s string) []Symbol {
	symbols := make([]Symbol, 0, len(s))
	for _, r := range s {
		symbols = append(symbols, Symbol(r))
	}
	return symbols
}
