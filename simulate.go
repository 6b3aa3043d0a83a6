package automata

import (
	"fmt"
	"slices"
)

// Step is one consumed symbol of a simulation run and the states active
// after consuming it. A DFA run has exactly one state per step; the
// set-based NFA and ENFA runs may have many, or none once the run dies.
type Step struct {
	On     Symbol
	States []State
}

// Path is the full record of one simulation run: the input, the states
// active before the first symbol, one Step per consumed symbol and the
// verdict. A Path is built fresh per call and owned by the caller; it
// is everything a diagram renderer needs to highlight the run.
type Path struct {
	Input    []Symbol
	Start    []State
	Steps    []Step
	Accepted bool
}

// Last returns the states active after the final consumed symbol, or
// the start states if nothing was consumed.
func (p *Path) Last() []State {
	if len(p.Steps) == 0 {
		return p.Start
	}
	return p.Steps[len(p.Steps)-1].States
}

// checkInput rejects input containing symbols outside the alphabet.
// Simulation validates the whole input before taking a single step, so
// a bad symbol anywhere means no partial trace.
func (m *machine) checkInput(input []Symbol) error {
	for i, sym := range input {
		if !m.symbolSet[sym] {
			return fmt.Errorf("%w: %q at position %d", ErrSymbolNotInAlphabet, sym, i)
		}
	}
	return nil
}

// Accepts reports whether the DFA accepts input. The error is
// ErrSymbolNotInAlphabet if input mentions an undeclared symbol.
func (d *DFA) Accepts(input []Symbol) (bool, error) {
	p, err := d.Trace(input)
	if err != nil {
		return false, err
	}
	return p.Accepted, nil
}

// Trace runs the DFA on input and returns the visited-state sequence.
// The input is validated first; ErrSymbolNotInAlphabet is reported
// before any step is recorded. An undefined transition rejects
// immediately: the trace ends at the state with no way forward and the
// rest of the input is left unconsumed.
func (d *DFA) Trace(input []Symbol) (*Path, error) {
	if err := d.checkInput(input); err != nil {
		return nil, err
	}
	p := &Path{Input: slices.Clone(input), Start: []State{d.start}}
	current := d.start
	for _, sym := range input {
		next, ok := d.Step(current, sym)
		if !ok {
			return p, nil
		}
		current = next
		p.Steps = append(p.Steps, Step{On: sym, States: []State{next}})
	}
	p.Accepted = d.accepting[current]
	return p, nil
}

// Accepts reports whether some run of the NFA over input ends in an
// accepting state. The error is ErrSymbolNotInAlphabet if input
// mentions an undeclared symbol.
func (n *NFA) Accepts(input []Symbol) (bool, error) {
	p, err := n.Trace(input)
	if err != nil {
		return false, err
	}
	return p.Accepted, nil
}

// Trace runs the NFA on input, tracking the set of simultaneously
// active states, and returns the per-step sets. The input is validated
// first, as for DFA.Trace. If some symbol leaves no active states the
// empty set is recorded for it and the trace stops there; nothing can
// revive a dead run, so the verdict is the same as consuming the rest.
func (n *NFA) Trace(input []Symbol) (*Path, error) {
	if err := n.checkInput(input); err != nil {
		return nil, err
	}
	return n.traceSets(input, func(states []State) []State {
		return states
	}), nil
}

// Accepts reports whether some run of the ENFA over input, ε moves
// included, ends in an accepting state. The error is
// ErrSymbolNotInAlphabet if input mentions an undeclared symbol.
func (e *ENFA) Accepts(input []Symbol) (bool, error) {
	p, err := e.Trace(input)
	if err != nil {
		return false, err
	}
	return p.Accepted, nil
}

// Trace runs the ENFA on input and returns the per-step state sets,
// ε-closed after every move; the start set is the ε-closure of the
// start state, which is what accepts the empty string when an ε chain
// reaches an accepting state. Input validation and the dead-run stop
// behave as in NFA.Trace.
func (e *ENFA) Trace(input []Symbol) (*Path, error) {
	if err := e.checkInput(input); err != nil {
		return nil, err
	}
	return e.traceSets(input, func(states []State) []State {
		return e.EpsilonClosure(states...)
	}), nil
}

// traceSets is the set-based simulation shared by NFA and ENFA: expand
// the active set with move once per symbol, then normalize it (identity
// for the NFA, ε-closure for the ENFA).
func (m *machine) traceSets(input []Symbol, normalize func([]State) []State) *Path {
	current := normalize([]State{m.start})
	p := &Path{Input: slices.Clone(input), Start: current}
	for _, sym := range input {
		current = normalize(m.move(current, sym))
		p.Steps = append(p.Steps, Step{On: sym, States: current})
		if len(current) == 0 {
			break
		}
	}
	p.Accepted = newStateSet(current...).intersects(m.accepting)
	return p
}
