package automata

import "errors"

// Error kinds surfaced by this package. Callers distinguish them with
// errors.Is; the wrapped message carries the offending detail.
var (
	// ErrMalformedAutomaton indicates a structural invariant violation at
	// construction time: a start or accepting state missing from the state
	// set, a transition endpoint or symbol that was never declared, an ε
	// transition on a machine kind that forbids it, or two destinations
	// for one (state, symbol) pair in a DFA.
	ErrMalformedAutomaton = errors.New("malformed automaton")

	// ErrMalformedGrammar indicates a grammar whose pieces don't hang
	// together: the start symbol or a production references a name that
	// was never declared, or a name is declared both terminal and
	// non-terminal.
	ErrMalformedGrammar = errors.New("malformed grammar")

	// ErrAmbiguousGrammar indicates a production that is not right-linear,
	// reported when converting a grammar to an automaton.
	ErrAmbiguousGrammar = errors.New("grammar is not right-linear")

	// ErrUndefinedTransition reports the first missing (state, symbol)
	// pair of a partial DFA when the caller asks CheckTotal for a total
	// one instead of filling the gaps with Totalize.
	ErrUndefinedTransition = errors.New("undefined transition")

	// ErrSymbolNotInAlphabet indicates a simulation input containing a
	// symbol the machine's alphabet doesn't declare. It is reported before
	// any part of the input is consumed.
	ErrSymbolNotInAlphabet = errors.New("symbol not in alphabet")
)
