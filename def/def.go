// Package def parses user-facing automaton and grammar definitions
// into the core types. Two forms are supported: the compact text form
// (comma-separated lists, semicolon-separated transition clauses,
// exactly the shape people write on paper) and a YAML document with a
// kind tag. Both accept λ as well as ε for the empty-string marker and
// normalize to ε before the core sees it.
package def

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Hardvan/ToC-EL"
)

// Lambda is the alternate user-facing spelling of the empty-string
// symbol, normalized to automata.Epsilon during parsing.
const Lambda = "λ"

// ErrSyntax indicates a definition whose shape is wrong: a missing
// field, an empty list entry, a transition clause with too few parts, a
// production without an arrow. Structural problems with a well-shaped
// definition (an undeclared state, a second destination in a DFA) come
// back from the core as ErrMalformedAutomaton or ErrMalformedGrammar.
var ErrSyntax = errors.New("malformed definition")

// list splits a comma-separated field into trimmed entries. An all-
// whitespace input is an empty list, but an empty entry between commas
// is a syntax error.
func list(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return cleanNames(strings.Split(s, ","))
}

// clauses splits a semicolon-separated field into trimmed clauses,
// dropping empties so a trailing semicolon does no harm.
func clauses(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ";") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// cleanNames trims every entry and rejects empty ones. It is the shared
// entry filter for both the text form and YAML lists.
func cleanNames(items []string) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			return nil, fmt.Errorf("%w: empty list entry", ErrSyntax)
		}
		out = append(out, it)
	}
	return out, nil
}

// symbol converts one token to a Symbol, folding λ into ε.
func symbol(tok string) automata.Symbol {
	if tok == Lambda || tok == string(automata.Epsilon) {
		return automata.Epsilon
	}
	return automata.Symbol(tok)
}

func toStates(names []string) []automata.State {
	states := make([]automata.State, len(names))
	for i, n := range names {
		states[i] = automata.State(n)
	}
	return states
}

func toSymbols(names []string) []automata.Symbol {
	symbols := make([]automata.Symbol, len(names))
	for i, n := range names {
		symbols[i] = symbol(n)
	}
	return symbols
}
