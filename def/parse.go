package def

import (
	"fmt"
	"strings"

	"github.com/Hardvan/ToC-EL"
)

// parts is a definition after text-level parsing, ready to hand to a
// core constructor.
type parts struct {
	states      []automata.State
	alphabet    []automata.Symbol
	transitions []automata.Transition
	start       automata.State
	accepting   []automata.State
}

// ParseDFA builds a DFA from the compact text form: states "q0, q1",
// alphabet "a, b", transitions "q0, a, q1; q1, b, q0" (exactly one
// destination per clause), start "q0", accepting "q1" (may be empty
// for a machine that accepts nothing). Shape problems are ErrSyntax;
// everything else is the core constructor's verdict.
func ParseDFA(states, alphabet, transitions, start, accepting string) (*automata.DFA, error) {
	p, err := parseMachine(states, alphabet, clauses(transitions), start, accepting, true)
	if err != nil {
		return nil, err
	}
	return automata.NewDFA(p.states, p.alphabet, p.transitions, p.start, p.accepting)
}

// ParseNFA builds an NFA from the compact text form. A transition
// clause may carry several destinations: "q0, a, q0, q1".
func ParseNFA(states, alphabet, transitions, start, accepting string) (*automata.NFA, error) {
	p, err := parseMachine(states, alphabet, clauses(transitions), start, accepting, false)
	if err != nil {
		return nil, err
	}
	return automata.NewNFA(p.states, p.alphabet, p.transitions, p.start, p.accepting)
}

// ParseENFA builds an e-NFA from the compact text form. λ or ε as the
// clause symbol makes an ε transition: "q0, λ, q1".
func ParseENFA(states, alphabet, transitions, start, accepting string) (*automata.ENFA, error) {
	p, err := parseMachine(states, alphabet, clauses(transitions), start, accepting, false)
	if err != nil {
		return nil, err
	}
	return automata.NewENFA(p.states, p.alphabet, p.transitions, p.start, p.accepting)
}

func parseMachine(states, alphabet string, rules []string, start, accepting string, singleDest bool) (*parts, error) {
	stateNames, err := list(states)
	if err != nil {
		return nil, err
	}
	symbolNames, err := list(alphabet)
	if err != nil {
		return nil, err
	}
	acceptingNames, err := list(accepting)
	if err != nil {
		return nil, err
	}
	return buildParts(stateNames, symbolNames, rules, start, acceptingNames, singleDest)
}

// buildParts assembles already-split name lists into constructor
// arguments; both the text form and the YAML form end up here.
func buildParts(stateNames, symbolNames, rules []string, start string, acceptingNames []string, singleDest bool) (*parts, error) {
	if len(stateNames) == 0 {
		return nil, fmt.Errorf("%w: no states declared", ErrSyntax)
	}
	p := &parts{
		states:    toStates(stateNames),
		alphabet:  toSymbols(symbolNames),
		start:     automata.State(strings.TrimSpace(start)),
		accepting: toStates(acceptingNames),
	}
	if p.start == "" {
		return nil, fmt.Errorf("%w: no start state", ErrSyntax)
	}
	var err error
	p.transitions, err = parseRules(rules, singleDest)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// parseRules turns transition clauses into Transitions. Each clause is
// "from, symbol, destination..." with at least one destination; the
// singleDest form (DFA) takes exactly one.
func parseRules(rules []string, singleDest bool) ([]automata.Transition, error) {
	var transitions []automata.Transition
	for _, rule := range rules {
		fields, err := cleanNames(strings.Split(rule, ","))
		if err != nil {
			return nil, fmt.Errorf("%w in transition %q", err, rule)
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: transition %q needs a state, a symbol and a destination", ErrSyntax, rule)
		}
		if singleDest && len(fields) != 3 {
			return nil, fmt.Errorf("%w: transition %q has several destinations; a DFA takes one", ErrSyntax, rule)
		}
		from := automata.State(fields[0])
		on := symbol(fields[1])
		for _, to := range fields[2:] {
			transitions = append(transitions, automata.Transition{From: from, On: on, To: automata.State(to)})
		}
	}
	return transitions, nil
}

// ParseGrammar builds a regular grammar from the textbook notation:
// non-terminals "S, A", terminals "a, b", productions
// "S -> a A | a ; A -> b" with ε (or λ) for the empty production, and
// the start non-terminal "S".
func ParseGrammar(nonTerminals, terminals, productions, start string) (*automata.Grammar, error) {
	ntNames, err := list(nonTerminals)
	if err != nil {
		return nil, err
	}
	if len(ntNames) == 0 {
		return nil, fmt.Errorf("%w: no non-terminals declared", ErrSyntax)
	}
	tNames, err := list(terminals)
	if err != nil {
		return nil, err
	}

	var prods []automata.Production
	for _, clause := range clauses(productions) {
		ps, err := parseProduction(clause)
		if err != nil {
			return nil, err
		}
		prods = append(prods, ps...)
	}

	s := automata.NonTerminal(strings.TrimSpace(start))
	if s == "" {
		return nil, fmt.Errorf("%w: no start non-terminal", ErrSyntax)
	}
	return automata.NewGrammar(toStates(ntNames), toSymbols(tNames), prods, s)
}

// parseProduction parses one clause "S -> a A | a" into one Production
// per alternative.
func parseProduction(clause string) ([]automata.Production, error) {
	lhs, rhs, ok := strings.Cut(clause, "->")
	if !ok {
		return nil, fmt.Errorf("%w: production %q needs ->", ErrSyntax, clause)
	}
	left := automata.NonTerminal(strings.TrimSpace(lhs))
	if left == "" {
		return nil, fmt.Errorf("%w: production %q has no left-hand side", ErrSyntax, clause)
	}

	var prods []automata.Production
	for _, alt := range strings.Split(rhs, "|") {
		tokens := strings.Fields(alt)
		if len(tokens) == 0 {
			return nil, fmt.Errorf("%w: empty alternative in %q; the empty string is spelled ε", ErrSyntax, clause)
		}
		if len(tokens) == 1 && (tokens[0] == Lambda || tokens[0] == string(automata.Epsilon)) {
			prods = append(prods, automata.Production{Left: left})
			continue
		}
		prods = append(prods, automata.Production{Left: left, Right: tokens})
	}
	return prods, nil
}
