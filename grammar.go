package automata

import (
	"fmt"
	"slices"
	"strings"
)

// NonTerminal names one non-terminal of a regular grammar. It aliases
// State because the Grammar Bridge identifies the two: non-terminals
// become DFA states and DFA states become non-terminals.
type NonTerminal = State

// Production is one rewrite rule. Right holds the right-hand side as a
// sequence of declared terminal and non-terminal names; an empty Right
// is the ε production, which marks Left as accepting. The right-linear
// shapes the bridge accepts are ε, one terminal, and one terminal
// followed by one non-terminal.
type Production struct {
	Left  NonTerminal
	Right []string
}

// IsEpsilon reports whether p rewrites to the empty string.
func (p Production) IsEpsilon() bool {
	return len(p.Right) == 0
}

func (p Production) String() string {
	if p.IsEpsilon() {
		return fmt.Sprintf("%s -> ε", p.Left)
	}
	return fmt.Sprintf("%s -> %s", p.Left, strings.Join(p.Right, " "))
}

// Grammar is a regular grammar: non-terminals, terminals, productions
// and one distinguished start non-terminal. Like the automaton types it
// is validated on construction and read-only afterwards.
type Grammar struct {
	nonTerminals []NonTerminal
	ntSet        map[NonTerminal]bool
	terminals    []Symbol
	termSet      map[Symbol]bool
	productions  []Production
	start        NonTerminal
}

// NewGrammar validates and builds a grammar. The error is
// ErrMalformedGrammar (wrapped with detail) if ε is declared as a
// terminal, a name is declared both terminal and non-terminal, or the
// start symbol or any production mentions an undeclared name. Shape
// violations (productions that are not right-linear) are the
// conversion's business and are reported by ToDFA, not here.
func NewGrammar(nonTerminals []NonTerminal, terminals []Symbol, productions []Production, start NonTerminal) (*Grammar, error) {
	g := &Grammar{
		ntSet:   make(map[NonTerminal]bool, len(nonTerminals)),
		termSet: make(map[Symbol]bool, len(terminals)),
		start:   start,
	}
	for _, nt := range nonTerminals {
		if !g.ntSet[nt] {
			g.ntSet[nt] = true
			g.nonTerminals = append(g.nonTerminals, nt)
		}
	}
	for _, t := range terminals {
		if t == Epsilon {
			return nil, fmt.Errorf("%w: ε cannot be declared as a terminal", ErrMalformedGrammar)
		}
		if g.ntSet[NonTerminal(t)] {
			return nil, fmt.Errorf("%w: %q is declared both terminal and non-terminal", ErrMalformedGrammar, t)
		}
		if !g.termSet[t] {
			g.termSet[t] = true
			g.terminals = append(g.terminals, t)
		}
	}
	if !g.ntSet[start] {
		return nil, fmt.Errorf("%w: start symbol %q is not a declared non-terminal", ErrMalformedGrammar, start)
	}
	for _, p := range productions {
		if !g.ntSet[p.Left] {
			return nil, fmt.Errorf("%w: production %q rewrites undeclared non-terminal %q", ErrMalformedGrammar, p, p.Left)
		}
		for _, name := range p.Right {
			if !g.termSet[Symbol(name)] && !g.ntSet[NonTerminal(name)] {
				return nil, fmt.Errorf("%w: production %q uses undeclared name %q", ErrMalformedGrammar, p, name)
			}
		}
		g.productions = append(g.productions, Production{Left: p.Left, Right: slices.Clone(p.Right)})
	}
	return g, nil
}

// Start returns the start non-terminal.
func (g *Grammar) Start() NonTerminal {
	return g.start
}

// NonTerminals returns the non-terminals in declaration order.
func (g *Grammar) NonTerminals() []NonTerminal {
	return slices.Clone(g.nonTerminals)
}

// Terminals returns the terminal alphabet in declaration order.
func (g *Grammar) Terminals() []Symbol {
	return slices.Clone(g.terminals)
}

// Productions returns the production list in declaration order.
func (g *Grammar) Productions() []Production {
	ps := make([]Production, len(g.productions))
	for i, p := range g.productions {
		ps[i] = Production{Left: p.Left, Right: slices.Clone(p.Right)}
	}
	return ps
}

func (g *Grammar) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "start: %s\n", g.start)
	for _, p := range g.productions {
		sb.WriteString(p.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ToDFA converts the grammar to a DFA accepting the language it
// generates. Non-terminals become states; N -> a M becomes the
// transition N --a--> M; N -> a becomes N --a--> Accept, one shared
// synthetic accepting state with no outgoing transitions, created only
// if some terminal-only production needs it; N -> ε marks N itself
// accepting. Productions like S -> a A | a make that machine
// nondeterministic, so the result is passed through subset
// construction, which is also why the returned state labels are
// subset labels rather than bare non-terminal names. The error is
// ErrAmbiguousGrammar (wrapped with the offending production) if any
// production is not right-linear.
func (g *Grammar) ToDFA() (*DFA, error) {
	for _, p := range g.productions {
		if err := g.checkRightLinear(p); err != nil {
			return nil, err
		}
	}

	accept := NonTerminal("Accept")
	for g.ntSet[accept] {
		accept += "'"
	}

	states := g.NonTerminals()
	var transitions []Transition
	var accepting []State
	acceptUsed := false
	for _, p := range g.productions {
		switch len(p.Right) {
		case 0:
			accepting = append(accepting, p.Left)
		case 1:
			transitions = append(transitions, Transition{From: p.Left, On: Symbol(p.Right[0]), To: accept})
			acceptUsed = true
		case 2:
			transitions = append(transitions, Transition{From: p.Left, On: Symbol(p.Right[0]), To: State(p.Right[1])})
		}
	}
	if acceptUsed {
		states = append(states, accept)
		accepting = append(accepting, accept)
	}

	nfa, err := NewNFA(states, g.Terminals(), transitions, g.start, accepting)
	if err != nil {
		// right-linearity was checked and every name is declared
		panic("grammar conversion built an invalid NFA: " + err.Error())
	}
	return nfa.ToDFA(), nil
}

// checkRightLinear enforces the three production shapes: ε, a single
// terminal, or a terminal followed by a non-terminal.
func (g *Grammar) checkRightLinear(p Production) error {
	if len(p.Right) == 0 {
		return nil
	}
	if g.ntSet[NonTerminal(p.Right[0])] {
		return fmt.Errorf("%w: production %q has a non-terminal before any terminal", ErrAmbiguousGrammar, p)
	}
	if len(p.Right) == 1 {
		return nil
	}
	if len(p.Right) > 2 {
		return fmt.Errorf("%w: production %q is longer than terminal plus non-terminal", ErrAmbiguousGrammar, p)
	}
	if !g.ntSet[NonTerminal(p.Right[1])] {
		return fmt.Errorf("%w: production %q has two terminals in a row", ErrAmbiguousGrammar, p)
	}
	return nil
}

// ToGrammar converts the DFA to the regular grammar generating its
// language: one non-terminal per state, one production N -> a M per
// transition N --a--> M, and one ε production per accepting state; the
// start non-terminal is the start state. The error is
// ErrMalformedGrammar if a state name collides with an alphabet
// symbol, which would make the production vocabulary ambiguous.
// Converting the result back with Grammar.ToDFA yields a DFA accepting
// the same language, though subset construction relabels the states.
func (d *DFA) ToGrammar() (*Grammar, error) {
	var productions []Production
	for _, t := range d.Transitions() {
		productions = append(productions, Production{Left: t.From, Right: []string{string(t.On), string(t.To)}})
	}
	for _, s := range d.AcceptingStates() {
		productions = append(productions, Production{Left: s})
	}
	return NewGrammar(d.States(), d.Alphabet(), productions, d.start)
}
