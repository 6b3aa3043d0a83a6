package def

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Hardvan/ToC-EL"
)

// Definition kinds.
const (
	KindDFA     = "dfa"
	KindNFA     = "nfa"
	KindENFA    = "enfa"
	KindGrammar = "grammar"
)

// Definition is one YAML definition document. The kind tag picks the
// variant; machine kinds use states/alphabet/transitions/start/
// accepting, the grammar kind uses nonterminals/terminals/productions/
// start. Transition and production entries are clauses in the same
// text form the Parse functions take, so
//
//	kind: enfa
//	states: [q0, q1, q2]
//	alphabet: [a, b]
//	transitions:
//	  - q0, λ, q1
//	  - q1, a, q2
//	start: q0
//	accepting: [q2]
//
// is a complete document.
type Definition struct {
	Kind         string   `yaml:"kind"`
	States       []string `yaml:"states,omitempty"`
	Alphabet     []string `yaml:"alphabet,omitempty"`
	Transitions  []string `yaml:"transitions,omitempty"`
	Start        string   `yaml:"start"`
	Accepting    []string `yaml:"accepting,omitempty"`
	NonTerminals []string `yaml:"nonterminals,omitempty"`
	Terminals    []string `yaml:"terminals,omitempty"`
	Productions  []string `yaml:"productions,omitempty"`
}

// Decode reads one YAML definition document from r. Unknown fields and
// unknown kinds are ErrSyntax; the kind tag is case-insensitive and
// comes back folded to lower case.
func Decode(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var d Definition
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	d.Kind = strings.ToLower(strings.TrimSpace(d.Kind))
	switch d.Kind {
	case KindDFA, KindNFA, KindENFA, KindGrammar:
	case "":
		return nil, fmt.Errorf("%w: missing kind", ErrSyntax)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrSyntax, d.Kind)
	}
	return &d, nil
}

// Load reads the YAML definition file at path.
func Load(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// DFA builds the machine from a kind: dfa document.
func (d *Definition) DFA() (*automata.DFA, error) {
	p, err := d.machineParts(KindDFA, true)
	if err != nil {
		return nil, err
	}
	return automata.NewDFA(p.states, p.alphabet, p.transitions, p.start, p.accepting)
}

// NFA builds the machine from a kind: nfa document.
func (d *Definition) NFA() (*automata.NFA, error) {
	p, err := d.machineParts(KindNFA, false)
	if err != nil {
		return nil, err
	}
	return automata.NewNFA(p.states, p.alphabet, p.transitions, p.start, p.accepting)
}

// ENFA builds the machine from a kind: enfa document.
func (d *Definition) ENFA() (*automata.ENFA, error) {
	p, err := d.machineParts(KindENFA, false)
	if err != nil {
		return nil, err
	}
	return automata.NewENFA(p.states, p.alphabet, p.transitions, p.start, p.accepting)
}

// Grammar builds the grammar from a kind: grammar document.
func (d *Definition) Grammar() (*automata.Grammar, error) {
	if d.Kind != KindGrammar {
		return nil, fmt.Errorf("%w: definition kind is %q, not %q", ErrSyntax, d.Kind, KindGrammar)
	}
	ntNames, err := cleanNames(d.NonTerminals)
	if err != nil {
		return nil, err
	}
	if len(ntNames) == 0 {
		return nil, fmt.Errorf("%w: no non-terminals declared", ErrSyntax)
	}
	tNames, err := cleanNames(d.Terminals)
	if err != nil {
		return nil, err
	}

	var prods []automata.Production
	for _, clause := range d.Productions {
		ps, err := parseProduction(clause)
		if err != nil {
			return nil, err
		}
		prods = append(prods, ps...)
	}

	start := automata.NonTerminal(strings.TrimSpace(d.Start))
	if start == "" {
		return nil, fmt.Errorf("%w: no start non-terminal", ErrSyntax)
	}
	return automata.NewGrammar(toStates(ntNames), toSymbols(tNames), prods, start)
}

func (d *Definition) machineParts(kind string, singleDest bool) (*parts, error) {
	if d.Kind != kind {
		return nil, fmt.Errorf("%w: definition kind is %q, not %q", ErrSyntax, d.Kind, kind)
	}
	stateNames, err := cleanNames(d.States)
	if err != nil {
		return nil, err
	}
	symbolNames, err := cleanNames(d.Alphabet)
	if err != nil {
		return nil, err
	}
	acceptingNames, err := cleanNames(d.Accepting)
	if err != nil {
		return nil, err
	}
	return buildParts(stateNames, symbolNames, d.Transitions, d.Start, acceptingNames, singleDest)
}
