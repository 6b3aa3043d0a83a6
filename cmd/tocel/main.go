package main

import (
	"flag"
	"fmt"
	"os"

	u "github.com/araddon/gou"

	"github.com/Hardvan/ToC-EL"
	"github.com/Hardvan/ToC-EL/def"
	"github.com/Hardvan/ToC-EL/dot"
)

var (
	defFile  = flag.String("def", "", "definition file (yaml)")
	to       = flag.String("to", "", "convert first [dfa|grammar]")
	total    = flag.Bool("total", false, "totalize the DFA with a reject sink")
	input    = flag.String("input", "", "simulate this input string")
	dotFile  = flag.String("dot", "", "write the machine diagram (DOT) here")
	traceDot = flag.String("trace-dot", "", "write the highlighted run diagram (DOT) here; needs -input")
	logLevel = flag.String("loglevel", "info", "log level [debug|info|warn|error]")
)

// machine is any automaton variant: drawable and simulatable. Grammars
// travel separately because they are neither until converted.
type machine interface {
	dot.Machine
	Accepts(input []automata.Symbol) (bool, error)
	Trace(input []automata.Symbol) (*automata.Path, error)
}

func main() {
	flag.Parse()
	u.SetupLogging(*logLevel)
	u.SetColorIfTerminal()

	if *defFile == "" {
		u.Errorf("must give a definition file: -def machine.yaml")
		os.Exit(1)
	}
	if err := run(); err != nil {
		u.Errorf("%v", err)
		os.Exit(1)
	}
}

func run() error {
	// -input "" is a real simulation (of the empty string), so presence
	// matters, not the value
	simulate := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "input" {
			simulate = true
		}
	})

	d, err := def.Load(*defFile)
	if err != nil {
		return err
	}
	u.Debugf("loaded %s definition from %s", d.Kind, *defFile)

	m, g, err := build(d)
	if err != nil {
		return err
	}
	m, g, err = convert(m, g)
	if err != nil {
		return err
	}

	if g != nil {
		if simulate || *dotFile != "" || *traceDot != "" {
			return fmt.Errorf("a grammar cannot be simulated or drawn; add -to dfa")
		}
		fmt.Print(g)
		return nil
	}

	if !simulate && *dotFile == "" && *traceDot == "" {
		fmt.Print(m)
		return nil
	}

	var path *automata.Path
	if simulate {
		path, err = m.Trace(automata.Symbols(*input))
		if err != nil {
			return err
		}
		printPath(path)
	}
	if *dotFile != "" {
		if err := os.WriteFile(*dotFile, []byte(dot.Render(m)), 0o644); err != nil {
			return err
		}
		u.Infof("wrote %s", *dotFile)
	}
	if *traceDot != "" {
		if path == nil {
			return fmt.Errorf("-trace-dot needs -input")
		}
		if err := os.WriteFile(*traceDot, []byte(dot.RenderPath(m, path)), 0o644); err != nil {
			return err
		}
		u.Infof("wrote %s", *traceDot)
	}
	return nil
}

// build turns the definition into a machine or a grammar; exactly one
// of the two results is non-nil.
func build(d *def.Definition) (machine, *automata.Grammar, error) {
	switch d.Kind {
	case def.KindDFA:
		m, err := d.DFA()
		if err != nil {
			return nil, nil, err
		}
		return m, nil, nil
	case def.KindNFA:
		m, err := d.NFA()
		if err != nil {
			return nil, nil, err
		}
		return m, nil, nil
	case def.KindENFA:
		m, err := d.ENFA()
		if err != nil {
			return nil, nil, err
		}
		return m, nil, nil
	case def.KindGrammar:
		g, err := d.Grammar()
		if err != nil {
			return nil, nil, err
		}
		return nil, g, nil
	}
	return nil, nil, fmt.Errorf("unknown kind %q", d.Kind)
}

func convert(m machine, g *automata.Grammar) (machine, *automata.Grammar, error) {
	switch *to {
	case "":
	case "dfa":
		switch v := m.(type) {
		case *automata.DFA:
			u.Debugf("definition is already a DFA")
		case *automata.NFA:
			m = v.ToDFA()
		case *automata.ENFA:
			m = v.ToDFA()
		case nil:
			d, err := g.ToDFA()
			if err != nil {
				return nil, nil, err
			}
			m, g = d, nil
		}
	case "grammar":
		if g != nil {
			break
		}
		d, ok := m.(*automata.DFA)
		if !ok {
			return nil, nil, fmt.Errorf("-to grammar needs a deterministic machine; add -to dfa first or supply a dfa definition")
		}
		gg, err := d.ToGrammar()
		if err != nil {
			return nil, nil, err
		}
		m, g = nil, gg
	default:
		return nil, nil, fmt.Errorf("unknown -to target %q (want dfa or grammar)", *to)
	}

	if *total {
		d, ok := m.(*automata.DFA)
		if !ok {
			return nil, nil, fmt.Errorf("-total needs a DFA; add -to dfa")
		}
		m = d.Totalize()
	}
	return m, g, nil
}

func printPath(p *automata.Path) {
	fmt.Printf("start: %v\n", p.Start)
	for _, st := range p.Steps {
		fmt.Printf("  %s -> %v\n", st.On, st.States)
	}
	if p.Accepted {
		fmt.Println("accepted")
	} else {
		fmt.Println("rejected")
	}
}
