// Package dot renders automata as Graphviz DOT text, ready for any
// dot-compatible tool. Accepting states draw as double circles, the
// start state is filled lightblue, and RenderPath additionally marks
// the states and edges one simulation run visited. The core never
// imports this package; it consumes machines through the small Machine
// interface and nothing else.
package dot

import (
	"fmt"
	"strings"

	"github.com/Hardvan/ToC-EL"
)

// Machine is the renderer's view of an automaton: states with an
// accepting flag, the transition list and the start state. All three
// automaton variants satisfy it.
type Machine interface {
	Start() automata.State
	States() []automata.State
	Transitions() []automata.Transition
	IsAccepting(automata.State) bool
}

// edge is one arrow of the diagram: parallel transitions between the
// same pair of states merge into a single comma-joined label.
type edge struct {
	from, to  automata.State
	label     string
	steps     []int
	traversed bool
}

// Render returns the DOT text for m. Output is deterministic: nodes in
// state-list order, edges in transition-list order.
func Render(m Machine) string {
	return render(m, nil, nil, "")
}

// RenderPath returns the DOT text for m with one run marked: every
// state the run visited is outlined red, each edge taken on a symbol
// carries the step numbers that crossed it, and ε edges inside a
// visited closure are colored without a number. The graph caption
// shows the input and the verdict.
func RenderPath(m Machine, p *automata.Path) string {
	visited := make(map[automata.State]bool)
	for _, s := range p.Start {
		visited[s] = true
	}
	for _, st := range p.Steps {
		for _, s := range st.States {
			visited[s] = true
		}
	}

	verdict := "rejected"
	if p.Accepted {
		verdict = "accepted"
	}
	caption := fmt.Sprintf("%s: %s", inputText(p.Input), verdict)

	return render(m, visited, p, caption)
}

func render(m Machine, visited map[automata.State]bool, p *automata.Path, caption string) string {
	edges := mergeEdges(m.Transitions())
	if p != nil {
		markPath(m, p, edges)
	}

	var sb strings.Builder
	sb.WriteString("digraph automaton {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle];\n")
	if caption != "" {
		fmt.Fprintf(&sb, "  label=%s;\n  labelloc=b;\n", quote(caption))
	}
	sb.WriteString("\n")

	start := m.Start()
	for _, s := range m.States() {
		var attrs []string
		if m.IsAccepting(s) {
			attrs = append(attrs, "shape=doublecircle")
		}
		if s == start {
			attrs = append(attrs, "style=filled", "fillcolor=lightblue")
		}
		if visited[s] {
			attrs = append(attrs, "color=red")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&sb, "  %s;\n", quote(string(s)))
		} else {
			fmt.Fprintf(&sb, "  %s [%s];\n", quote(string(s)), strings.Join(attrs, ", "))
		}
	}
	sb.WriteString("\n")

	for _, e := range edges {
		label := e.label
		if len(e.steps) > 0 {
			label += " (" + stepList(e.steps) + ")"
		}
		var attrs []string
		if len(e.steps) > 0 || e.traversed {
			attrs = append(attrs, "color=red", "fontcolor=red", "penwidth=2")
		}
		fmt.Fprintf(&sb, "  %s -> %s [label=%s", quote(string(e.from)), quote(string(e.to)), quote(label))
		for _, a := range attrs {
			sb.WriteString(", ")
			sb.WriteString(a)
		}
		sb.WriteString("];\n")
	}

	sb.WriteString("}\n")
	return sb.String()
}

// mergeEdges folds the transition list into one edge per (from, to)
// pair, labels joined in transition-list order.
func mergeEdges(ts []automata.Transition) []*edge {
	index := make(map[[2]automata.State]*edge)
	var edges []*edge
	for _, t := range ts {
		key := [2]automata.State{t.From, t.To}
		e := index[key]
		if e == nil {
			e = &edge{from: t.From, to: t.To}
			index[key] = e
			edges = append(edges, e)
		}
		if e.label != "" {
			e.label += ", "
		}
		e.label += string(t.On)
	}
	return edges
}

// markPath decorates edges with the run recorded in p: step i crossed
// every transition on that step's symbol leading from the previous
// state set into the new one, and an ε edge counts as traversed when
// both its ends sit inside the same visited set.
func markPath(m Machine, p *automata.Path, edges []*edge) {
	index := make(map[[2]automata.State]*edge, len(edges))
	for _, e := range edges {
		index[[2]automata.State{e.from, e.to}] = e
	}

	ts := m.Transitions()
	prev := p.Start
	for i, st := range p.Steps {
		from := stateSet(prev)
		to := stateSet(st.States)
		for _, t := range ts {
			if t.On != st.On || !from[t.From] || !to[t.To] {
				continue
			}
			e := index[[2]automata.State{t.From, t.To}]
			e.steps = append(e.steps, i+1)
		}
		prev = st.States
	}

	sets := [][]automata.State{p.Start}
	for _, st := range p.Steps {
		sets = append(sets, st.States)
	}
	for _, states := range sets {
		in := stateSet(states)
		for _, t := range ts {
			if t.On == automata.Epsilon && in[t.From] && in[t.To] {
				index[[2]automata.State{t.From, t.To}].traversed = true
			}
		}
	}
}

func stateSet(states []automata.State) map[automata.State]bool {
	set := make(map[automata.State]bool, len(states))
	for _, s := range states {
		set[s] = true
	}
	return set
}

func stepList(steps []int) string {
	var sb strings.Builder
	for i, n := range steps {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", n)
	}
	return sb.String()
}

func inputText(input []automata.Symbol) string {
	if len(input) == 0 {
		return string(automata.Epsilon)
	}
	var sb strings.Builder
	for _, sym := range input {
		sb.WriteString(string(sym))
	}
	return sb.String()
}

// quote wraps s in DOT double quotes, escaping quotes and backslashes.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}
