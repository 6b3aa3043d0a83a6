package automata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// suffixDFA accepts exactly the strings over {a,b} ending in "aba",
// tracking how much of the suffix has been seen.
func suffixDFA(t *testing.T) *DFA {
	t.Helper()
	return mustDFA(t,
		[]State{"q0", "q1", "q2", "q3"},
		[]Symbol{"a", "b"},
		[]Transition{
			{From: "q0", On: "a", To: "q1"},
			{From: "q0", On: "b", To: "q0"},
			{From: "q1", On: "a", To: "q1"},
			{From: "q1", On: "b", To: "q2"},
			{From: "q2", On: "a", To: "q3"},
			{From: "q2", On: "b", To: "q0"},
			{From: "q3", On: "a", To: "q1"},
			{From: "q3", On: "b", To: "q2"},
		},
		"q0", []State{"q3"})
}

func TestUnknownSymbolRejectedBeforeTracing(t *testing.T) {
	d := suffixDFA(t)

	p, err := d.Trace(Symbols("xaba"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSymbolNotInAlphabet)
	assert.Contains(t, err.Error(), "position 0")
	assert.Nil(t, p, "no partial trace on bad input")

	// the bad symbol needn't be first: the whole input is checked
	// before the first step
	p, err = d.Trace(Symbols("abxa"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSymbolNotInAlphabet)
	assert.Contains(t, err.Error(), "position 2")
	assert.Nil(t, p)

	_, err = d.Accepts(Symbols("xaba"))
	assert.ErrorIs(t, err, ErrSymbolNotInAlphabet)
}

func TestUnknownSymbolOnSetMachines(t *testing.T) {
	_, err := forkNFA(t).Trace(Symbols("ax"))
	assert.ErrorIs(t, err, ErrSymbolNotInAlphabet)

	_, err = chainedENFA(t).Trace(Symbols("λ"))
	assert.ErrorIs(t, err, ErrSymbolNotInAlphabet)
}

func TestDFATrace(t *testing.T) {
	d := suffixDFA(t)

	p, err := d.Trace(Symbols("aba"))
	require.NoError(t, err)
	assert.Equal(t, []State{"q0"}, p.Start)
	want := []Step{
		{On: "a", States: []State{"q1"}},
		{On: "b", States: []State{"q2"}},
		{On: "a", States: []State{"q3"}},
	}
	assert.Equal(t, want, p.Steps)
	assert.True(t, p.Accepted)
	assert.Equal(t, []State{"q3"}, p.Last())

	p, err = d.Trace(Symbols("abab"))
	require.NoError(t, err)
	assert.False(t, p.Accepted)
	assert.Equal(t, []State{"q2"}, p.Last())
}

func TestDFATraceStopsAtUndefinedTransition(t *testing.T) {
	d := mustDFA(t,
		[]State{"s", "u"},
		[]Symbol{"a", "b"},
		[]Transition{{From: "s", On: "a", To: "u"}},
		"s", []State{"u"})

	// u has no way out on b: the run dies there even though u accepts
	p, err := d.Trace(Symbols("ab"))
	require.NoError(t, err)
	require.Len(t, p.Steps, 1)
	assert.Equal(t, Step{On: "a", States: []State{"u"}}, p.Steps[0])
	assert.False(t, p.Accepted)

	p, err = d.Trace(Symbols("b"))
	require.NoError(t, err)
	assert.Empty(t, p.Steps)
	assert.False(t, p.Accepted)
	assert.Equal(t, []State{"s"}, p.Last())
}

func TestEmptyInput(t *testing.T) {
	accepting := mustDFA(t,
		[]State{"q0"}, []Symbol{"a"}, nil, "q0", []State{"q0"})
	ok, err := accepting.Accepts(Symbols(""))
	require.NoError(t, err)
	assert.True(t, ok)

	rejecting := suffixDFA(t)
	ok, err = rejecting.Accepts(Symbols(""))
	require.NoError(t, err)
	assert.False(t, ok)

	p, err := accepting.Trace(nil)
	require.NoError(t, err)
	assert.Empty(t, p.Steps)
	assert.Equal(t, []State{"q0"}, p.Last())
	assert.True(t, p.Accepted)
}

func TestEmptyInputThroughEpsilonChain(t *testing.T) {
	e := mustENFA(t,
		[]State{"0", "1"},
		[]Symbol{"a"},
		[]Transition{{From: "0", On: Epsilon, To: "1"}},
		"0", []State{"1"})

	ok, err := e.Accepts(Symbols(""))
	require.NoError(t, err)
	assert.True(t, ok, "ε chain to an accepting state accepts the empty string")
}

func TestNFATraceTracksStateSets(t *testing.T) {
	n := forkNFA(t)

	p, err := n.Trace(Symbols("aa"))
	require.NoError(t, err)
	assert.Equal(t, []State{"0"}, p.Start)
	want := []Step{
		{On: "a", States: []State{"0", "1"}},
		{On: "a", States: []State{"0", "1"}},
	}
	assert.Equal(t, want, p.Steps)
	assert.True(t, p.Accepted)
}

func TestNFATraceDeadRunStops(t *testing.T) {
	n := forkNFA(t)

	// b kills every branch; the empty set is recorded once and the
	// rest of the input is left unconsumed
	p, err := n.Trace(Symbols("baa"))
	require.NoError(t, err)
	require.Len(t, p.Steps, 1)
	assert.Equal(t, Symbol("b"), p.Steps[0].On)
	assert.Empty(t, p.Steps[0].States)
	assert.False(t, p.Accepted)
}

func TestENFATraceClosesEveryStep(t *testing.T) {
	e := chainedENFA(t)

	p, err := e.Trace(Symbols("a"))
	require.NoError(t, err)
	// the start set is already ε-closed
	assert.Equal(t, []State{"0", "1"}, p.Start)
	require.Len(t, p.Steps, 1)
	assert.Equal(t, Step{On: "a", States: []State{"2"}}, p.Steps[0])
	assert.True(t, p.Accepted)
}

func TestPathIsCallerOwned(t *testing.T) {
	d := suffixDFA(t)

	p1, err := d.Trace(Symbols("aba"))
	require.NoError(t, err)
	p2, err := d.Trace(Symbols("aba"))
	require.NoError(t, err)

	p1.Steps[0].States[0] = "mutated"
	p1.Input[0] = "mutated"
	assert.Equal(t, []State{"q1"}, p2.Steps[0].States)
	assert.Equal(t, Symbol("a"), p2.Input[0])
}
