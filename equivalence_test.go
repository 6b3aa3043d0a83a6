package automata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// acceptor is any machine the language helpers can feed input to,
// which is all three automaton variants.
type acceptor interface {
	Accepts(input []Symbol) (bool, error)
}

// allInputs enumerates every string over alphabet up to maxLen symbols,
// shortest first. For a 2-symbol alphabet and maxLen 5 that's 63
// strings, plenty to separate two small machines that disagree.
func allInputs(alphabet []Symbol, maxLen int) [][]Symbol {
	inputs := [][]Symbol{{}}
	prev := [][]Symbol{{}}
	for l := 1; l <= maxLen; l++ {
		var next [][]Symbol
		for _, p := range prev {
			for _, a := range alphabet {
				in := make([]Symbol, len(p), len(p)+1)
				copy(in, p)
				next = append(next, append(in, a))
			}
		}
		inputs = append(inputs, next...)
		prev = next
	}
	return inputs
}

// language runs every input through m and returns the accepted subset,
// keyed by the concatenated symbol text.
func language(t *testing.T, m acceptor, inputs [][]Symbol) map[string]bool {
	t.Helper()
	lang := make(map[string]bool)
	for _, in := range inputs {
		ok, err := m.Accepts(in)
		require.NoError(t, err)
		if ok {
			lang[inputText(in)] = true
		}
	}
	return lang
}

func inputText(in []Symbol) string {
	s := ""
	for _, sym := range in {
		s += string(sym)
	}
	return s
}

func TestConversionsPreserveLanguage(t *testing.T) {
	type eCase struct {
		name    string
		enfa    *ENFA
		shoulds []string
		nopes   []string
	}
	tests := []eCase{
		{
			name:    "epsilon chain to a",
			enfa:    chainedENFA(t),
			shoulds: []string{"a"},
			nopes:   []string{"", "b", "aa", "ab", "ba"},
		},
		{
			name:    "epsilon cycle into a-loop",
			enfa:    cyclicENFA(t),
			shoulds: []string{"", "a", "aa", "aaaa"},
			nopes:   nil,
		},
		{
			name: "a-star b-star",
			enfa: mustENFA(t,
				[]State{"0", "1"},
				[]Symbol{"a", "b"},
				[]Transition{
					{From: "0", On: "a", To: "0"},
					{From: "0", On: Epsilon, To: "1"},
					{From: "1", On: "b", To: "1"},
				},
				"0", []State{"1"}),
			shoulds: []string{"", "a", "b", "ab", "aabb", "bb"},
			nopes:   []string{"ba", "aba", "abab"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			inputs := allInputs(tt.enfa.Alphabet(), 5)
			want := language(t, tt.enfa, inputs)

			for _, in := range tt.shoulds {
				assert.True(t, want[in], "e-NFA should accept %q", in)
			}
			for _, in := range tt.nopes {
				assert.False(t, want[in], "e-NFA should reject %q", in)
			}

			nfa := tt.enfa.EliminateEpsilon()
			assert.Equal(t, want, language(t, nfa, inputs), "ε elimination changed the language")

			dfa := tt.enfa.ToDFA()
			assert.Equal(t, want, language(t, dfa, inputs), "subset construction changed the language")

			assert.Equal(t, want, language(t, nfa.ToDFA(), inputs))
			assert.Equal(t, want, language(t, dfa.Totalize(), inputs), "totalization changed the language")
		})
	}
}

func TestNFAToDFAPreservesLanguage(t *testing.T) {
	type nCase struct {
		name string
		nfa  *NFA
	}
	tests := []nCase{
		{"fork on a", forkNFA(t)},
		{"guess the last symbol", mustNFA(t,
			[]State{"0", "1", "2"},
			[]Symbol{"a", "b"},
			[]Transition{
				{From: "0", On: "a", To: "0"},
				{From: "0", On: "b", To: "0"},
				{From: "0", On: "a", To: "1"},
				{From: "1", On: "b", To: "2"},
			},
			"0", []State{"2"})},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			inputs := allInputs(tt.nfa.Alphabet(), 5)
			want := language(t, tt.nfa, inputs)
			assert.Equal(t, want, language(t, tt.nfa.ToDFA(), inputs))
		})
	}
}

func TestGrammarRoundTrip(t *testing.T) {
	type dCase struct {
		name string
		dfa  *DFA
	}
	tests := []dCase{
		{"suffix aba", suffixDFA(t)},
		{"one or more a", forkNFA(t).ToDFA()},
		{"epsilon chain", chainedENFA(t).ToDFA()},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.dfa.ToGrammar()
			require.NoError(t, err)
			back, err := g.ToDFA()
			require.NoError(t, err)

			inputs := allInputs(tt.dfa.Alphabet(), 5)
			assert.Equal(t, language(t, tt.dfa, inputs), language(t, back, inputs),
				"round-tripped DFA accepts a different language")
		})
	}
}
