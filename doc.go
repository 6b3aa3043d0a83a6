// Package automata supports building finite automata (DFA, NFA and
// NFA-with-ε variants) and right-linear regular grammars, converting
// between the representations, and simulating input strings against
// them.  Conversions (ε elimination, subset construction, the grammar
// bridge) always return fresh machines; everything is read-only after
// construction, so one machine can serve any number of concurrent
// conversions and simulations.  Serialization lives in package def and
// diagram rendering in package dot; this package is the model and the
// algorithms only.
package automata
