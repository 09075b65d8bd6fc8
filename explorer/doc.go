// Package explorer drives an opaque System Under Test (SUT) through its
// event alphabet, observes the resulting states, and records transitions
// into a Maze and a graph.StateGraph until every discovered state is
// mature — every event in the alphabet has a known outcome from it.
//
// The package owns no concrete SUT: callers implement SUT, Event and State
// against their own test harness. Explorer only ever calls through those
// three interfaces plus the optional Validator.
package explorer
