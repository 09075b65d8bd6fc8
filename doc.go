// Package ait infers the finite state machine of an opaque system under
// test by firing events and observing the resulting state, then derives
// test walks from the learned machine.
//
// Three subpackages do the work:
//
//	graph/    — StateGraph, a thread-safe directed labeled multigraph, plus
//	            BFS/shortest-path/simple-path/Eulerian algorithms and the
//	            CSV interchange format.
//	explorer/ — the SUT/Event/State contract and the Explorer that drives
//	            discovery until every known state is mature.
//	strategy/ — EdgeCover (Hierholzer after Eulerizing) and NodeCover
//	            (greedy simple-path set cover), both operating on a cloned
//	            StateGraph.
//
// A typical driver constructs a concrete SUT and Alphabet, builds an
// Explorer, calls Explore once, then hands the resulting StateGraph to
// whichever strategy produces the walks it needs.
package ait
