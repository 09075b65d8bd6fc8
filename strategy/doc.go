// Package strategy turns a learned graph.StateGraph into concrete test
// walks: EdgeCover produces an Eulerian-circuit-style walk covering every
// edge at least once, NodeCover produces a small set of walks covering
// every reachable vertex.
//
// Both strategies operate on a Clone of the supplied graph, since both
// consume (delete) edges as they walk.
package strategy
