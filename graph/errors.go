package graph

import "errors"

// Sentinel errors for StateGraph operations.
var (
	// ErrEmptyVertexName indicates a vertex name was the empty string.
	ErrEmptyVertexName = errors.New("graph: vertex name is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("graph: vertex not found")

	// ErrEdgeIndexOutOfRange indicates DeleteEdge was called with a bad index.
	ErrEdgeIndexOutOfRange = errors.New("graph: edge index out of range")

	// ErrNotEulerizable indicates Eulerize could not balance the graph by
	// duplicating existing edges.
	ErrNotEulerizable = errors.New("graph: graph cannot be made eulerian")
)
