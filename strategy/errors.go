package strategy

import "errors"

var (
	// ErrNoPathAvailable indicates a vertex could not be reached from the
	// walk's starting vertex. NodeCover reports this per unreachable
	// vertex via Diagnostics rather than failing Travel outright.
	ErrNoPathAvailable = errors.New("strategy: no path available")

	// errEdgeVanished indicates a path chosen from a freshly computed
	// simple-path enumeration referenced an edge that is no longer live —
	// an invariant violation, since nothing else mutates the clone
	// between enumeration and commit.
	errEdgeVanished = errors.New("strategy: edge vanished between selection and commit")
)
