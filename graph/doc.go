// Package graph implements the StateGraph: a thread-safe, directed labeled
// multigraph used by the explorer package to record a learned finite state
// machine, and by the strategy package as the traversal surface for test
// sequence generation.
//
// Unlike a general-purpose graph library, a StateGraph always allows
// parallel edges (two states can be connected by more than one event) and
// self-loops (an event can map a state back to itself), and is always
// directed — there is no undirected/weighted/loop-toggle configuration
// surface. Vertices and edges carry opaque attribute maps used by the
// explorer to stash the State/Event payloads behind each transition.
//
// Layout: types.go holds the data model,
// methods_vertices.go/methods_edges.go/methods_clone.go the CRUD surface,
// algorithms.go the BFS/shortest-path/simple-paths/Eulerian classification,
// and csv.go the CSV interchange format.
package graph
