package graph

import "sort"

// WeaklyConnected reports whether every vertex is reachable from any single
// vertex when edges are treated as undirected. An empty graph is not
// connected.
//
// Complexity: O(V + E).
func WeaklyConnected(g *StateGraph) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.weaklyConnectedLocked()
}

// undirectedAdjacencyLocked builds an undirected adjacency view from the
// live directed edges. Must be called with mu already held (read or write).
func (g *StateGraph) undirectedAdjacencyLocked() map[string][]string {
	adj := make(map[string][]string, len(g.vertices))
	for _, e := range g.edges {
		if e == nil {
			continue
		}
		adj[e.tail] = append(adj[e.tail], e.head)
		if e.head != e.tail {
			adj[e.head] = append(adj[e.head], e.tail)
		}
	}
	return adj
}

// BFS returns the breadth-first visitation order from start. Empty if
// start is not in the graph. Ties among same-depth vertices are broken by
// edge-insertion order, since out-edges are scanned in EdgeIndicesFrom
// order at each vertex.
//
// Complexity: O(V + E).
func (g *StateGraph) BFS(start string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.vertices[start]; !ok {
		return nil
	}

	order := make([]string, 0, len(g.vertices))
	seen := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)
		for _, idx := range g.adjOut[cur] {
			e := g.edges[idx]
			if e == nil || seen[e.head] {
				continue
			}
			seen[e.head] = true
			queue = append(queue, e.head)
		}
	}

	return order
}

// ShortestPath returns a minimum-edge-count path from src to dst as an
// Arrow sequence, or nil if none exists (src==dst also yields nil: zero
// edges to traverse). Among equal-length paths, the first discovered by
// BFS (edge-insertion order) is returned.
//
// Complexity: O(V + E).
func (g *StateGraph) ShortestPath(src, dst string) []Arrow {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.shortestPathLocked(src, dst)
}

// AllSimplePathsFrom enumerates every path starting at v that never
// repeats a vertex (including the trivial single-vertex path), as vertex
// ID sequences, sorted ascending by length (number of vertices).
//
// Complexity: exponential in the worst case (as many simple paths as a
// dense graph can have); intended for the small, hand-built FSMs this
// package targets.
func (g *StateGraph) AllSimplePathsFrom(v string) [][]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.vertices[v]; !ok {
		return nil
	}

	var paths [][]string
	visited := map[string]bool{v: true}
	cur := []string{v}

	var walk func(string)
	walk = func(at string) {
		paths = append(paths, append([]string(nil), cur...))
		for _, idx := range g.adjOut[at] {
			e := g.edges[idx]
			if e == nil || visited[e.head] {
				continue
			}
			visited[e.head] = true
			cur = append(cur, e.head)
			walk(e.head)
			cur = cur[:len(cur)-1]
			visited[e.head] = false
		}
	}
	walk(v)

	sort.SliceStable(paths, func(i, j int) bool { return len(paths[i]) < len(paths[j]) })

	return paths
}

// degreesLocked returns per-vertex (out, in) degree counts over live edges.
// Must be called with mu already held.
func (g *StateGraph) degreesLocked() map[string][2]int {
	deg := make(map[string][2]int, len(g.vertices))
	for name := range g.vertices {
		deg[name] = [2]int{}
	}
	for _, e := range g.edges {
		if e == nil {
			continue
		}
		o := deg[e.tail]
		o[0]++
		deg[e.tail] = o
		in := deg[e.head]
		in[1]++
		deg[e.head] = in
	}
	return deg
}

// Eulerian classifies a StateGraph's traversability.
type Eulerian int

const (
	// EulerianNone: the graph is not weakly connected, or has more than one
	// hub/sink vertex, or some vertex's degree imbalance exceeds 1.
	EulerianNone Eulerian = iota
	// EulerianCircuit: every vertex is balanced (out == in); a closed walk
	// can traverse every edge exactly once.
	EulerianCircuit
	// EulerianPath: exactly one hub (out-in == +1) and one sink
	// (out-in == -1); an open walk from hub to sink traverses every edge
	// exactly once.
	EulerianPath
)

func (e Eulerian) String() string {
	switch e {
	case EulerianCircuit:
		return "CIRCUIT"
	case EulerianPath:
		return "PATH"
	default:
		return "NONE"
	}
}

// Classify reports g's Eulerian property.
//
// Complexity: O(V + E).
func Classify(g *StateGraph) Eulerian {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.classifyLocked()
}

func (g *StateGraph) classifyLocked() Eulerian {
	if !g.weaklyConnectedLocked() {
		return EulerianNone
	}

	var hubs, sinks int
	for _, d := range g.degreesLocked() {
		diff := d[0] - d[1]
		switch {
		case diff == 0:
			continue
		case diff == 1:
			hubs++
		case diff == -1:
			sinks++
		default:
			return EulerianNone
		}
	}

	switch {
	case hubs == 0 && sinks == 0:
		return EulerianCircuit
	case hubs == 1 && sinks == 1:
		return EulerianPath
	default:
		return EulerianNone
	}
}

// weaklyConnectedLocked is WeaklyConnected's body for a lock already held.
func (g *StateGraph) weaklyConnectedLocked() bool {
	if len(g.vertices) == 0 {
		return false
	}
	undirected := g.undirectedAdjacencyLocked()
	start := g.order[0]
	seen := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nbr := range undirected[cur] {
			if !seen[nbr] {
				seen[nbr] = true
				queue = append(queue, nbr)
			}
		}
	}
	return len(seen) == len(g.vertices)
}

// unevenPairLocked returns the name of one hub (out-in>0) and one sink
// (out-in<0) vertex, or "" for whichever is absent.
func (g *StateGraph) unevenPairLocked() (hub, sink string) {
	degs := g.degreesLocked()
	for _, name := range g.order {
		d := degs[name]
		diff := d[0] - d[1]
		if diff > 0 && hub == "" {
			hub = name
		} else if diff < 0 && sink == "" {
			sink = name
		}
		if hub != "" && sink != "" {
			break
		}
	}
	return hub, sink
}

// Eulerize converts g into an Eulerian graph in place, by duplicating
// existing edges along shortest paths between imbalanced vertices.
// Returns the resulting classification (EulerianCircuit or
// EulerianPath) and nil, or ErrNotEulerizable if the graph cannot be
// balanced this way (e.g. it is not weakly connected, or an odd number of
// imbalanced vertices remain unreachable from one another).
//
// Each iteration strictly decreases the total imbalance Σ|out(v)-in(v)| by
// at least 2, so this terminates in O(initial imbalance) iterations.
func Eulerize(g *StateGraph) (Eulerian, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if cls := g.classifyLocked(); cls != EulerianNone {
		return cls, nil
	}
	if !g.weaklyConnectedLocked() {
		return EulerianNone, ErrNotEulerizable
	}

	for {
		hub, sink := g.unevenPairLocked()
		if hub == "" && sink == "" {
			return EulerianCircuit, nil
		}
		if hub == "" || sink == "" {
			return EulerianNone, ErrNotEulerizable
		}

		path := g.shortestPathLocked(sink, hub)
		if path == nil {
			cls := g.classifyLocked()
			if cls == EulerianNone {
				return EulerianNone, ErrNotEulerizable
			}
			return cls, nil
		}

		g.duplicatePathLocked(path)
	}
}

// shortestPathLocked is ShortestPath's body for a lock already held.
func (g *StateGraph) shortestPathLocked(src, dst string) []Arrow {
	if _, ok := g.vertices[src]; !ok {
		return nil
	}
	if _, ok := g.vertices[dst]; !ok {
		return nil
	}
	if src == dst {
		return nil
	}

	type parentEdge struct {
		from string
		idx  int
	}
	parent := map[string]parentEdge{src: {}}
	seen := map[string]bool{src: true}
	queue := []string{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, idx := range g.adjOut[cur] {
			e := g.edges[idx]
			if e == nil || seen[e.head] {
				continue
			}
			seen[e.head] = true
			parent[e.head] = parentEdge{from: cur, idx: idx}
			queue = append(queue, e.head)
		}
	}

	if !seen[dst] {
		return nil
	}

	var rev []Arrow
	cur := dst
	for cur != src {
		pe := parent[cur]
		e := g.edges[pe.idx]
		rev = append(rev, Arrow{Tail: e.tail, Head: e.head, Name: e.name})
		cur = pe.from
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// duplicatePathLocked adds k copies of path's edges, where k is the
// smaller of the two endpoints' remaining imbalance.
func (g *StateGraph) duplicatePathLocked(path []Arrow) {
	if len(path) == 0 {
		return
	}

	from := path[0].Tail
	to := path[len(path)-1].Head
	degs := g.degreesLocked()
	dFrom := degs[from]
	dTo := degs[to]
	repeat := dFrom[1] - dFrom[0] // in(from) - out(from)
	if v := dTo[0] - dTo[1]; v < repeat {
		repeat = v // out(to) - in(to)
	}
	if repeat <= 0 {
		return
	}

	for i := 0; i < repeat; i++ {
		for _, a := range path {
			idx := len(g.edges)
			g.edges = append(g.edges, &edge{tail: a.Tail, head: a.Head, name: a.Name})
			g.adjOut[a.Tail] = append(g.adjOut[a.Tail], idx)
		}
	}
}
