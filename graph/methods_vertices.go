package graph

// AddVertex inserts a vertex with the given name and attributes.
//
// Idempotent: adding a name that already exists never creates a second
// vertex. If the existing vertex has no attrs and non-empty attrs are
// supplied, the supplied attrs are adopted; otherwise the existing attrs
// are kept and the supplied ones are dropped. A mismatch between existing
// and supplied attrs is not reported: the graph package has no logger.
//
// Complexity: O(1).
func (g *StateGraph) AddVertex(name string, attrs map[string]interface{}) error {
	if name == "" {
		return ErrEmptyVertexName
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.vertices[name]; ok {
		if len(existing.attrs) == 0 && len(attrs) > 0 {
			existing.attrs = attrs
		}
		return nil
	}

	g.vertices[name] = &vertex{name: name, attrs: attrs}
	g.order = append(g.order, name)
	if _, ok := g.adjOut[name]; !ok {
		g.adjOut[name] = nil
	}

	return nil
}

// HasVertex reports whether name is a known vertex.
//
// Complexity: O(1).
func (g *StateGraph) HasVertex(name string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.vertices[name]
	return ok
}

// Vertices returns all vertex names in insertion order.
//
// Complexity: O(V).
func (g *StateGraph) Vertices() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// VertexAttrs returns the attribute map of name, or nil if name is unknown.
// The returned map is the live map; callers must not mutate it.
//
// Complexity: O(1).
func (g *StateGraph) VertexAttrs(name string) map[string]interface{} {
	g.mu.RLock()
	defer g.mu.RUnlock()

	v, ok := g.vertices[name]
	if !ok {
		return nil
	}
	return v.attrs
}

// UpdateVertexAttrs merges visualization/diagnostic attributes into
// existing vertices. Vertex names absent from data are left untouched;
// data entries for unknown vertex names are silently ignored (lookup
// operations on unknown names never raise).
//
// Complexity: O(len(data) + sum of merged attr counts).
func (g *StateGraph) UpdateVertexAttrs(data map[string]map[string]interface{}) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for name, attrs := range data {
		v, ok := g.vertices[name]
		if !ok {
			continue
		}
		if v.attrs == nil {
			v.attrs = make(map[string]interface{}, len(attrs))
		}
		for k, val := range attrs {
			v.attrs[k] = val
		}
	}
}
