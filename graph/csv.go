package graph

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
)

// LoadFromNestedMap replaces g's contents with the transitions described by
// nested: source state name -> target state name -> attribute map. The
// innermost map is the edge's attrs; the edge's name is read from its
// conventional "event" key if present, else the target name is used as a
// fallback label. Existing content is discarded.
//
// Complexity: O(states * targets).
func (g *StateGraph) LoadFromNestedMap(nested map[string]map[string]map[string]interface{}) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.order = nil
	g.vertices = make(map[string]*vertex)
	g.edges = nil
	g.adjOut = make(map[string][]int)

	sources := make([]string, 0, len(nested))
	for s := range nested {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	for _, source := range sources {
		g.addVertexLocked(source, nil)
		targets := nested[source]

		names := make([]string, 0, len(targets))
		for t := range targets {
			names = append(names, t)
		}
		sort.Strings(names)

		for _, target := range names {
			attrs := targets[target]
			name := target
			if ev, ok := attrs["event"].(string); ok && ev != "" {
				name = ev
			}

			g.addVertexLocked(target, nil)
			idx := len(g.edges)
			g.edges = append(g.edges, &edge{tail: source, head: target, name: name, attrs: attrs})
			g.adjOut[source] = append(g.adjOut[source], idx)
		}
	}

	return nil
}

// ExportToNestedMap is LoadFromNestedMap's inverse: source -> target ->
// attrs, with the edge name folded into attrs["event"] so a round trip
// through LoadFromNestedMap reconstructs the same edge name.
//
// Complexity: O(E).
func (g *StateGraph) ExportToNestedMap() map[string]map[string]map[string]interface{} {
	g.mu.RLock()
	defer g.mu.RUnlock()

	result := make(map[string]map[string]map[string]interface{})

	for _, e := range g.edges {
		if e == nil {
			continue
		}
		targets, ok := result[e.tail]
		if !ok {
			targets = make(map[string]map[string]interface{})
			result[e.tail] = targets
		}

		attrs := make(map[string]interface{}, len(e.attrs)+1)
		for k, v := range e.attrs {
			attrs[k] = v
		}
		attrs["event"] = e.name
		targets[e.head] = attrs
	}

	return result
}

// Header conventions: the first column is "S_source", every event column
// is prefixed "E_". Consumers of these CSVs rely on that exact shape.
const (
	stateColumnHeader = "S_source"
	eventColumnPrefix = "E_"
)

// WriteTransitionMatrixCSV writes one row per source vertex, one column per
// event name in the union of all edge names (sorted), cell = target vertex
// name or empty for "no transition at this (source, event) pair". Parallel
// edges sharing a (source, event) pair are not representable in this format;
// the first one encountered (sorted by target) wins.
func (g *StateGraph) WriteTransitionMatrixCSV(w io.Writer) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.writeMatrixCSVLocked(w, func(e *edge) string { return e.head })
}

// WriteOutputMatrixCSV is WriteTransitionMatrixCSV's shape with cells
// carrying each transition's recorded output payload (attrs["output"],
// stringified) instead of the target state name.
func (g *StateGraph) WriteOutputMatrixCSV(w io.Writer) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.writeMatrixCSVLocked(w, func(e *edge) string {
		if e.attrs == nil {
			return ""
		}
		v, ok := e.attrs["output"]
		if !ok || v == nil {
			return ""
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	})
}

// writeMatrixCSVLocked is the shared body for the transition and output
// matrix writers; cell picks the value shown for edge e.
func (g *StateGraph) writeMatrixCSVLocked(w io.Writer, cell func(e *edge) string) error {
	events := make(map[string]bool)
	bySource := make(map[string][]*edge)
	for _, e := range g.edges {
		if e == nil {
			continue
		}
		events[e.name] = true
		bySource[e.tail] = append(bySource[e.tail], e)
	}

	eventNames := make([]string, 0, len(events))
	for name := range events {
		eventNames = append(eventNames, name)
	}
	sort.Strings(eventNames)

	header := make([]string, 0, len(eventNames)+1)
	header = append(header, stateColumnHeader)
	for _, name := range eventNames {
		header = append(header, eventColumnPrefix+name)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	sources := append([]string(nil), g.order...)
	sort.Strings(sources)

	for _, source := range sources {
		row := make([]string, len(header))
		row[0] = source

		byEvent := make(map[string]*edge, len(bySource[source]))
		for _, e := range bySource[source] {
			if existing, ok := byEvent[e.name]; !ok || e.head < existing.head {
				byEvent[e.name] = e
			}
		}

		for col, name := range eventNames {
			if e, ok := byEvent[name]; ok {
				row[col+1] = cell(e)
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteStatesDetailCSV writes the two-column Name,Detail table for every
// vertex, reading each vertex's "detail" attribute (empty string if absent).
func (g *StateGraph) WriteStatesDetailCSV(w io.Writer) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return writeDetailCSV(w, g.order, func(name string) string {
		v := g.vertices[name]
		if v == nil || v.attrs == nil {
			return ""
		}
		s, _ := v.attrs["detail"].(string)
		return s
	})
}

// WriteEventsDetailCSV writes the two-column Name,Detail table for every
// distinct event name used in the graph (sorted), reading each edge's first
// "detail" attribute encountered for that event name.
func (g *StateGraph) WriteEventsDetailCSV(w io.Writer) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	details := make(map[string]string)
	var names []string
	for _, e := range g.edges {
		if e == nil {
			continue
		}
		if _, ok := details[e.name]; ok {
			continue
		}
		names = append(names, e.name)
		if e.attrs != nil {
			if s, ok := e.attrs["detail"].(string); ok {
				details[e.name] = s
				continue
			}
		}
		details[e.name] = ""
	}
	sort.Strings(names)

	return writeDetailCSV(w, names, func(name string) string { return details[name] })
}

func writeDetailCSV(w io.Writer, names []string, detail func(string) string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Detail"}); err != nil {
		return err
	}
	for _, name := range names {
		if err := cw.Write([]string{name, detail(name)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTransitionMatrixCSV populates g from a transition-matrix CSV shaped
// like WriteTransitionMatrixCSV's output: header "S_source,E_ev1,E_ev2,...",
// one row per source state, empty cells meaning "no transition". Existing
// content is discarded.
func (g *StateGraph) ReadTransitionMatrixCSV(r io.Reader) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.order = nil
	g.vertices = make(map[string]*vertex)
	g.edges = nil
	g.adjOut = make(map[string][]int)

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}

	eventNames := make([]string, len(header)-1)
	for i := 1; i < len(header); i++ {
		eventNames[i-1] = header[i][len(eventColumnPrefix):]
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		source := row[0]
		g.addVertexLocked(source, nil)

		for i, target := range row[1:] {
			if target == "" {
				continue
			}
			g.addVertexLocked(target, nil)
			idx := len(g.edges)
			g.edges = append(g.edges, &edge{tail: source, head: target, name: eventNames[i]})
			g.adjOut[source] = append(g.adjOut[source], idx)
		}
	}

	return nil
}

// MergeOutputMatrixCSV reads an output-matrix CSV (same shape as the
// transition matrix, cells carrying transition output payloads) and stashes
// each cell's value as attrs["output"] on the matching live edge. Edges not
// already present (no prior ReadTransitionMatrixCSV/LoadFromNestedMap call)
// are skipped: the transition matrix is the required file, the output
// matrix only annotates it.
func (g *StateGraph) MergeOutputMatrixCSV(r io.Reader) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	eventNames := make([]string, len(header)-1)
	for i := 1; i < len(header); i++ {
		eventNames[i-1] = header[i][len(eventColumnPrefix):]
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		source := row[0]
		for i, output := range row[1:] {
			if output == "" {
				continue
			}
			name := eventNames[i]
			for _, idx := range g.adjOut[source] {
				e := g.edges[idx]
				if e == nil || e.name != name {
					continue
				}
				if e.attrs == nil {
					e.attrs = make(map[string]interface{}, 1)
				}
				e.attrs["output"] = output
				break
			}
		}
	}

	return nil
}

// MergeStatesDetailCSV reads a Name,Detail CSV and stashes each row's Detail
// as attrs["detail"] on the matching vertex. Unknown names are ignored.
func (g *StateGraph) MergeStatesDetailCSV(r io.Reader) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	return mergeDetailCSV(r, func(name, detail string) {
		v, ok := g.vertices[name]
		if !ok {
			return
		}
		if v.attrs == nil {
			v.attrs = make(map[string]interface{}, 1)
		}
		v.attrs["detail"] = detail
	})
}

// MergeEventsDetailCSV reads a Name,Detail CSV and stashes each row's Detail
// as attrs["detail"] on every live edge sharing that event name.
func (g *StateGraph) MergeEventsDetailCSV(r io.Reader) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	return mergeDetailCSV(r, func(name, detail string) {
		for _, e := range g.edges {
			if e == nil || e.name != name {
				continue
			}
			if e.attrs == nil {
				e.attrs = make(map[string]interface{}, 1)
			}
			e.attrs["detail"] = detail
		}
	})
}

func mergeDetailCSV(r io.Reader, apply func(name, detail string)) error {
	cr := csv.NewReader(r)
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		apply(row[0], row[1])
	}
}
