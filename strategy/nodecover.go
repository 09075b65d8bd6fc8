package strategy

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/go-ait/ait/graph"
)

// candidatePath is CandidatePath from the step ("choose_path") algorithm:
// a vertex sequence plus how many still-unvisited vertices it would cover.
// A zero-coverage candidate is not a usable candidate (ok is false).
type candidatePath struct {
	path     []string
	coverage int
	ok       bool
}

// better reports whether c should be preferred over other, applying the
// ordering rules: larger coverage wins; ties broken by shorter length;
// remaining ties go to c (the caller passes the current-vertex candidate
// as c so that "current wins ties over start").
func (c candidatePath) better(other candidatePath) bool {
	if !c.ok {
		return false
	}
	if !other.ok {
		return true
	}
	if c.coverage != other.coverage {
		return c.coverage > other.coverage
	}
	if len(c.path) != len(other.path) {
		return len(c.path) < len(other.path)
	}
	return true
}

// NodeCover produces walks covering every vertex reachable from a starting
// vertex, preferring short paths that cover many unvisited vertices.
type NodeCover struct {
	Logger *zap.Logger
	Tracer trace.Tracer

	unvisited map[string]struct{}
}

func (nc *NodeCover) logger() *zap.Logger {
	if nc.Logger != nil {
		return nc.Logger
	}
	return zap.NewNop()
}

func (nc *NodeCover) tracer() trace.Tracer {
	if nc.Tracer != nil {
		return nc.Tracer
	}
	return otel.Tracer("github.com/go-ait/ait/strategy")
}

// Travel implements Strategy for NodeCover.
func (nc *NodeCover) Travel(ctx context.Context, g *graph.StateGraph, start string) ([]Walk, error) {
	runID := uuid.New()
	_, span := nc.tracer().Start(ctx, "NodeCover.Travel",
		trace.WithAttributes(attribute.String("run_id", runID.String())))
	defer span.End()

	logger := nc.logger().With(zap.String("run_id", runID.String()))

	work := g.Clone()
	if !work.HasVertex(start) {
		span.RecordError(graph.ErrVertexNotFound)
		return nil, graph.ErrVertexNotFound
	}

	nc.unvisited = make(map[string]struct{}, len(work.Vertices()))
	for _, v := range work.Vertices() {
		nc.unvisited[v] = struct{}{}
	}

	current := ""
	var walks []Walk

	for len(nc.unvisited) > 0 {
		startCand := nc.bestCandidate(work, start)

		var curCand candidatePath
		if current != "" && current != start {
			curCand = nc.bestCandidate(work, current)
		}

		chosen := startCand
		if curCand.better(startCand) {
			chosen = curCand
		}
		if !chosen.ok {
			logger.Warn("no reachable candidate path; stopping",
				zap.Int("unvisited", len(nc.unvisited)))
			break
		}

		walk, err := nc.commit(work, chosen.path)
		if err != nil {
			span.RecordError(err)
			return walks, err
		}

		if len(walk) > 0 {
			if n := len(walks); n > 0 && len(walks[n-1]) > 0 &&
				walks[n-1][len(walks[n-1])-1].Head == chosen.path[0] {
				walks[n-1] = append(walks[n-1], walk...)
			} else {
				walks = append(walks, walk)
			}
		}

		for _, v := range chosen.path {
			delete(nc.unvisited, v)
		}
		current = chosen.path[len(chosen.path)-1]
	}

	span.SetAttributes(
		attribute.Int("walks", len(walks)),
		attribute.Int("unvisited", len(nc.unvisited)),
	)
	return walks, nil
}

// bestCandidate scans work's simple paths from v ascending by length,
// keeping the one with maximum intersection with the still-unvisited set;
// it exits early once a path covers everything still unvisited.
func (nc *NodeCover) bestCandidate(work *graph.StateGraph, v string) candidatePath {
	best := candidatePath{}
	for _, path := range work.AllSimplePathsFrom(v) {
		coverage := 0
		for _, id := range path {
			if _, unvisited := nc.unvisited[id]; unvisited {
				coverage++
			}
		}
		if coverage == 0 {
			continue
		}
		if !best.ok || coverage > best.coverage {
			best = candidatePath{path: path, coverage: coverage, ok: true}
		}
		if coverage == len(nc.unvisited) {
			break
		}
	}
	return best
}

// commit converts path's vertex sequence into arrows, deleting one edge
// per traversal step from work so a later candidate cannot reuse it.
func (nc *NodeCover) commit(work *graph.StateGraph, path []string) (Walk, error) {
	walk := make(Walk, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		tail, head := path[i], path[i+1]

		found := -1
		for _, idx := range work.EdgeIndicesFrom(tail) {
			a, ok := work.ArrowAt(idx)
			if ok && a.Head == head {
				found = idx
				break
			}
		}
		if found == -1 {
			return walk, fmt.Errorf("%w: %s -> %s", errEdgeVanished, tail, head)
		}

		a, _ := work.ArrowAt(found)
		walk = append(walk, a)
		_ = work.DeleteEdge(found)
	}
	return walk, nil
}

// Unvisited returns the vertices never covered by the last Travel call, in
// sorted order.
func (nc *NodeCover) Unvisited() []string {
	out := make([]string, 0, len(nc.unvisited))
	for v := range nc.unvisited {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Diagnostics aggregates ErrNoPathAvailable, one per still-unvisited
// vertex (reachable or not), or nil if the last Travel call left no vertex
// unvisited.
func (nc *NodeCover) Diagnostics() error {
	var err error
	for _, v := range nc.Unvisited() {
		err = multierr.Append(err, fmt.Errorf("%w: %s", ErrNoPathAvailable, v))
	}
	return err
}
