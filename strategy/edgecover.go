package strategy

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/go-ait/ait/graph"
)

// EdgeCover produces a single walk traversing every edge of a graph at
// least once, via Eulerization followed by Hierholzer's algorithm.
type EdgeCover struct {
	// Rand, if set, is used for the outgoing-edge choice at each step of
	// the Hierholzer walk. Inject a seeded *rand.Rand for reproducible
	// test runs; leave nil for production variety.
	Rand *rand.Rand

	// KeepSelfLoops keeps self-loop edges in the walk instead of
	// dropping them before Eulerizing.
	KeepSelfLoops bool

	Logger *zap.Logger
	Tracer trace.Tracer
}

func (ec *EdgeCover) logger() *zap.Logger {
	if ec.Logger != nil {
		return ec.Logger
	}
	return zap.NewNop()
}

func (ec *EdgeCover) tracer() trace.Tracer {
	if ec.Tracer != nil {
		return ec.Tracer
	}
	return otel.Tracer("github.com/go-ait/ait/strategy")
}

func (ec *EdgeCover) randIndex(n int) int {
	if ec.Rand != nil {
		return ec.Rand.IntN(n)
	}
	return rand.IntN(n)
}

// hierholzerStep is one entry of the Hierholzer stack: a vertex and the
// arrow by which it was entered (nil for the very first, start-sentinel
// entry).
type hierholzerStep struct {
	vertex  string
	arrived *graph.Arrow
}

// Travel implements Strategy for EdgeCover.
func (ec *EdgeCover) Travel(ctx context.Context, g *graph.StateGraph, start string) ([]Walk, error) {
	runID := uuid.New()
	_, span := ec.tracer().Start(ctx, "EdgeCover.Travel",
		trace.WithAttributes(attribute.String("run_id", runID.String())))
	defer span.End()

	logger := ec.logger().With(zap.String("run_id", runID.String()))

	work := g.Clone()
	if !work.HasVertex(start) {
		span.RecordError(graph.ErrVertexNotFound)
		return nil, graph.ErrVertexNotFound
	}
	if !ec.KeepSelfLoops {
		work.DeleteSelfLoops()
	}

	cls := graph.Classify(work)
	if cls == graph.EulerianNone {
		var err error
		cls, err = graph.Eulerize(work)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("strategy: edgecover: %w", err)
		}
	}
	logger.Info("eulerized graph",
		zap.String("classification", cls.String()), zap.Int("edges", work.EdgeCount()))

	var stack []hierholzerStep
	ec.walk(work, start, nil, &stack)

	for i, j := 0, len(stack)-1; i < j; i, j = i+1, j-1 {
		stack[i], stack[j] = stack[j], stack[i]
	}

	walk := make(Walk, 0, len(stack))
	for _, step := range stack {
		if step.arrived != nil {
			walk = append(walk, *step.arrived)
		}
	}

	span.SetAttributes(attribute.Int("walk_length", len(walk)))
	return []Walk{walk}, nil
}

// walk drains v's outgoing edges one at a time, recursing fully into each
// chosen neighbor before trying v again; once v has none left, it pushes
// itself (with the arrow it was entered by) and returns. This is the
// classic stack-based Hierholzer DFS.
func (ec *EdgeCover) walk(g *graph.StateGraph, v string, arrivedBy *graph.Arrow, stack *[]hierholzerStep) {
	for {
		idxs := g.EdgeIndicesFrom(v)
		if len(idxs) == 0 {
			*stack = append(*stack, hierholzerStep{vertex: v, arrived: arrivedBy})
			return
		}

		pick := idxs[ec.randIndex(len(idxs))]
		a, _ := g.ArrowAt(pick)
		_ = g.DeleteEdge(pick)
		ec.walk(g, a.Head, &a, stack)
	}
}
