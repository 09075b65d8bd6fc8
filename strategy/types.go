package strategy

import (
	"context"

	"github.com/go-ait/ait/graph"
)

// Walk is a contiguous sequence of arrows, each one following the previous
// arrow's Head.
type Walk []graph.Arrow

// Strategy produces one or more walks that cover g, starting at start. It
// must not mutate the caller's graph; implementations clone it.
type Strategy interface {
	Travel(ctx context.Context, g *graph.StateGraph, start string) ([]Walk, error)
}
