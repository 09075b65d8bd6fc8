package strategy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/go-ait/ait/graph"
	"github.com/go-ait/ait/strategy"
)

type NodeCoverSuite struct {
	suite.Suite
}

func TestNodeCoverSuite(t *testing.T) {
	suite.Run(t, new(NodeCoverSuite))
}

// TestMultiRootDAGLeavesOtherRootUnvisited covers two sources R1/R2
// unreachable from each other; starting at R1, only R2 (and anything
// reachable solely through R2) should remain unvisited.
func (s *NodeCoverSuite) TestMultiRootDAGLeavesOtherRootUnvisited() {
	g := graph.NewStateGraph()
	require.NoError(s.T(), g.AddEdge("R1", "A", "e1", nil, false))
	require.NoError(s.T(), g.AddEdge("A", "B", "e2", nil, false))
	require.NoError(s.T(), g.AddEdge("R2", "C", "e3", nil, false))

	nc := &strategy.NodeCover{}
	walks, err := nc.Travel(context.Background(), g, "R1")
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), walks)

	require.Equal(s.T(), []string{"C", "R2"}, nc.Unvisited())
	require.Error(s.T(), nc.Diagnostics())
}

func (s *NodeCoverSuite) TestFullyConnectedGraphLeavesNothingUnvisited() {
	g := graph.NewStateGraph()
	require.NoError(s.T(), g.AddEdge("A", "B", "e1", nil, false))
	require.NoError(s.T(), g.AddEdge("B", "C", "e2", nil, false))
	require.NoError(s.T(), g.AddEdge("C", "D", "e3", nil, false))

	nc := &strategy.NodeCover{}
	walks, err := nc.Travel(context.Background(), g, "A")
	require.NoError(s.T(), err)
	require.Empty(s.T(), nc.Unvisited())
	require.NoError(s.T(), nc.Diagnostics())

	var covered []string
	for _, w := range walks {
		for _, a := range w {
			covered = append(covered, a.Tail, a.Head)
		}
	}
	require.Contains(s.T(), covered, "D")
}

func (s *NodeCoverSuite) TestUnknownStartErrors() {
	g := graph.NewStateGraph()
	require.NoError(s.T(), g.AddVertex("A", nil))

	nc := &strategy.NodeCover{}
	_, err := nc.Travel(context.Background(), g, "missing")
	require.ErrorIs(s.T(), err, graph.ErrVertexNotFound)
}

// TestOriginalGraphUntouched verifies NodeCover operates on a clone.
func (s *NodeCoverSuite) TestOriginalGraphUntouched() {
	g := graph.NewStateGraph()
	require.NoError(s.T(), g.AddEdge("A", "B", "e1", nil, false))
	preCount := g.EdgeCount()

	nc := &strategy.NodeCover{}
	_, err := nc.Travel(context.Background(), g, "A")
	require.NoError(s.T(), err)
	require.Equal(s.T(), preCount, g.EdgeCount())
}
