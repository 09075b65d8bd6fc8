package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/go-ait/ait/graph"
)

// InterchangeSuite exercises the nested-map and CSV round trips.
type InterchangeSuite struct {
	suite.Suite
}

func TestInterchangeSuite(t *testing.T) {
	suite.Run(t, new(InterchangeSuite))
}

func (s *InterchangeSuite) TestNestedMapRoundTrip() {
	g := graph.NewStateGraph()
	nested := map[string]map[string]map[string]interface{}{
		"A": {
			"B": {"event": "go"},
			"C": {"event": "jump"},
		},
		"B": {
			"C": {"event": "fall"},
		},
	}

	require.NoError(s.T(), g.LoadFromNestedMap(nested))
	require.Equal(s.T(), nested, g.ExportToNestedMap())
}

func (s *InterchangeSuite) TestLoadFromNestedMapDiscardsPriorContent() {
	g := graph.NewStateGraph()
	require.NoError(s.T(), g.AddEdge("X", "Y", "z", nil, true))

	require.NoError(s.T(), g.LoadFromNestedMap(map[string]map[string]map[string]interface{}{
		"A": {"B": {"event": "go"}},
	}))

	require.False(s.T(), g.HasVertex("X"))
	require.True(s.T(), g.HasVertex("A"))
}

func (s *InterchangeSuite) TestTransitionMatrixCSVShape() {
	g := graph.NewStateGraph()
	require.NoError(s.T(), g.AddEdge("Idle", "Running", "Initialize", nil, true))
	require.NoError(s.T(), g.AddEdge("Idle", "Idle", "Reset", nil, true))
	require.NoError(s.T(), g.AddVertex("Running", nil))

	var buf strings.Builder
	require.NoError(s.T(), g.WriteTransitionMatrixCSV(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(s.T(), "S_source,E_Initialize,E_Reset", lines[0])
	require.Equal(s.T(), "Idle,Running,Idle", lines[1])
	require.Equal(s.T(), "Running,,", lines[2])
}

func (s *InterchangeSuite) TestTransitionMatrixCSVRoundTrip() {
	g := graph.NewStateGraph()
	require.NoError(s.T(), g.AddEdge("Idle", "Running", "Initialize", nil, true))
	require.NoError(s.T(), g.AddEdge("Running", "Idle", "Reset", nil, true))

	var buf strings.Builder
	require.NoError(s.T(), g.WriteTransitionMatrixCSV(&buf))

	reloaded := graph.NewStateGraph()
	require.NoError(s.T(), reloaded.ReadTransitionMatrixCSV(strings.NewReader(buf.String())))

	require.ElementsMatch(s.T(), g.Arcs(), reloaded.Arcs())
}

func (s *InterchangeSuite) TestStatesDetailCSVRoundTrip() {
	g := graph.NewStateGraph()
	require.NoError(s.T(), g.AddVertex("Idle", nil))
	require.NoError(s.T(), g.AddVertex("Running", nil))

	var buf strings.Builder
	require.NoError(s.T(), g.WriteStatesDetailCSV(&buf))
	require.Equal(s.T(), "Name,Detail\nIdle,\nRunning,\n", buf.String())

	detailed := "Name,Detail\nIdle,the resting state\nRunning,actively processing\n"
	require.NoError(s.T(), g.MergeStatesDetailCSV(strings.NewReader(detailed)))
	require.Equal(s.T(), "the resting state", g.VertexAttrs("Idle")["detail"])
}

func (s *InterchangeSuite) TestEventsDetailCSVRoundTrip() {
	g := graph.NewStateGraph()
	require.NoError(s.T(), g.AddEdge("Idle", "Running", "Initialize", nil, true))
	require.NoError(s.T(), g.AddEdge("Running", "Idle", "Reset", nil, true))

	detailed := "Name,Detail\nInitialize,spin everything up\nReset,back to idle\n"
	require.NoError(s.T(), g.MergeEventsDetailCSV(strings.NewReader(detailed)))

	var buf strings.Builder
	require.NoError(s.T(), g.WriteEventsDetailCSV(&buf))
	require.Equal(s.T(), detailed, buf.String())
}

func (s *InterchangeSuite) TestOutputMatrixCSVMergesOntoExistingEdges() {
	g := graph.NewStateGraph()
	require.NoError(s.T(), g.AddEdge("Idle", "Running", "Initialize", nil, true))

	outputCSV := "S_source,E_Initialize\nIdle,ack\n"
	require.NoError(s.T(), g.MergeOutputMatrixCSV(strings.NewReader(outputCSV)))

	arrow := graph.Arrow{Tail: "Idle", Head: "Running", Name: "Initialize"}
	require.Equal(s.T(), "ack", g.EdgeAttrs(arrow)["output"])
}
