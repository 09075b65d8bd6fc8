package explorer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/go-ait/ait/explorer"
)

// concreteState is a simple valid State keyed by name.
type concreteState struct {
	name string
}

func (s concreteState) Name() string                  { return s.name }
func (s concreteState) Value() map[string]interface{} { return map[string]interface{}{"name": s.name} }
func (s concreteState) IsValid() bool                 { return true }
func (s concreteState) Equal(other explorer.State) bool {
	return other.IsValid() && s.name == other.Name()
}

// tableSUT applies a fixed source/event -> target transition table; events
// with no table entry are rejected (observed as explorer.InvalidState{}).
type tableSUT struct {
	initial    string
	cur        string
	table      map[string]map[string]string
	rejected   bool
	resetCalls int
}

func newTableSUT(initial string, table map[string]map[string]string) *tableSUT {
	return &tableSUT{initial: initial, table: table}
}

func (s *tableSUT) Start() (explorer.State, error) {
	s.cur = s.initial
	return concreteState{name: s.cur}, nil
}

func (s *tableSUT) Reset() error {
	s.cur = s.initial
	s.resetCalls++
	return nil
}

func (s *tableSUT) Env() map[string]interface{} { return nil }

func (s *tableSUT) ProcessRequest(_, _ map[string]interface{}) (map[string]interface{}, error) {
	return nil, nil
}

func (s *tableSUT) State() explorer.State {
	if s.rejected {
		return explorer.InvalidState{}
	}
	return concreteState{name: s.cur}
}

func (s *tableSUT) apply(eventName string) {
	next, ok := s.table[s.cur][eventName]
	if !ok {
		s.rejected = true
		return
	}
	s.rejected = false
	s.cur = next
}

// tableEvent fires itself against the tableSUT's transition table.
type tableEvent struct {
	name string
}

func (e tableEvent) Name() string { return e.name }
func (e tableEvent) BuildRequest(args map[string]interface{}) map[string]interface{} { return args }
func (e tableEvent) Fire(sut explorer.SUT) (map[string]interface{}, error) {
	sut.(*tableSUT).apply(e.name)
	return map[string]interface{}{"event": e.name}, nil
}

func alphabetOf(names ...string) *explorer.Alphabet {
	a := explorer.NewAlphabet()
	for _, name := range names {
		a.Add(tableEvent{name: name})
	}
	return a
}

// ExplorerSuite exercises Explorer.Explore end to end against fake SUTs.
type ExplorerSuite struct {
	suite.Suite
}

func TestExplorerSuite(t *testing.T) {
	suite.Run(t, new(ExplorerSuite))
}

// TestFourStateToggle explores a small lifecycle machine: exactly 4
// states and 7 defined transitions are expected, with every other
// event-at-state cell recording a rejection (no graph edge).
func (s *ExplorerSuite) TestFourStateToggle() {
	table := map[string]map[string]string{
		"Idle":    {"Initialize": "Running", "Reset": "Idle"},
		"Running": {"Pause": "Paused", "Stop": "Stopped"},
		"Paused":  {"Resume": "Running", "Stop": "Stopped"},
		"Stopped": {"Reset": "Idle"},
	}
	sut := newTableSUT("Idle", table)
	alphabet := alphabetOf("Initialize", "Reset", "Pause", "Stop", "Resume")

	ex, err := explorer.New(sut, alphabet)
	require.NoError(s.T(), err)

	require.NoError(s.T(), ex.Explore(context.Background(), concreteState{name: "Idle"}))

	maze := ex.Maze()
	require.Len(s.T(), maze, 4)

	arcs := ex.StateGraph().Arcs()
	require.Len(s.T(), arcs, 7)

	expected := map[[2]string]string{
		{"Idle", "Running"}:    "Initialize",
		{"Idle", "Idle"}:       "Reset",
		{"Running", "Paused"}:  "Pause",
		{"Running", "Stopped"}: "Stop",
		{"Paused", "Running"}:  "Resume",
		{"Paused", "Stopped"}:  "Stop",
		{"Stopped", "Idle"}:    "Reset",
	}
	for _, a := range arcs {
		name, ok := expected[[2]string{a.Tail, a.Head}]
		require.True(s.T(), ok, "unexpected arc %s", a)
		require.Equal(s.T(), name, a.Name)
	}
}

// TestReplayViaReset builds a graph where, after the Left branch matures,
// the Right branch (reachable only from the initial state) is still
// immature — exercising the reset-and-return-to-initial shortcut.
func (s *ExplorerSuite) TestReplayViaReset() {
	table := map[string]map[string]string{
		"Init": {"Left": "L1", "Right": "R1"},
		"L1":   {"Right": "L2"},
		"L2":   {},
		"R1":   {},
	}
	sut := newTableSUT("Init", table)
	alphabet := alphabetOf("Left", "Right")

	ex, err := explorer.New(sut, alphabet)
	require.NoError(s.T(), err)

	require.NoError(s.T(), ex.Explore(context.Background(), concreteState{name: "Init"}))

	require.Equal(s.T(), 1, sut.resetCalls)

	maze := ex.Maze()
	for name, entry := range maze {
		for _, eventName := range []string{"Left", "Right"} {
			_, known := entry.Transitions[eventName]
			require.True(s.T(), known,
				"state %s missing resolution for %s", name, eventName)
		}
	}
	require.Equal(s.T(), "R1", maze["Init"].Transitions["Right"])
	require.Equal(s.T(), "L1", maze["Init"].Transitions["Left"])
	require.Equal(s.T(), "L2", maze["L1"].Transitions["Right"])
}
