package explorer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeState is a minimal State used by the white-box commitTransition test.
type fakeState struct {
	name  string
	valid bool
}

func (s fakeState) Name() string                  { return s.name }
func (s fakeState) Value() map[string]interface{} { return map[string]interface{}{"name": s.name} }
func (s fakeState) IsValid() bool                 { return s.valid }
func (s fakeState) Equal(other State) bool {
	if !s.valid || !other.IsValid() {
		return !s.valid && !other.IsValid()
	}
	return s.name == other.Name()
}

// ambiguitySUT reports Running on the first Initialize firing and Paused
// on every firing after that, from the same Idle source.
type ambiguitySUT struct {
	fireCount int
}

func (a *ambiguitySUT) Start() (State, error) { return fakeState{name: "Idle", valid: true}, nil }
func (a *ambiguitySUT) Reset() error          { return nil }
func (a *ambiguitySUT) Env() map[string]interface{} { return nil }
func (a *ambiguitySUT) ProcessRequest(_, _ map[string]interface{}) (map[string]interface{}, error) {
	return nil, nil
}
func (a *ambiguitySUT) State() State {
	if a.fireCount == 1 {
		return fakeState{name: "Running", valid: true}
	}
	return fakeState{name: "Paused", valid: true}
}

type ambiguityEvent struct{}

func (ambiguityEvent) Name() string { return "Initialize" }
func (ambiguityEvent) BuildRequest(args map[string]interface{}) map[string]interface{} { return args }
func (ambiguityEvent) Fire(sut SUT) (map[string]interface{}, error) {
	sut.(*ambiguitySUT).fireCount++
	return map[string]interface{}{}, nil
}

// TestCommitTransitionDetectsAmbiguousBehavior commits Idle--Initialize-->
// Running once, then commits the identical (source, event) pair again with
// Paused as the observed target instead. Per Maze
// monotonicity, the second commit must raise ErrAmbiguousBehavior rather
// than silently overwrite the first.
func TestCommitTransitionDetectsAmbiguousBehavior(t *testing.T) {
	sut := &ambiguitySUT{}
	alphabet := NewAlphabet().Add(ambiguityEvent{})

	ex, err := New(sut, alphabet)
	require.NoError(t, err)

	idle := fakeState{name: "Idle", valid: true}
	event := ambiguityEvent{}

	running := fakeState{name: "Running", valid: true}
	require.NoError(t, ex.commitTransition(idle, event, running, nil))
	require.Equal(t, "Running", ex.Maze()["Idle"].Transitions["Initialize"])

	paused := fakeState{name: "Paused", valid: true}
	err = ex.commitTransition(idle, event, paused, nil)
	require.ErrorIs(t, err, ErrAmbiguousBehavior)
}
