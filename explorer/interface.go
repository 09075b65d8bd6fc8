package explorer

// State is an opaque value produced by a SUT adapter: Name identifies the
// equivalence class the Maze keys on, Value is the canonical payload used
// for equality, and IsValid distinguishes real observations from the
// InvalidState sentinel.
type State interface {
	Name() string
	Value() map[string]interface{}
	IsValid() bool
	// Equal reports whether two states are the same observation. Two
	// invalid states are always equal to each other; an invalid state is
	// never equal to a valid one.
	Equal(other State) bool
}

// Event is a named, parametric action an Explorer can fire at a SUT.
type Event interface {
	Name() string
	BuildRequest(args map[string]interface{}) map[string]interface{}
	// Fire applies the event to sut and returns the raw observation map.
	// SUT-level rejections are encoded in the returned map, not as an
	// error; Fire itself only errors on adapter-level failure.
	Fire(sut SUT) (map[string]interface{}, error)
}

// SUT is the System Under Test contract an Explorer drives.
type SUT interface {
	// State reads the current observable state. Must be pure and cheap.
	State() State
	// Reset forces the SUT back to its initial state. Must be idempotent.
	Reset() error
	// ProcessRequest applies request and returns an observation map. Must
	// not error on SUT-level rejections — those are encoded in the output.
	ProcessRequest(request, extras map[string]interface{}) (map[string]interface{}, error)
	// Start initializes the SUT and returns its initial state. Called once.
	Start() (State, error)
	// Env is a read-only configuration snapshot.
	Env() map[string]interface{}
}

// Validator inspects a Transition before it is committed to the Maze and
// may reject it by returning an error (wrapped as ErrInvalidTransition).
type Validator interface {
	Validate(Transition) error
}

// InvalidState is the sentinel State for "no observation" — e.g. a SUT
// adapter reporting a rejected request with no well-defined resulting
// state. Two InvalidState values are equal to each other; an InvalidState
// is never equal to any valid State.
type InvalidState struct{}

func (InvalidState) Name() string                  { return "" }
func (InvalidState) Value() map[string]interface{} { return nil }
func (InvalidState) IsValid() bool                 { return false }
func (InvalidState) Equal(other State) bool {
	_, ok := other.(InvalidState)
	return ok
}
