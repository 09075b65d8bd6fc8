package explorer

import "errors"

// Sentinel errors surfaced by Explorer construction and Explore.
var (
	// ErrNilSUT indicates New was called with a nil SUT.
	ErrNilSUT = errors.New("explorer: sut is nil")

	// ErrEmptyAlphabet indicates New was called with no configured events.
	ErrEmptyAlphabet = errors.New("explorer: event alphabet is empty")

	// ErrUnknownState indicates an operation referenced a state name the
	// Maze has never recorded.
	ErrUnknownState = errors.New("explorer: unknown state")

	// ErrUnknownEvent indicates a transition referenced an event name not
	// in the configured alphabet.
	ErrUnknownEvent = errors.New("explorer: unknown event")

	// ErrInvalidTransition indicates a configured Validator rejected a
	// transition before it was committed.
	ErrInvalidTransition = errors.New("explorer: invalid transition")

	// ErrAmbiguousBehavior indicates the SUT reported two different
	// successor states for the same (source, event) pair — a violation of
	// the determinism the learning algorithm depends on.
	ErrAmbiguousBehavior = errors.New("explorer: ambiguous behavior")

	errNilLogger     = errors.New("logger is nil")
	errNilTracer     = errors.New("tracer is nil")
	errBadMultiplier = errors.New("max generation multiplier must be >= 1")
)
