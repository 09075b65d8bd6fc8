package explorer

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/go-ait/ait/graph"
)

// Explorer drives sut through alphabet, building a Maze and a
// graph.StateGraph until every discovered state is mature or the
// generation safety limit is hit.
type Explorer struct {
	sut        SUT
	alphabet   *Alphabet
	validators []Validator
	logger     *zap.Logger
	tracer     trace.Tracer

	maxGenerationMultiplier int

	maze             *Maze
	stateGraph       *graph.StateGraph
	initialStateName string
}

// New constructs an Explorer, calling sut.Start() once to seed the initial
// state into the Maze and graph.
func New(sut SUT, alphabet *Alphabet, opts ...ExplorerOption) (*Explorer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	if sut == nil {
		return nil, ErrNilSUT
	}
	if err := validate.Struct(ExplorerConfig{SUT: sut, Alphabet: alphabet}); err != nil {
		return nil, fmt.Errorf("explorer: %w", err)
	}
	if alphabet.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}

	initial, err := sut.Start()
	if err != nil {
		return nil, fmt.Errorf("explorer: sut start: %w", err)
	}

	e := &Explorer{
		sut:                     sut,
		alphabet:                alphabet,
		validators:              o.validators,
		logger:                  o.logger,
		tracer:                  o.tracer,
		maxGenerationMultiplier: o.maxGenerationMultiplier,
		maze:                    newMaze(alphabet),
		stateGraph:              graph.NewStateGraph(),
	}

	e.maze.addState(initial)
	if initial.IsValid() {
		_ = e.stateGraph.AddVertex(initial.Name(), nil)
		e.initialStateName = initial.Name()
	}

	return e, nil
}

// Maze returns a read-only snapshot of the learned FSM.
func (e *Explorer) Maze() map[string]MazeEntry {
	return e.maze.snapshot()
}

// StateGraph returns the live StateGraph the Explorer has been recording
// into. Callers must treat it as read-only; strategies operate on clones.
func (e *Explorer) StateGraph() *graph.StateGraph {
	return e.stateGraph
}

// Explore runs the learning loop from start until the Maze is mature or
// the generation safety limit is hit (a warning, never an abort).
func (e *Explorer) Explore(ctx context.Context, start State) error {
	runID := uuid.New()
	ctx, span := e.tracer.Start(ctx, "Explorer.Explore",
		trace.WithAttributes(attribute.String("run_id", runID.String())))
	defer span.End()

	logger := e.logger.With(zap.String("run_id", runID.String()))

	e.maze.addState(start)
	if start.IsValid() {
		_ = e.stateGraph.AddVertex(start.Name(), nil)
		if e.initialStateName == "" {
			e.initialStateName = start.Name()
		}
	}

	limit := int(math.Pow(float64(e.alphabet.Len()), float64(e.maxGenerationMultiplier)))

	cur := start
	generation := 0
	for !e.maze.isMature() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		logger.Info("evolving state machine", zap.Int("generation", generation), zap.String("from", cur.Name()))

		sourceName, err := e.nearestImmature(cur.Name())
		if err != nil {
			span.RecordError(err)
			return err
		}

		sourceEntry, ok := e.maze.get(sourceName)
		if !ok {
			span.RecordError(ErrUnknownState)
			return ErrUnknownState
		}

		next, err := e.discover(sourceEntry.state)
		if err != nil {
			span.RecordError(err)
			return err
		}
		cur = next

		generation++
		if generation > limit {
			logger.Warn("generation limit exceeded; continuing",
				zap.Int("generation", generation), zap.Int("limit", limit))
		}
	}

	span.SetAttributes(
		attribute.Int("states", len(e.maze.order)),
		attribute.Int("edges", e.stateGraph.EdgeCount()),
	)
	return nil
}

// discover iterates alphabet events at s in order, firing each unexercised
// one. When an event changes the SUT's observable state to a different
// valid state, discover recurses into that state and returns its result
// without resuming s's remaining events in this call — they get visited
// later when the Explorer routes back to s, because it is still immature.
// A recursion into an invalid (rejected-request) target never happens:
// the transition is still recorded, but per the no-error SUT-output rule
// discover simply continues with s's next event.
func (e *Explorer) discover(s State) (State, error) {
	for {
		entry, ok := e.maze.get(s.Name())
		if !ok {
			return nil, ErrUnknownState
		}

		immature := entry.immatureEvents(e.alphabet)
		if len(immature) == 0 {
			return s, nil
		}

		eventName := immature[0]
		event, ok := e.alphabet.Get(eventName)
		if !ok {
			return nil, ErrUnknownEvent
		}

		output, err := event.Fire(e.sut)
		if err != nil {
			return nil, fmt.Errorf("explorer: fire %s at %s: %w", eventName, s.Name(), err)
		}
		target := e.sut.State()

		if err := e.commitTransition(s, event, target, output); err != nil {
			return nil, err
		}

		if target.IsValid() && !target.Equal(s) {
			e.logger.Debug("state changed",
				zap.String("from", s.Name()), zap.String("event", eventName), zap.String("to", target.Name()))
			return e.discover(target)
		}
	}
}

// commitTransition validates, records both endpoints in the Maze, and —
// if both endpoints are valid — adds the arrow to the StateGraph.
func (e *Explorer) commitTransition(source State, event Event, target State, output map[string]interface{}) error {
	t := Transition{Source: source, Target: target, Event: event, Output: output}

	for _, v := range e.validators {
		if err := v.Validate(t); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}
	}

	e.maze.addState(source)
	e.maze.addState(target)

	if err := e.maze.setTransition(t); err != nil {
		return err
	}

	if source.IsValid() && target.IsValid() {
		attrs := map[string]interface{}{
			"source": source.Value(),
			"target": target.Value(),
			"event":  event.Name(),
			"output": output,
		}
		_ = e.stateGraph.AddEdge(source.Name(), target.Name(), event.Name(), attrs, true)
	}

	return nil
}

// nearestImmature returns the name of the state the Explorer should stand
// at next: src itself if still immature, else the nearer of (a path from
// src to the closest immature state reachable by known transitions) and
// (a path from the initial state to its closest immature state), replaying
// whichever is chosen against the SUT. Ties favor the src-based path.
// Before either path is computed, if src is not the initial state and the
// initial state is itself immature, the SUT is reset and the initial state
// is returned.
func (e *Explorer) nearestImmature(src string) (string, error) {
	entry, ok := e.maze.get(src)
	if !ok {
		return "", ErrUnknownState
	}
	if !entry.isMature() {
		return src, nil
	}

	if src != e.initialStateName {
		if initEntry, ok := e.maze.get(e.initialStateName); ok && !initEntry.isMature() {
			if err := e.sut.Reset(); err != nil {
				return "", fmt.Errorf("explorer: reset: %w", err)
			}
			return e.initialStateName, nil
		}
	}

	pathCur, targetCur, okCur := e.maze.nearestImmatureFrom(src)

	var pathInit []mazeStep
	var targetInit string
	okInit := false
	if src != e.initialStateName {
		pathInit, targetInit, okInit = e.maze.nearestImmatureFrom(e.initialStateName)
	}

	switch {
	case okCur && (!okInit || len(pathCur) <= len(pathInit)):
		if err := e.executePath(pathCur); err != nil {
			return "", err
		}
		return targetCur, nil
	case okInit:
		if err := e.sut.Reset(); err != nil {
			return "", fmt.Errorf("explorer: reset: %w", err)
		}
		if err := e.executePath(pathInit); err != nil {
			return "", err
		}
		return targetInit, nil
	default:
		// Every known state is reachable from the initial state via known
		// transitions by construction (discover only ever advances from an
		// already-reachable state), so this is unreachable in practice.
		return "", ErrUnknownState
	}
}

// executePath blindly replays a recorded path by firing each step's event
// against the SUT in order, trusting that prior transitions are
// deterministic (the no-ambiguity invariant).
func (e *Explorer) executePath(path []mazeStep) error {
	for _, step := range path {
		event, ok := e.alphabet.Get(step.event)
		if !ok {
			return ErrUnknownEvent
		}
		if _, err := event.Fire(e.sut); err != nil {
			return fmt.Errorf("explorer: replay fire %s: %w", step.event, err)
		}
	}
	return nil
}
