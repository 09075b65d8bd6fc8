package explorer

// mazeEntry is one state's learned behavior: the state value itself, plus
// one transition slot per alphabet event. A nil slot means the event has
// not been fired from this state yet; a non-nil slot holds the committed
// target state name.
type mazeEntry struct {
	state       State
	transitions map[string]*string
}

func newMazeEntry(s State, alphabet *Alphabet) *mazeEntry {
	transitions := make(map[string]*string, alphabet.Len())
	for _, name := range alphabet.Names() {
		transitions[name] = nil
	}
	return &mazeEntry{state: s, transitions: transitions}
}

// isMature reports whether every alphabet event has a committed target.
func (e *mazeEntry) isMature() bool {
	for _, target := range e.transitions {
		if target == nil {
			return false
		}
	}
	return true
}

// immatureEvents returns, in alphabet order, the event names still unknown
// from this state.
func (e *mazeEntry) immatureEvents(alphabet *Alphabet) []string {
	var out []string
	for _, name := range alphabet.Names() {
		if e.transitions[name] == nil {
			out = append(out, name)
		}
	}
	return out
}

// Maze is the Explorer's learned-FSM ledger: one mazeEntry per discovered
// state name, keyed by State.Name(). It is grown monotonically — a
// transition slot, once filled, is never replaced with a different value.
type Maze struct {
	alphabet *Alphabet
	order    []string
	entries  map[string]*mazeEntry
}

func newMaze(alphabet *Alphabet) *Maze {
	return &Maze{alphabet: alphabet, entries: make(map[string]*mazeEntry)}
}

// addState records s if new; invalid states are never added (they carry
// no stable name to key the Maze on). Idempotent for known states.
func (m *Maze) addState(s State) {
	if !s.IsValid() {
		return
	}
	name := s.Name()
	if _, ok := m.entries[name]; ok {
		return
	}
	m.entries[name] = newMazeEntry(s, m.alphabet)
	m.order = append(m.order, name)
}

func (m *Maze) get(name string) (*mazeEntry, bool) {
	e, ok := m.entries[name]
	return e, ok
}

// isMature reports whether every recorded state has every alphabet event
// resolved.
func (m *Maze) isMature() bool {
	for _, name := range m.order {
		if !m.entries[name].isMature() {
			return false
		}
	}
	return true
}

// nearestImmatureFrom returns the BFS path (as alphabet event names paired
// with target names) from start to the nearest state carrying an immature
// entry, walking only already-committed transitions. Returns (nil, "",
// false) if no immature state is reachable from start via known edges.
func (m *Maze) nearestImmatureFrom(start string) (path []mazeStep, target string, ok bool) {
	if _, known := m.entries[start]; !known {
		return nil, "", false
	}
	if !m.entries[start].isMature() {
		return nil, start, true
	}

	type queued struct {
		name string
		path []mazeStep
	}
	seen := map[string]bool{start: true}
	queue := []queued{{name: start}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		entry := m.entries[cur.name]
		for _, event := range m.alphabet.Names() {
			targetPtr := entry.transitions[event]
			if targetPtr == nil {
				continue
			}
			next := *targetPtr
			if next == "" {
				// Rejected/invalid transition sentinel: not a routable Maze
				// state, so it can never be "the nearest immature state".
				continue
			}
			if seen[next] {
				continue
			}
			seen[next] = true
			nextPath := append(append([]mazeStep(nil), cur.path...), mazeStep{event: event, target: next})

			nextEntry, known := m.entries[next]
			if !known || !nextEntry.isMature() {
				return nextPath, next, true
			}
			queue = append(queue, queued{name: next, path: nextPath})
		}
	}

	return nil, "", false
}

// mazeStep is one hop of a blind-replay path: fire event, land on target.
type mazeStep struct {
	event  string
	target string
}

// setTransition commits T into the Maze. Returns ErrUnknownEvent if the
// event is not part of the alphabet slot set for T.Source, or
// ErrAmbiguousBehavior if the slot is already filled with a different
// target.
func (m *Maze) setTransition(t Transition) error {
	sourceName := t.Source.Name()
	entry, ok := m.entries[sourceName]
	if !ok {
		return ErrUnknownState
	}

	eventName := t.Event.Name()
	existing, known := entry.transitions[eventName]
	if !known {
		return ErrUnknownEvent
	}

	targetName := t.Target.Name()
	if !t.Target.IsValid() {
		targetName = ""
	}

	if existing != nil {
		if *existing != targetName {
			return ErrAmbiguousBehavior
		}
		return nil
	}

	entry.transitions[eventName] = &targetName
	return nil
}

// MazeEntry is a read-only snapshot of one state's learned behavior,
// returned by Explorer.Maze().
type MazeEntry struct {
	State       State
	Transitions map[string]string
}

// snapshot renders the Maze's live entries as the exported MazeEntry view.
func (m *Maze) snapshot() map[string]MazeEntry {
	out := make(map[string]MazeEntry, len(m.order))
	for _, name := range m.order {
		entry := m.entries[name]
		transitions := make(map[string]string)
		for event, target := range entry.transitions {
			if target != nil {
				transitions[event] = *target
			}
		}
		out[name] = MazeEntry{State: entry.state, Transitions: transitions}
	}
	return out
}
