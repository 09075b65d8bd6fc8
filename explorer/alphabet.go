package explorer

// Alphabet is an insertion-ordered name -> Event map. Event iteration
// order must stay deterministic; a slice recording insertion order plus a
// lookup map gets there without pulling in an ordered-map dependency.
type Alphabet struct {
	names  []string
	events map[string]Event
}

// NewAlphabet returns an empty Alphabet.
func NewAlphabet() *Alphabet {
	return &Alphabet{events: make(map[string]Event)}
}

// Add registers an event under its own Name(), preserving first-insertion
// order. Re-adding a name already present overwrites the event but keeps
// its original position. Returns the Alphabet for chaining.
func (a *Alphabet) Add(e Event) *Alphabet {
	name := e.Name()
	if _, ok := a.events[name]; !ok {
		a.names = append(a.names, name)
	}
	a.events[name] = e
	return a
}

// Names returns event names in insertion order.
func (a *Alphabet) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Get returns the event registered under name, if any.
func (a *Alphabet) Get(name string) (Event, bool) {
	e, ok := a.events[name]
	return e, ok
}

// Len returns the number of distinct events configured.
func (a *Alphabet) Len() int {
	return len(a.names)
}
