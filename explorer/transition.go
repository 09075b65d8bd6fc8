package explorer

// Transition is one observed (source, event) -> (target, output) fact,
// passed to Validator.Validate before being committed to the Maze.
type Transition struct {
	Source State
	Target State
	Event  Event
	Output map[string]interface{}
}
