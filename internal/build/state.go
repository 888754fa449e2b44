package build

import "fmt"

// State is a step of the resolution pipeline.
type State int

const (
	Start State = iota
	Probing
	Inferring
	Fetching
	Building
	Emitting
	DoneFound // an installed library satisfied the probe
	DoneBuilt // directives were emitted for a vendored build
)

var stateNames = [...]string{
	Start:     "start",
	Probing:   "probing",
	Inferring: "inferring",
	Fetching:  "fetching",
	Building:  "building",
	Emitting:  "emitting",
	DoneFound: "done(found)",
	DoneBuilt: "done(built)",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == DoneFound || s == DoneBuilt
}

// Inferring -> Emitting is the resume path taken when the static library
// already exists.
var transitions = map[State][]State{
	Start:     {Probing},
	Probing:   {DoneFound, Inferring},
	Inferring: {Fetching, Emitting},
	Fetching:  {Building},
	Building:  {Emitting},
	Emitting:  {DoneBuilt},
}

// CanTransition reports whether the pipeline may move from one state to
// another.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// machine tracks the current state and the path taken to reach it.
// No state is ever revisited.
type machine struct {
	visited []State
}

func newMachine() *machine {
	return &machine{visited: []State{Start}}
}

func (m *machine) current() State {
	return m.visited[len(m.visited)-1]
}

func (m *machine) to(s State) error {
	if cur := m.current(); !CanTransition(cur, s) {
		return fmt.Errorf("build: invalid transition %v -> %v", cur, s)
	}
	m.visited = append(m.visited, s)
	return nil
}
