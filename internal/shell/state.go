// Package shell holds the view state machine of the interactive viewer.
package shell

import "fmt"

// State is the screen currently shown.
type State int

const (
	Welcome State = iota
	Browse
	Search
	ViewPage
)

func (s State) String() string {
	switch s {
	case Welcome:
		return "welcome"
	case Browse:
		return "browse"
	case Search:
		return "search"
	case ViewPage:
		return "view"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Event is a user request that may change the screen.
type Event int

const (
	ShowBrowse Event = iota
	ShowSearch
	Open
	Back
)

func (e Event) String() string {
	switch e {
	case ShowBrowse:
		return "show-browse"
	case ShowSearch:
		return "show-search"
	case Open:
		return "open"
	case Back:
		return "back"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

type edge struct {
	from State
	ev   Event
}

var transitions = map[edge]State{
	{Welcome, ShowBrowse}: Browse,
	{Welcome, ShowSearch}: Search,
	{Browse, Open}:        ViewPage,
	{Search, Open}:        ViewPage,
	{ViewPage, Back}:      Welcome,
}

// TransitionError reports an event that is not allowed in the current state.
type TransitionError struct {
	From  State
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s in state %s", e.Event, e.From)
}

// Machine tracks the current state. The zero value starts at Welcome.
type Machine struct {
	state State
}

func (m *Machine) State() State { return m.state }

// Can reports whether ev is allowed in the current state.
func (m *Machine) Can(ev Event) bool {
	_, ok := transitions[edge{m.state, ev}]
	return ok
}

// Fire applies ev. On error the state is unchanged.
func (m *Machine) Fire(ev Event) (State, error) {
	next, ok := transitions[edge{m.state, ev}]
	if !ok {
		return m.state, &TransitionError{From: m.state, Event: ev}
	}
	m.state = next
	return next, nil
}
