// Package view owns the lookup state machine and drives rendering.
//
// State changes only through Transition, a pure function of the current
// state and an event. The Controller runs a single event loop that applies
// transitions and renders; network work runs elsewhere and reports back as
// events tagged with the request token that started it.
package view

import "github.com/couchcryptid/weather-lookup/internal/domain"

// Phase is the visible mode of the view.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseError
	PhaseLoaded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Action identifies which user control started a request.
type Action string

const (
	ActionSearch Action = "search"
	ActionLocate Action = "locate"
)

// State is the complete view state. Message is set in PhaseError; Snapshot
// and DisplayName in PhaseLoaded.
type State struct {
	Phase       Phase
	Message     string
	Snapshot    domain.WeatherSnapshot
	DisplayName string

	// Request is the token of the latest action. Completions carrying any
	// other token are stale.
	Request uint64

	// Locating is true while the "use current location" control is disabled.
	Locating bool
}

// Event is an input to Transition.
type Event interface {
	event()
}

// SearchStarted moves to Loading for a name search.
type SearchStarted struct {
	Request uint64
}

// LocateStarted moves to Loading and disables the location control.
type LocateStarted struct {
	Request uint64
}

// InputRejected moves straight to Error without a network call.
type InputRejected struct {
	Request uint64
	Message string
}

// WeatherLoaded completes a request successfully.
type WeatherLoaded struct {
	Request  uint64
	Action   Action
	Location domain.Location
	Snapshot domain.WeatherSnapshot
}

// LookupFailed completes a request with a user-facing message.
type LookupFailed struct {
	Request uint64
	Action  Action
	Message string
}

// LocateSettled re-enables the location control.
type LocateSettled struct{}

func (SearchStarted) event() {}
func (LocateStarted) event() {}
func (InputRejected) event() {}
func (WeatherLoaded) event() {}
func (LookupFailed) event()  {}
func (LocateSettled) event() {}

// IsStale reports whether ev completes a request other than the latest one.
func IsStale(s State, ev Event) bool {
	switch e := ev.(type) {
	case WeatherLoaded:
		return e.Request != s.Request
	case LookupFailed:
		return e.Request != s.Request
	default:
		return false
	}
}

// Transition returns the state that follows s after ev. Stale completions
// leave s unchanged.
func Transition(s State, ev Event) State {
	if IsStale(s, ev) {
		return s
	}

	switch e := ev.(type) {
	case SearchStarted:
		return State{Phase: PhaseLoading, Request: e.Request, Locating: s.Locating}
	case LocateStarted:
		return State{Phase: PhaseLoading, Request: e.Request, Locating: true}
	case InputRejected:
		return State{Phase: PhaseError, Message: e.Message, Request: e.Request, Locating: s.Locating}
	case WeatherLoaded:
		return State{
			Phase:       PhaseLoaded,
			Snapshot:    e.Snapshot,
			DisplayName: e.Location.DisplayName,
			Request:     e.Request,
			Locating:    s.Locating,
		}
	case LookupFailed:
		return State{Phase: PhaseError, Message: e.Message, Request: e.Request, Locating: s.Locating}
	case LocateSettled:
		s.Locating = false
		return s
	default:
		return s
	}
}
