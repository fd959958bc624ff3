// Package playback implements the playback controller: the player lifecycle
// state machine, the playlist cursor and the fan-out of changes to observers.
package playback

// State is the lifecycle state of the engine as tracked by the controller.
// The integer values are exposed to observers through Code and must not change.
type State int

const (
	StateIdle State = iota
	StateInitialized
	StatePreparing
	StatePrepared
	StateStarted
	StateStopped
	StatePaused
	StatePlaybackCompleted
	StateError
	StateEnd
)

var stateNames = [...]string{
	StateIdle:              "Idle",
	StateInitialized:       "Initialized",
	StatePreparing:         "Preparing",
	StatePrepared:          "Prepared",
	StateStarted:           "Started",
	StateStopped:           "Stopped",
	StatePaused:            "Paused",
	StatePlaybackCompleted: "PlaybackCompleted",
	StateError:             "Error",
	StateEnd:               "End",
}

// String returns the state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Code returns the stable integer encoding of the state (0-9).
func (s State) Code() int {
	return int(s)
}

// StateFromCode decodes a state code.
func StateFromCode(code int) (State, bool) {
	if code < 0 || code >= len(stateNames) {
		return StateIdle, false
	}
	return State(code), true
}

// Status returns the coarse status derived from the state.
func (s State) Status() Status {
	switch s {
	case StateStarted:
		return StatusPlaying
	case StatePaused:
		return StatusPaused
	default:
		return StatusStopped
	}
}

// Status is the coarse playback status shown to users.
type Status int

const (
	StatusStopped Status = iota
	StatusPlaying
	StatusPaused
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "Stopped"
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s Status) IsActive() bool {
	return s == StatusPlaying || s == StatusPaused
}

// Action is the primary action offered by a control surface:
// Pause while playing, Play otherwise.
type Action int

const (
	ActionPlay Action = iota
	ActionPause
)

// String returns the action label.
func (a Action) String() string {
	if a == ActionPause {
		return "Pause"
	}
	return "Play"
}

// Key returns the action identifier used by control surfaces.
func (a Action) Key() string {
	if a == ActionPause {
		return "pause"
	}
	return "play"
}
