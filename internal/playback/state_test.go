package playback

import "testing"

func TestState_CodeAndString(t *testing.T) {
	tests := []struct {
		state State
		code  int
		name  string
	}{
		{StateIdle, 0, "Idle"},
		{StateInitialized, 1, "Initialized"},
		{StatePreparing, 2, "Preparing"},
		{StatePrepared, 3, "Prepared"},
		{StateStarted, 4, "Started"},
		{StateStopped, 5, "Stopped"},
		{StatePaused, 6, "Paused"},
		{StatePlaybackCompleted, 7, "PlaybackCompleted"},
		{StateError, 8, "Error"},
		{StateEnd, 9, "End"},
	}
	for _, tt := range tests {
		if got := tt.state.Code(); got != tt.code {
			t.Errorf("%v.Code() = %d, want %d", tt.state, got, tt.code)
		}
		if got := tt.state.String(); got != tt.name {
			t.Errorf("%d.String() = %q, want %q", tt.code, got, tt.name)
		}
		if got, ok := StateFromCode(tt.code); !ok || got != tt.state {
			t.Errorf("StateFromCode(%d) = %v, %v; want %v, true", tt.code, got, ok, tt.state)
		}
	}
	if got := State(99).String(); got != "Unknown" {
		t.Errorf("State(99).String() = %q, want Unknown", got)
	}
}

func TestStateFromCode_OutOfRange(t *testing.T) {
	for _, code := range []int{-1, 10, 42} {
		if _, ok := StateFromCode(code); ok {
			t.Errorf("StateFromCode(%d) ok = true, want false", code)
		}
	}
}

func TestState_Status(t *testing.T) {
	tests := []struct {
		state State
		want  Status
	}{
		{StateIdle, StatusStopped},
		{StatePreparing, StatusStopped},
		{StatePrepared, StatusStopped},
		{StateStarted, StatusPlaying},
		{StatePaused, StatusPaused},
		{StatePlaybackCompleted, StatusStopped},
		{StateError, StatusStopped},
		{StateEnd, StatusStopped},
	}
	for _, tt := range tests {
		if got := tt.state.Status(); got != tt.want {
			t.Errorf("%v.Status() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestStatus_IsActive(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusStopped, false},
		{StatusPlaying, true},
		{StatusPaused, true},
	}
	for _, tt := range tests {
		if got := tt.status.IsActive(); got != tt.want {
			t.Errorf("%v.IsActive() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestAction_StringAndKey(t *testing.T) {
	if ActionPlay.String() != "Play" || ActionPlay.Key() != "play" {
		t.Errorf("ActionPlay = %q/%q", ActionPlay.String(), ActionPlay.Key())
	}
	if ActionPause.String() != "Pause" || ActionPause.Key() != "pause" {
		t.Errorf("ActionPause = %q/%q", ActionPause.String(), ActionPause.Key())
	}
}
