// Package keymap defines key bindings and action dispatch for the TUI.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause           Action = "play_pause"
	ActionStop                Action = "stop"
	ActionNextTrack           Action = "next_track"
	ActionPrevTrack           Action = "prev_track"
	ActionSeekForward         Action = "seek_forward"
	ActionSeekBack            Action = "seek_back"
	ActionVolumeUp            Action = "volume_up"
	ActionVolumeDown          Action = "volume_down"
	ActionToggleMute          Action = "toggle_mute"
	ActionTogglePlayerDisplay Action = "toggle_player_display"

	// Playlist actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionSelect    Action = "select" // enter - play track under cursor
	ActionJumpToNow Action = "jump_to_now"
)
