package keymap

// Binding maps keys to an action.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "playlist"
}

// Bindings contains all key bindings, used for dispatch and help.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionStop, []string{"s"}, "Stop", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Fast forward", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Rewind", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionToggleMute, []string{"m"}, "Mute", "playback"},
	{ActionTogglePlayerDisplay, []string{"v"}, "Toggle player display", "playback"},

	// Playlist
	{ActionMoveUp, []string{"k", "up"}, "Move up", "playlist"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "playlist"},
	{ActionJumpStart, []string{"g", "home"}, "First track", "playlist"},
	{ActionJumpEnd, []string{"G", "end"}, "Last track", "playlist"},
	{ActionSelect, []string{"enter"}, "Play track", "playlist"},
	{ActionJumpToNow, []string{"."}, "Jump to playing track", "playlist"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
