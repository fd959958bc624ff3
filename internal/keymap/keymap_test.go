package keymap

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func actionsOf(bindings []Binding) []Action {
	var out []Action
	for _, b := range bindings {
		out = append(out, b.Action)
	}
	return out
}

func TestByContext(t *testing.T) {
	tests := []struct {
		context string
		want    []Action
	}{
		{"global", []Action{ActionQuit, ActionHelp}},
		{"playback", []Action{
			ActionPlayPause, ActionStop, ActionNextTrack, ActionPrevTrack,
			ActionSeekForward, ActionSeekBack, ActionVolumeUp, ActionVolumeDown,
			ActionToggleMute, ActionTogglePlayerDisplay,
		}},
		{"playlist", []Action{
			ActionMoveUp, ActionMoveDown, ActionJumpStart, ActionJumpEnd,
			ActionSelect, ActionJumpToNow,
		}},
		{"unknown", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.context, func(t *testing.T) {
			got := ByContext(tt.context)
			assert.Equal(t, tt.want, actionsOf(got))
			for _, b := range got {
				assert.Equal(t, tt.context, b.Context)
			}
		})
	}
}

func TestBindings_Complete(t *testing.T) {
	contexts := []string{"global", "playback", "playlist"}
	for i, b := range Bindings {
		assert.NotEmpty(t, b.Action, "binding %d", i)
		assert.NotEmpty(t, b.Keys, "binding %d (%s)", i, b.Action)
		assert.NotEmpty(t, b.Description, "binding %d (%s)", i, b.Action)
		assert.True(t, slices.Contains(contexts, b.Context), "binding %d (%s) context %q", i, b.Action, b.Context)
	}
}

func TestBindings_NoConflictingKeys(t *testing.T) {
	seen := make(map[string]Action)
	for _, b := range Bindings {
		for _, k := range b.Keys {
			if prev, ok := seen[k]; ok {
				t.Errorf("key %q bound to both %q and %q", k, prev, b.Action)
			}
			seen[k] = b.Action
		}
	}
}
