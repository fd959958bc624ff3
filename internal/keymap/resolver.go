package keymap

import "fmt"

// Resolver maps key strings, as reported by tea.KeyMsg.String, to actions.
type Resolver struct {
	bindings map[string]Action
}

// NewResolver creates a resolver from bindings. A key bound twice resolves
// to its last binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{bindings: make(map[string]Action)}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
		}
	}
	return r
}

// Resolve returns the action for a key, or "" if the key is unbound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// DisplayKey returns a key as shown in help text.
func DisplayKey(key string) string {
	switch key {
	case " ":
		return "space"
	case "left":
		return "←"
	case "right":
		return "→"
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return key
}

// Hint returns "key description" using the first key of b.
func Hint(b Binding) string {
	if len(b.Keys) == 0 {
		return b.Description
	}
	return fmt.Sprintf("%s %s", DisplayKey(b.Keys[0]), b.Description)
}
