package ui

// Base carries the size and focus shared by panel models. Embed it.
type Base struct {
	width, height int
	focused       bool
}

// SetSize records the outer size, borders included.
func (b *Base) SetSize(width, height int) {
	b.width, b.height = width, height
}

func (b Base) Width() int  { return b.width }
func (b Base) Height() int { return b.height }

// SetFocused marks the panel as receiving keys.
func (b *Base) SetFocused(focused bool) {
	b.focused = focused
}

func (b Base) IsFocused() bool { return b.focused }

// ListHeight returns the rows left for content once overhead rows are taken.
func (b Base) ListHeight(overhead int) int {
	return max(b.height-overhead, 0)
}
