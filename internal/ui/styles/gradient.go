package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Gradient renders text with a horizontal color gradient, blended in HCL
// space so the transition looks even.
func Gradient(text string, from, to lipgloss.Color, bold bool) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	style := lipgloss.NewStyle().Bold(bold)
	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return style.Foreground(from).Render(text)
	}

	c1, ok1 := toColorful(from)
	c2, ok2 := toColorful(to)
	if !ok1 || !ok2 {
		return style.Foreground(from).Render(text)
	}

	var b strings.Builder
	last := float64(len(clusters) - 1)
	for i, cluster := range clusters {
		c := c1.BlendHcl(c2, float64(i)/last).Clamped()
		b.WriteString(style.Foreground(lipgloss.Color(c.Hex())).Render(cluster))
	}
	return b.String()
}

// toColorful converts a "#rrggbb" lipgloss color. ANSI indexes are not
// supported.
func toColorful(c lipgloss.Color) (colorful.Color, bool) {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{}, false
	}
	return col, true
}
