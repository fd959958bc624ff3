// Package ui holds the pieces shared by the terminal panels.
package ui

// Panel geometry in terminal cells.
const (
	// ScrollMargin keeps this many rows visible around the cursor.
	ScrollMargin = 3

	// BorderHeight is the top and bottom border of a panel.
	BorderHeight = 2

	// HeaderHeight is a panel's title row plus its separator.
	HeaderHeight = 2

	// PanelOverhead is every row of a panel that is not a list row.
	PanelOverhead = BorderHeight + HeaderHeight

	// MinExpandedWidth is the narrowest terminal that gets the expanded player bar.
	MinExpandedWidth = 40
)
