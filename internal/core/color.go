package core

// Color is a foreground color for a screen cell.
// Values map to ANSI colors in the platform renderers.
type Color uint8

// Colors used by the board, HUD and overlays.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightWhite
	ColorGray
)
