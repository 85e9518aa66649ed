package core

// Color is a cell's foreground color. The terminal renderer maps each
// value to an ANSI 256-color code.
type Color uint8

// Colors available to games. The grays are for chrome such as the well
// border and the ghost piece.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorPurple
	ColorGray
	ColorDarkGray
)
