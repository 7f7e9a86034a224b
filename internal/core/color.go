package core

// Color is a foreground color for a screen cell.
// Platforms map these onto ANSI 256-color codes.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDim
)
