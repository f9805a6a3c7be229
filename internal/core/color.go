package core

// Color is the foreground color of a screen cell.
// The platform decides how each value looks on the terminal.
type Color uint8

// Base terminal colors, then their bright variants, then extras.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray

	colorCount
)

var colorNames = [colorCount]string{
	"default", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright-red", "bright-green", "bright-yellow", "bright-blue",
	"bright-magenta", "bright-cyan", "bright-white", "orange", "gray",
}

// String returns the color name, e.g. "bright-cyan".
func (c Color) String() string {
	if c < colorCount {
		return colorNames[c]
	}
	return "unknown"
}

// Valid reports whether c is one of the predefined colors.
func (c Color) Valid() bool {
	return c < colorCount
}
