package core

// Color represents a foreground color for a screen cell.
// The platform maps these to ANSI 256-color styles.
type Color uint8

// Colors used by the game renderer.
const (
	ColorDefault Color = iota
	ColorYellow
	ColorMagenta
	ColorWhite
	ColorGray
	ColorOrange
	ColorBrown
	ColorBrightYellow
	ColorBrightWhite
)

// Cell is a single screen position: a rune and its foreground color.
type Cell struct {
	Rune  rune
	Color Color
}

// blankCell is what Clear writes.
var blankCell = Cell{Rune: ' ', Color: ColorDefault}
