// Package core provides fundamental types and utilities for the game platform.
// It contains no Bubble Tea dependency to keep game logic pure and testable.
package core

import (
	"math"

	"github.com/golang/geo/r2"
)

// Rect represents an axis-aligned rectangle in terminal cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// CellAspect is how many cell widths fit in one cell height on a typical
// terminal font.
const CellAspect = 2.0

// Viewport maps the fixed play area onto a block of terminal cells.
// The block keeps the play area's aspect ratio and is centered in the
// terminal; the rows below it are left for the footer.
type Viewport struct {
	Area Rect     // Cells covered by the play area
	Size r2.Point // Play-area dimensions in world units
}

// NewViewport fits a play area of the given size into a terminal of
// termW x termH cells, keeping reservedRows free at the bottom.
func NewViewport(termW, termH, reservedRows int, size r2.Point) Viewport {
	rows := Max(termH-reservedRows, 1)
	cols := int(math.Round(float64(rows) * CellAspect * size.X / size.Y))
	if cols > termW {
		cols = Max(termW, 1)
		rows = Max(int(math.Round(float64(cols)*size.Y/(size.X*CellAspect))), 1)
	}
	cols = Max(cols, 1)

	return Viewport{
		Area: NewRect((termW-cols)/2, Max((termH-reservedRows-rows)/2, 0), cols, rows),
		Size: size,
	}
}

// ToWorld converts a terminal cell to the play-area point at the cell's
// center. ok is false when the cell lies outside the play area.
func (v Viewport) ToWorld(col, row int) (p r2.Point, ok bool) {
	if !v.Area.Contains(col, row) {
		return r2.Point{}, false
	}
	x := (float64(col-v.Area.X) + 0.5) * v.Size.X / float64(v.Area.W)
	y := (float64(row-v.Area.Y) + 0.5) * v.Size.Y / float64(v.Area.H)
	return r2.Point{X: x, Y: y}, true
}

// ToCell converts a play-area point to the terminal cell containing it.
// Points outside the play area map to cells outside Area.
func (v Viewport) ToCell(p r2.Point) (col, row int) {
	col = v.Area.X + int(math.Floor(p.X*float64(v.Area.W)/v.Size.X))
	row = v.Area.Y + int(math.Floor(p.Y*float64(v.Area.H)/v.Size.Y))
	return col, row
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
