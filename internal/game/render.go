package game

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"github.com/vovakirdan/tuber-tapper/internal/core"
)

// Visual characters for rendering
const (
	BodyChar  = '█'
	EyeChar   = '▒'
	LogoChar  = '▓'
	TitleText = "TUBER TAPPER"
)

// Body shape in sprite-relative units: an oval spud with two eyes that
// make the spin visible.
const (
	spudSemiX = 0.5
	spudSemiY = 0.36
	eyeRadius = 0.09
)

var eyes = []r2.Point{{X: -0.18, Y: -0.08}, {X: 0.2, Y: 0.1}}

// HUD carries platform-side text drawn over the game.
type HUD struct {
	BestLabel string // e.g. "BEST THIS SITTING"; empty hides the line
	Best      int
	Muted     bool
}

// TitleScale is the title pulse at ms milliseconds: (sin(ms/500)+3)/3,
// between 2/3 and 4/3.
func TitleScale(ms float64) float64 {
	return (math.Sin(ms/500) + 3) / 3
}

// Render draws the session into dst through the viewport. The screen is
// cleared first.
func (s *Session) Render(dst *core.Screen, vp core.Viewport, hud HUD) {
	dst.Clear()

	w, h := s.params.Width, s.params.Height

	switch s.state {
	case StateStart:
		scale := TitleScale(s.ElapsedMillis())
		drawLogo(dst, vp, r2.Point{X: w / 2, Y: h / 3}, 150*scale*w/600)
		drawCentered(dst, vp, h/3, TitleText, core.ColorBrightYellow)
		drawCentered(dst, vp, h*4/5, "CLICK TO START", core.ColorYellow)
		if hud.BestLabel != "" {
			drawCentered(dst, vp, h*4/5+h/20, fmt.Sprintf("%s: %d", hud.BestLabel, hud.Best), core.ColorGray)
		}

	case StatePlay:
		s.drawBody(dst, vp)
		dst.DrawText(vp.Area.X, vp.Area.Y, fmt.Sprintf("SCORE: %d", s.score), core.ColorWhite)

	case StateDead:
		text := fmt.Sprintf("FINAL SCORE: %d", s.score)
		_, row := vp.ToCell(r2.Point{X: w / 2, Y: h / 2.5})
		col := vp.Area.X + (vp.Area.W-len(text))/2
		dst.DrawBox(core.NewRect(col-2, row-1, len(text)+4, 3), core.ColorMagenta)
		dst.DrawText(core.Clamp(col, 0, core.Max(dst.Width()-1, 0)), row, text, core.ColorMagenta)
		drawCentered(dst, vp, h*4/5, "CLICK TO RETRY", core.ColorYellow)
		if hud.BestLabel != "" {
			drawCentered(dst, vp, h*4/5+h/20, fmt.Sprintf("%s: %d", hud.BestLabel, hud.Best), core.ColorGray)
		}
	}

	if hud.Muted {
		dst.DrawText(vp.Area.Right()-len("MUTED"), vp.Area.Y, "MUTED", core.ColorGray)
	}
}

// drawBody paints every cell whose center falls on the rotated sprite.
func (s *Session) drawBody(dst *core.Screen, vp core.Viewport) {
	b := s.body
	size := s.params.Size
	center := b.Center()
	rad := -b.Angle() * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)

	bounds := b.Bounds()
	minCol, minRow := vp.ToCell(bounds.Lo())
	maxCol, maxRow := vp.ToCell(bounds.Hi())

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			p, ok := vp.ToWorld(col, row)
			if !ok {
				continue
			}
			// Rotate into sprite space, normalized to the sprite side.
			d := p.Sub(center)
			local := r2.Point{
				X: (d.X*cos - d.Y*sin) / size,
				Y: (d.X*sin + d.Y*cos) / size,
			}
			if sq(local.X/spudSemiX)+sq(local.Y/spudSemiY) > 1 {
				continue
			}
			r, c := BodyChar, core.ColorBrown
			for _, e := range eyes {
				if local.Sub(e).Norm() <= eyeRadius {
					r, c = EyeChar, core.ColorOrange
				}
			}
			dst.SetColored(col, row, r, c)
		}
	}
}

// drawLogo fills a disc of the given world radius around center.
func drawLogo(dst *core.Screen, vp core.Viewport, center r2.Point, radius float64) {
	lo := r2.Point{X: center.X - radius, Y: center.Y - radius}
	hi := r2.Point{X: center.X + radius, Y: center.Y + radius}
	minCol, minRow := vp.ToCell(lo)
	maxCol, maxRow := vp.ToCell(hi)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if p, ok := vp.ToWorld(col, row); ok && p.Sub(center).Norm() <= radius {
				dst.SetColored(col, row, LogoChar, core.ColorBrown)
			}
		}
	}
}

// drawCentered writes text centered in the play area at world height y.
func drawCentered(dst *core.Screen, vp core.Viewport, y float64, text string, c core.Color) {
	_, row := vp.ToCell(r2.Point{X: 0, Y: y})
	col := vp.Area.X + (vp.Area.W-len(text))/2
	dst.DrawText(core.Clamp(col, 0, core.Max(dst.Width()-1, 0)), row, text, c)
}

func sq(x float64) float64 { return x * x }
