package game

import (
	"math"
	"strings"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/vovakirdan/tuber-tapper/internal/core"
)

func renderTestSession(s *Session, hud HUD) string {
	screen := core.NewScreen(80, 24)
	vp := core.NewViewport(80, 24, 1, r2.Point{X: 600, Y: 800})
	s.Render(screen, vp, hud)
	return screen.String()
}

func TestRenderTitle(t *testing.T) {
	s := newTestSession()
	out := renderTestSession(s, HUD{BestLabel: "BEST THIS SITTING", Best: 7})

	for _, want := range []string{TitleText, "CLICK TO START", "BEST THIS SITTING: 7"} {
		if !strings.Contains(out, want) {
			t.Errorf("title screen missing %q:\n%s", want, out)
		}
	}
	if !strings.ContainsRune(out, LogoChar) {
		t.Error("title screen should draw the logo")
	}
}

func TestRenderPlay(t *testing.T) {
	s := newTestSession()
	s.Step(core.ClickAt(0, 0))
	out := renderTestSession(s, HUD{})

	if !strings.Contains(out, "SCORE: 0") {
		t.Errorf("play screen missing score:\n%s", out)
	}
	if !strings.ContainsRune(out, BodyChar) {
		t.Errorf("play screen should draw the body:\n%s", out)
	}
	if strings.Contains(out, "MUTED") {
		t.Error("MUTED shown while sound is on")
	}
}

func TestRenderDead(t *testing.T) {
	s := newTestSession()
	s.Step(core.ClickAt(0, 0))
	fallToDeath(t, s)
	out := renderTestSession(s, HUD{Muted: true})

	for _, want := range []string{"FINAL SCORE: 0", "CLICK TO RETRY", "MUTED"} {
		if !strings.Contains(out, want) {
			t.Errorf("game over screen missing %q:\n%s", want, out)
		}
	}
	if strings.ContainsRune(out, BodyChar) {
		t.Error("game over screen should not draw the body")
	}
}

func TestRenderTinyTerminal(t *testing.T) {
	s := newTestSession()
	s.Step(core.ClickAt(0, 0))

	screen := core.NewScreen(3, 2)
	vp := core.NewViewport(3, 2, 1, r2.Point{X: 600, Y: 800})
	s.Render(screen, vp, HUD{Muted: true})
}

func TestTitleScale(t *testing.T) {
	tests := []struct {
		ms   float64
		want float64
	}{
		{0, 1},
		{500 * math.Pi / 2, 4.0 / 3},
		{500 * 3 * math.Pi / 2, 2.0 / 3},
	}
	for _, tt := range tests {
		if got := TitleScale(tt.ms); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("TitleScale(%v) = %v, expected %v", tt.ms, got, tt.want)
		}
	}
}
