package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r2"

	"github.com/vovakirdan/tuber-tapper/internal/audio"
	"github.com/vovakirdan/tuber-tapper/internal/config"
	"github.com/vovakirdan/tuber-tapper/internal/core"
	"github.com/vovakirdan/tuber-tapper/internal/game"
	"github.com/vovakirdan/tuber-tapper/internal/physics"
	"github.com/vovakirdan/tuber-tapper/internal/storage"
)

// footerRows is the space kept below the play area for the help line.
const footerRows = 1

// bellHoldTicks is how long a pending bell stays in the frame. The
// renderer may skip frames, so one tick is not enough to reach the
// terminal; the line it sits on is unchanged meanwhile and written once.
const bellHoldTicks = 3

// Below this play area size the game is unreadable.
const (
	minAreaW = 16
	minAreaH = 10
)

// Options configure a Model.
type Options struct {
	Game    config.TapperConfig
	Runtime core.RuntimeConfig

	Sound   *audio.Dispatcher // nil plays nothing
	Bell    *audio.Bell       // Set when Sound plays into a Bell; rung in the frame
	Journal *storage.Journal  // nil records nothing

	// Source tags this model's runs in the journal.
	Source string

	// BestLabel and BestSource pick the best score shown on the title and
	// game over screens. An empty BestSource means every source.
	BestLabel  string
	BestSource string

	// ScreenshotDir receives ctrl+s dumps. Empty disables screenshots.
	ScreenshotDir string

	// Renderer styles the output; nil uses the default renderer.
	Renderer *lipgloss.Renderer
}

// Model is the Bubble Tea model driving one game session.
type Model struct {
	opts     Options
	session  *game.Session
	screen   *core.Screen
	viewport core.Viewport
	queue    *core.EventQueue
	palette  Palette
	keys     KeyMap
	help     help.Model
	best     int
	bell     int // Ticks left to keep BEL in the frame
	quitting bool
}

// NewModel creates a model on the title screen.
func NewModel(opts Options) Model {
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	if opts.Sound == nil {
		opts.Sound = audio.NewDispatcher(nil, nil)
	}

	var difficulty game.Difficulty
	if opts.Game.Difficulty.Enabled {
		difficulty = config.NewDifficultyManager(opts.Game.Difficulty)
	}

	session := game.NewSession(game.Options{
		Params:     opts.Game.Params(),
		RNG:        physics.NewRand(opts.Runtime.Seed),
		TickRate:   opts.Runtime.TickRate,
		Difficulty: difficulty,
	})

	m := Model{
		opts:    opts,
		session: session,
		screen:  core.NewScreen(opts.Runtime.ScreenW, playRows(opts.Runtime.ScreenH)),
		queue:   &core.EventQueue{},
		palette: NewPalette(opts.Renderer),
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
	m.keys.Screenshot.SetEnabled(opts.ScreenshotDir != "")
	m.viewport = m.fitViewport(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	m.refreshBest()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Quit is handled here, in every
// state, and never reaches the session.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Mute):
		m.opts.Sound.ToggleMute()
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
	}
	return m, nil
}

// handleMouse queues left-button presses inside the play area.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if p, ok := m.viewport.ToWorld(msg.X, msg.Y); ok {
		m.queue.Push(core.ClickAt(p.X, p.Y))
	}
	return m, nil
}

// handleResize refits the play area. The session is unaffected: the play
// area has a fixed size in world units.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playRows(msg.Height))
	m.viewport = m.fitViewport(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one session step with at most one queued click.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	f := m.session.Step(m.queue.Pop())
	m.opts.Sound.Dispatch(f.Sounds...)

	if f.Ended {
		m.recordRun(f.Score)
	}

	if m.bell > 0 {
		m.bell--
	}
	if m.opts.Bell != nil && m.opts.Bell.Take() > 0 {
		m.bell = bellHoldTicks
	}

	return m, tickCmd(m.opts.Runtime.TickRate)
}

// recordRun writes the finished run to the journal.
func (m *Model) recordRun(score int) {
	if m.opts.Journal == nil {
		return
	}
	stats := m.session.Stats()
	//nolint:errcheck // Best-effort save, game continues regardless
	m.opts.Journal.RecordRun(storage.RunRecord{
		Source:  m.opts.Source,
		Seed:    m.opts.Runtime.Seed,
		Score:   score,
		Frames:  stats.Frames,
		Hits:    stats.Hits,
		Bounces: stats.Bounces,
	})
	m.refreshBest()
}

// refreshBest reloads the best score shown on the menus.
func (m *Model) refreshBest() {
	if m.opts.Journal == nil || m.opts.BestLabel == "" {
		return
	}
	if best, err := m.opts.Journal.Best(m.opts.BestSource); err == nil {
		m.best = best
	}
}

// playRows is the screen buffer height for a terminal of h rows.
func playRows(h int) int {
	return core.Max(h-footerRows, 0)
}

func (m Model) fitViewport(w, h int) core.Viewport {
	size := r2.Point{X: m.opts.Game.Screen.Width, Y: m.opts.Game.Screen.Height}
	return core.NewViewport(w, h, footerRows, size)
}

func (m Model) hud() game.HUD {
	hud := game.HUD{Muted: m.opts.Sound.Muted()}
	if m.opts.Journal != nil {
		hud.BestLabel = m.opts.BestLabel
		hud.Best = m.best
	}
	return hud
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}
	m.session.Render(m.screen, m.viewport, m.hud())

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.opts.ScreenshotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.opts.ScreenshotDir, fmt.Sprintf("tapper_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.viewport.Area.W < minAreaW || m.viewport.Area.H < minAreaH {
		m.screen.Clear()
		m.screen.DrawTextCentered(m.screen.Height()/2, "TERMINAL TOO SMALL", core.ColorBrightWhite)
	} else {
		m.session.Render(m.screen, m.viewport, m.hud())
	}
	footer := m.help.View(m.keys)
	if m.bell > 0 {
		footer = "\a" + footer
	}
	return m.palette.RenderScreen(m.screen) + "\n" + footer
}

// Session exposes the underlying session for inspection.
func (m Model) Session() *game.Session {
	return m.session
}

// Run starts the local Bubble Tea program and blocks until the player quits.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks are the game's only input
	)

	_, err := p.Run()
	return err
}
