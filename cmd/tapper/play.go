package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tuber-tapper/internal/audio"
	"github.com/vovakirdan/tuber-tapper/internal/audio/synth"
	"github.com/vovakirdan/tuber-tapper/internal/config"
	"github.com/vovakirdan/tuber-tapper/internal/core"
	"github.com/vovakirdan/tuber-tapper/internal/platform/tui"
	"github.com/vovakirdan/tuber-tapper/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal. Your terminal must report mouse clicks.

Controls:
  Left click - Tap the potato (or start / retry)
  M          - Mute / unmute
  Ctrl+S     - Save a screenshot to ~/.tapper/screenshots
  Q/Esc      - Quit

Difficulty options:
  easy   - Gravity ramps up from the base value as you score
  normal - Start at 30% of the ramp
  hard   - Start at 70% of the ramp
  fixed  - Constant gravity (the default)

Examples:
  tapper play
  tapper play --difficulty hard
  tapper play --config ./my-tapper.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	logger := newLogger("tapper")

	gameCfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	rt.Seed = seed()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}

	var player audio.Player = audio.Nop{}
	if gameCfg.Audio.Enabled {
		speaker := synth.NewSynth(gameCfg.Audio.Volume)
		if err := speaker.Init(); err != nil {
			logger.Warn("audio unavailable, playing silently", "error", err)
		} else {
			defer speaker.Close()
			player = speaker
		}
	}
	sound := audio.NewDispatcher(player, nil)
	defer sound.Wait()

	journal, err := storage.OpenJournal()
	if err != nil {
		logger.Warn("could not open run journal", "error", err)
		// Continue without a journal - game still works
		journal = nil
	} else {
		defer journal.Close()
	}

	var screenshots string
	if dir := config.DataDir(); dir != "" {
		screenshots = filepath.Join(dir, "screenshots")
	}

	runErr := tui.Run(tui.Options{
		Game:          gameCfg,
		Runtime:       rt,
		Sound:         sound,
		Journal:       journal,
		Source:        "play",
		BestLabel:     "BEST THIS SITTING",
		BestSource:    "play",
		ScreenshotDir: screenshots,
	})
	if runErr != nil {
		fail("%v", runErr)
	}
}
