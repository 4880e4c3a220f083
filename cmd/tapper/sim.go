package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tuber-tapper/internal/config"
	"github.com/vovakirdan/tuber-tapper/internal/game"
	"github.com/vovakirdan/tuber-tapper/internal/physics"
	"github.com/vovakirdan/tuber-tapper/internal/registry"
	"github.com/vovakirdan/tuber-tapper/internal/storage"
)

var (
	flagRuns     int
	flagMaxTicks int
	flagRealtime bool
	flagRecent   int
)

var simCmd = &cobra.Command{
	Use:   "sim [pilot...]",
	Short: "Run autopilots headless and summarize their runs",
	Long: `Play the game without a terminal, driven by autopilots.

Each pilot plays until it has finished --runs runs or the tick cap is
reached. Results go to an in-memory journal and are printed as a table.
With no pilot arguments every registered pilot is run.

Examples:
  tapper sim
  tapper sim jitter --runs 50 --seed 42
  tapper sim center --max-ticks 100000
  tapper sim idle --realtime --fps 120
  tapper sim jitter --recent 5`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRuns, "runs", 10, "Finished runs per pilot")
	simCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 60*60*10, "Tick cap per pilot (0 = no cap)")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace ticks at --fps instead of running flat out")
	simCmd.Flags().IntVar(&flagRecent, "recent", 0, "Also list the last N recorded runs")
}

// simOutcome is one pilot's result beyond what the journal aggregates.
type simOutcome struct {
	pilot  string
	ticks  int
	capped bool // Stopped by the tick cap with a run in progress
	live   int  // Score of the run in progress
}

func runSim(cmd *cobra.Command, args []string) {
	logger := newLogger("tapper-sim")

	gameCfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	ids := args
	if len(ids) == 0 {
		for _, p := range registry.List() {
			ids = append(ids, p.ID)
		}
	}
	for _, id := range ids {
		if !registry.Exists(id) {
			fmt.Fprintf(os.Stderr, "Error: unknown pilot %q\n", id)
			fmt.Fprintln(os.Stderr, "Run 'tapper pilots' to see available pilots.")
			os.Exit(1)
		}
	}

	journal, err := storage.OpenJournal()
	if err != nil {
		fail("%v", err)
	}
	defer journal.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	base := seed()
	var outcomes []simOutcome
	for _, id := range ids {
		out, err := simulate(ctx, id, base, gameCfg, journal)
		if err != nil {
			logger.Warn("simulation stopped", "pilot", id, "error", err)
			break
		}
		logger.Debug("pilot finished", "pilot", id, "ticks", out.ticks, "capped", out.capped)
		outcomes = append(outcomes, out)
	}

	t, err := summaryTable(journal, outcomes)
	if err != nil {
		fail("%v", err)
	}
	fmt.Println(t.View())
	fmt.Printf("\nseed %d, %d runs per pilot, tick cap %d\n", base, flagRuns, flagMaxTicks)

	if flagRecent > 0 {
		recent, err := recentRuns(journal, flagRecent)
		if err != nil {
			fail("%v", err)
		}
		fmt.Println()
		fmt.Print(recent)
	}
}

// simulate plays one pilot and records its finished runs.
func simulate(ctx context.Context, id string, seed int64, cfg config.TapperConfig, journal *storage.Journal) (simOutcome, error) {
	pilot, err := registry.Create(id, physics.NewRand(seed+1))
	if err != nil {
		return simOutcome{}, err
	}

	var difficulty game.Difficulty
	if cfg.Difficulty.Enabled {
		difficulty = config.NewDifficultyManager(cfg.Difficulty)
	}
	session := game.NewSession(game.Options{
		Params:     cfg.Params(),
		RNG:        physics.NewRand(seed),
		TickRate:   flagFPS,
		Difficulty: difficulty,
	})

	d := &game.Driver{
		Session:  session,
		Input:    pilot,
		Runs:     flagRuns,
		MaxTicks: flagMaxTicks,
	}
	if flagRealtime {
		d.TickRate = flagFPS
	}

	res, err := d.Run(ctx)
	for _, run := range res.Runs {
		if _, recErr := journal.RecordRun(storage.RunRecord{
			Source:  "sim:" + id,
			Seed:    seed,
			Score:   run.Score,
			Frames:  run.Stats.Frames,
			Hits:    run.Stats.Hits,
			Bounces: run.Stats.Bounces,
		}); recErr != nil {
			return simOutcome{}, recErr
		}
	}
	if err != nil {
		return simOutcome{}, err
	}

	return simOutcome{
		pilot:  id,
		ticks:  res.Ticks,
		capped: session.State() == game.StatePlay,
		live:   session.Score(),
	}, nil
}

// summaryTable renders the journal aggregates, one row per pilot.
func summaryTable(journal *storage.Journal, outcomes []simOutcome) (table.Model, error) {
	columns := []table.Column{
		{Title: "Pilot", Width: 10},
		{Title: "Runs", Width: 6},
		{Title: "Best", Width: 6},
		{Title: "Mean", Width: 8},
		{Title: "Frames", Width: 8},
		{Title: "Hits", Width: 7},
		{Title: "Bumps", Width: 7},
		{Title: "Capped", Width: 10},
	}

	summaries, err := journal.Summaries()
	if err != nil {
		return table.Model{}, err
	}
	bySource := make(map[string]storage.Summary, len(summaries))
	for _, sum := range summaries {
		bySource[sum.Source] = sum
	}

	rows := make([]table.Row, 0, len(outcomes))
	for _, o := range outcomes {
		// A pilot with no finished runs has no row in the journal.
		sum := bySource["sim:"+o.pilot]
		capped := "-"
		if o.capped {
			capped = "live " + strconv.Itoa(o.live)
		}
		rows = append(rows, table.Row{
			o.pilot,
			strconv.Itoa(sum.Runs),
			strconv.Itoa(sum.Best),
			fmt.Sprintf("%.1f", sum.MeanScore),
			fmt.Sprintf("%.0f", sum.MeanFrames),
			strconv.Itoa(sum.Hits),
			strconv.Itoa(sum.Bounces),
			capped,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	// No cursor in a printed table
	s.Selected = s.Cell
	t.SetStyles(s)

	return t, nil
}

// recentRuns lists the latest recorded runs, newest first.
func recentRuns(journal *storage.Journal, n int) (string, error) {
	runs, err := journal.Recent(n)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "last %d runs:\n", len(runs))
	for _, r := range runs {
		fmt.Fprintf(&sb, "  #%-4d %-12s score %-4d frames %-6d hits %-4d bumps %d\n",
			r.ID, strings.TrimPrefix(r.Source, "sim:"), r.Score, r.Frames, r.Hits, r.Bounces)
	}
	return sb.String(), nil
}
