package main

import (
	"context"
	"strings"
	"testing"

	"github.com/vovakirdan/tuber-tapper/internal/config"
	"github.com/vovakirdan/tuber-tapper/internal/storage"
)

func TestSimulateRecordsRuns(t *testing.T) {
	flagRuns, flagMaxTicks, flagFPS = 3, 100000, 60

	journal, err := storage.OpenJournal()
	if err != nil {
		t.Fatal(err)
	}
	defer journal.Close()

	idle, err := simulate(context.Background(), "idle", 7, config.DefaultTapperConfig(), journal)
	if err != nil {
		t.Fatalf("simulate(idle) failed: %v", err)
	}
	if idle.capped {
		t.Error("idle pilot should finish its runs before the cap")
	}

	flagMaxTicks = 2000
	center, err := simulate(context.Background(), "center", 7, config.DefaultTapperConfig(), journal)
	if err != nil {
		t.Fatalf("simulate(center) failed: %v", err)
	}
	if center.ticks > 2000 {
		t.Errorf("center pilot ran %d ticks past the cap", center.ticks)
	}

	sums, err := journal.Summaries()
	if err != nil {
		t.Fatal(err)
	}
	var idleSum storage.Summary
	for _, s := range sums {
		if s.Source == "sim:idle" {
			idleSum = s
		}
	}
	if idleSum.Runs != 3 || idleSum.Best != 0 {
		t.Errorf("idle summary = %+v, expected 3 runs scoring 0", idleSum)
	}

	tbl, err := summaryTable(journal, []simOutcome{idle, center})
	if err != nil {
		t.Fatal(err)
	}
	out := tbl.View()
	for _, want := range []string{"Pilot", "idle", "center"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestRecentRunsListsNewestFirst(t *testing.T) {
	journal, err := storage.OpenJournal()
	if err != nil {
		t.Fatal(err)
	}
	defer journal.Close()

	for _, score := range []int{3, 9} {
		if _, err := journal.RecordRun(storage.RunRecord{Source: "sim:jitter", Score: score}); err != nil {
			t.Fatal(err)
		}
	}

	out, err := recentRuns(journal, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "last 2 runs:") {
		t.Errorf("unexpected header:\n%s", out)
	}
	nine, three := strings.Index(out, "score 9"), strings.Index(out, "score 3")
	if nine < 0 || three < 0 || nine > three {
		t.Errorf("runs should be listed newest first:\n%s", out)
	}
	if strings.Contains(out, "sim:") {
		t.Errorf("source prefix should be trimmed:\n%s", out)
	}
}

func TestLoadConfigAppliesPreset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	testChdir(t, t.TempDir())
	flagConfig, flagDifficulty = "", "hard"
	defer func() { flagDifficulty = "" }()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset not applied: %+v", cfg.Difficulty)
	}

	flagDifficulty = "nightmare"
	if _, err := loadConfig(); err == nil {
		t.Error("unknown preset should fail")
	}
}
