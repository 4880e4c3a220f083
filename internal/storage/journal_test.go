package storage

import (
	"math"
	"sync"
	"testing"
	"time"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := OpenJournal()
	if err != nil {
		t.Fatalf("OpenJournal() failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournalStartsEmpty(t *testing.T) {
	j := openTestJournal(t)

	best, err := j.Best("")
	if err != nil {
		t.Fatalf("Best() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best 0 for empty journal, got %d", best)
	}

	recent, err := j.Recent(5)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("Expected no runs, got %d", len(recent))
	}
}

func TestJournalsAreIndependent(t *testing.T) {
	a := openTestJournal(t)
	b := openTestJournal(t)

	if _, err := a.RecordRun(RunRecord{Source: "play", Score: 9}); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	best, err := b.Best("")
	if err != nil {
		t.Fatal(err)
	}
	if best != 0 {
		t.Errorf("Second journal should not see the first one's runs, best = %d", best)
	}
}

func TestJournalBest(t *testing.T) {
	j := openTestJournal(t)

	for _, r := range []RunRecord{
		{Source: "play", Score: 4},
		{Source: "play", Score: 11},
		{Source: "ssh:ann", Score: 20},
	} {
		if _, err := j.RecordRun(r); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	tests := []struct {
		source string
		want   int
	}{
		{"play", 11},
		{"ssh:ann", 20},
		{"", 20},
		{"sim:idle", 0},
	}
	for _, tt := range tests {
		got, err := j.Best(tt.source)
		if err != nil {
			t.Fatalf("Best(%q) failed: %v", tt.source, err)
		}
		if got != tt.want {
			t.Errorf("Best(%q) = %d, expected %d", tt.source, got, tt.want)
		}
	}
}

func TestJournalSummary(t *testing.T) {
	j := openTestJournal(t)

	runs := []RunRecord{
		{Source: "sim:center", Score: 2, Frames: 100, Hits: 2, Bounces: 1},
		{Source: "sim:center", Score: 6, Frames: 300, Hits: 6, Bounces: 0},
		{Source: "sim:idle", Score: 0, Frames: 90},
	}
	for _, r := range runs {
		if _, err := j.RecordRun(r); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	all, err := j.Summaries()
	if err != nil {
		t.Fatalf("Summaries() failed: %v", err)
	}
	if len(all) != 2 || all[0].Source != "sim:center" || all[1].Source != "sim:idle" {
		t.Fatalf("Unexpected summaries: %+v", all)
	}

	sum := all[0]
	if sum.Runs != 2 || sum.Best != 6 || sum.Hits != 8 || sum.Bounces != 1 {
		t.Errorf("Unexpected summary: %+v", sum)
	}
	if math.Abs(sum.MeanScore-4) > 1e-9 || math.Abs(sum.MeanFrames-200) > 1e-9 {
		t.Errorf("Unexpected means: score %v, frames %v", sum.MeanScore, sum.MeanFrames)
	}

	if idle := all[1]; idle.Runs != 1 || idle.Best != 0 || idle.Hits != 0 {
		t.Errorf("Unexpected idle summary: %+v", idle)
	}
}

func TestJournalSummariesEmpty(t *testing.T) {
	j := openTestJournal(t)

	all, err := j.Summaries()
	if err != nil {
		t.Fatalf("Summaries() failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("Expected no summaries, got %+v", all)
	}
}

func TestJournalRecent(t *testing.T) {
	j := openTestJournal(t)

	for i := 1; i <= 5; i++ {
		if _, err := j.RecordRun(RunRecord{Source: "play", Seed: 42, Score: i}); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	recent, err := j.Recent(3)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(recent))
	}
	for i, want := range []int{5, 4, 3} {
		if recent[i].Score != want {
			t.Errorf("recent[%d].Score = %d, expected %d", i, recent[i].Score, want)
		}
	}
	if recent[0].Seed != 42 || recent[0].Source != "play" {
		t.Errorf("Unexpected record: %+v", recent[0])
	}
	if recent[0].CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestJournalConcurrentWrites(t *testing.T) {
	j := openTestJournal(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			if _, err := j.RecordRun(RunRecord{Source: "ssh:load", Score: score}); err != nil {
				t.Errorf("RecordRun() failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	all, err := j.Summaries()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].Runs != 8 || all[0].Best != 7 {
		t.Errorf("Expected 8 runs with best 7, got %+v", all)
	}
}

func TestParseTime(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	if got := parseTime(now); !got.Equal(now) {
		t.Errorf("parseTime(time) = %v", got)
	}
	if got := parseTime("2024-05-01 12:30:00"); !got.Equal(now) {
		t.Errorf("parseTime(string) = %v", got)
	}
	if got := parseTime(nil); !got.IsZero() {
		t.Errorf("parseTime(nil) = %v, expected zero", got)
	}
}
