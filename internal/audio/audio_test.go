package audio

import (
	"errors"
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// recorder is a Player that remembers what it was asked to play.
type recorder struct {
	mu     sync.Mutex
	played []Sound
	err    error
}

func (r *recorder) Play(s Sound) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = append(r.played, s)
	return r.err
}

func (r *recorder) count(s Sound) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.played {
		if p == s {
			n++
		}
	}
	return n
}

type panicker struct{}

func (panicker) Play(Sound) error { panic("device gone") }

func TestDispatcherPlaysEverySound(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(rec, nil)

	d.Dispatch(Pop1, Bump2, Beep)
	d.Dispatch(Pop1)
	d.Wait()

	if rec.count(Pop1) != 2 || rec.count(Bump2) != 1 || rec.count(Beep) != 1 {
		t.Errorf("unexpected playback: %v", rec.played)
	}
}

func TestDispatcherMute(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(rec, nil)

	if on := d.ToggleMute(); on {
		t.Error("first toggle should mute")
	}
	if !d.Muted() {
		t.Error("dispatcher should report muted")
	}
	d.Dispatch(Beep)
	d.Wait()
	if rec.count(Beep) != 0 {
		t.Error("muted dispatcher should drop cues")
	}

	if on := d.ToggleMute(); !on {
		t.Error("second toggle should unmute")
	}
	d.Dispatch(Beep)
	d.Wait()
	if rec.count(Beep) != 1 {
		t.Error("unmuted dispatcher should play cues")
	}
}

func TestDispatcherSwallowsFailures(t *testing.T) {
	failing := NewDispatcher(&recorder{err: errors.New("no device")}, nil)
	failing.Dispatch(Pop1, Pop2)
	failing.Wait()

	panicking := NewDispatcher(panicker{}, nil)
	panicking.Dispatch(Beep)
	panicking.Wait()
}

func TestDispatcherNilPlayer(t *testing.T) {
	d := NewDispatcher(nil, nil)
	d.Dispatch(Beep)
	d.Wait()
}

func TestBellCountsRings(t *testing.T) {
	bell := &Bell{}
	d := NewDispatcher(bell, nil)

	if bell.Take() != 0 {
		t.Error("a fresh bell should have nothing pending")
	}

	d.Dispatch(Pop1, Bump1, Beep)
	d.Wait()

	if n := bell.Take(); n != 3 {
		t.Errorf("Take() = %d, expected 3 pending rings", n)
	}
	if n := bell.Take(); n != 0 {
		t.Errorf("Take() after draining = %d, expected 0", n)
	}
}

// The game, the SSH server and the headless runs import this package, so
// it must build without cgo or a sound device.
func TestPackageHasNoAudioBackend(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatal(err)
	}

	fset := token.NewFileSet()
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		for _, imp := range f.Imports {
			path, _ := strconv.Unquote(imp.Path.Value)
			if strings.HasPrefix(path, "github.com/gopxl/beep") || strings.HasPrefix(path, "github.com/ebitengine/oto") {
				t.Errorf("%s imports %s; speaker code belongs in the synth package", name, path)
			}
		}
	}
}
