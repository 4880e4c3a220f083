// Package registry provides a global registry for autopilot factories.
// Pilots register themselves in init() functions, allowing the CLI to
// discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tuber-tapper/internal/game"
	"github.com/vovakirdan/tuber-tapper/internal/physics"
)

// Pilot is an input source that plays the game on its own.
// Pilots see only the session View and must be deterministic for a given RNG.
type Pilot interface {
	game.InputSource

	// ID returns a unique identifier for this pilot (e.g., "center").
	// Used for CLI arguments and journal sources.
	ID() string

	// Description returns a one-line summary for listings.
	Description() string
}

// PilotInfo contains metadata about a registered pilot.
type PilotInfo struct {
	ID          string
	Description string
}

// Factory creates a new pilot drawing randomness from rng.
type Factory func(rng physics.RNG) Pilot

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a pilot factory to the registry.
// Typically called from a pilot's init() function.
// Panics if a pilot with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: pilot %q already registered", id))
	}

	factories[id] = f

	// Get description by creating a temporary instance
	p := f(physics.NewRand(0))
	descriptions[id] = p.Description()
}

// List returns information about all registered pilots, sorted by ID.
func List() []PilotInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PilotInfo, 0, len(factories))
	for id := range factories {
		result = append(result, PilotInfo{
			ID:          id,
			Description: descriptions[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new pilot by its ID.
// Returns an error if the pilot ID is not registered.
func Create(id string, rng physics.RNG) (Pilot, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown pilot %q", id)
	}

	return f(rng), nil
}

// Exists checks if a pilot with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
