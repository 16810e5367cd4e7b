// Package registry keeps the game variants the front ends can start.
// Variants register a factory in init(), so the TUI, the SSH server and the
// CLI discover them without importing game packages directly.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Game is the interface every registered variant implements.
// Games contain pure logic with no Bubble Tea dependency; the platform owns
// input mapping, timing and terminal output.
type Game interface {
	// ID is the registry key and the score-storage key (e.g. "2048_mini").
	ID() string

	// Title is the display name (e.g. "2048 (Zen)").
	Title() string

	// Reset starts a new game sized and seeded by cfg.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the state observed by the platform.
	State() core.GameState
}

// ScoreSink persists a best score for one game ID.
type ScoreSink interface {
	Load() int
	Save(score int)
}

// ScoreKeeper is implemented by games that read and update a persisted best
// score. The platform attaches a sink before Reset.
type ScoreKeeper interface {
	SetScoreSink(sink ScoreSink)
}

// Resizer is implemented by games that can follow a terminal resize without
// restarting.
type Resizer interface {
	Resize(w, h int)
}

// Describer is implemented by games with a one-line rules summary.
type Describer interface {
	Description() string
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new instance of a game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
	order   []string // registration order
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	// Metadata comes from a throwaway instance.
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}

	entries[id] = entry{info: info, factory: f}
	order = append(order, id)
}

// List returns all registered games in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(order))
	for _, id := range order {
		result = append(result, entries[id].info)
	}
	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
