// Package registry keeps the playable variants. Variants register a factory
// in init(), and hosts look them up by ID without importing the variant
// packages' internals.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/soundless/internal/core"
)

// Game is what every host drives: the TUI, the SSH server and the headless
// simulator all talk to a variant through this interface.
type Game interface {
	// ID is the variant identifier used on the command line and in the run log.
	ID() string

	Title() string

	// Reset discards the run and builds a new one from the runtime config.
	Reset(cfg core.RuntimeConfig)

	// Step advances one host tick with the held actions of that tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a cleared screen buffer.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh variant instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a variant. Registering the same ID twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns the registered variants sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a variant by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown variant %q", id)
	}
	return f(), nil
}

// Exists reports whether a variant is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
