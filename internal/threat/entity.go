// Package threat implements the pursuers: a single fading ghost for the
// stage rule set and a noise-driven swarm of stalkers.
package threat

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/soundless/internal/config"
	"github.com/vovakirdan/soundless/internal/core"
)

// Kind tags which policy produced an entity.
type Kind string

const (
	KindGhost   Kind = "ghost"
	KindStalker Kind = "stalker"
)

// State is the pursuit state of an entity.
type State int

const (
	Dormant State = iota
	Pursuing
	Fading
)

func (s State) String() string {
	switch s {
	case Dormant:
		return "dormant"
	case Pursuing:
		return "pursuing"
	case Fading:
		return "fading"
	default:
		return "unknown"
	}
}

// MarshalText lets snapshots encode the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Entity is one pursuer.
type Entity struct {
	ID      int       `json:"id"`
	Kind    Kind      `json:"type"`
	Pos     core.Vec2 `json:"pos"`
	Opacity float64   `json:"opacity"`
	Speed   float64   `json:"speed"`
	Radius  float64   `json:"radius"`
	Active  bool      `json:"active"`
	State   State     `json:"state"`
}

// Touches reports whether the entity overlaps a circle at p with radius r.
func (e Entity) Touches(p core.Vec2, r float64) bool {
	return core.Dist(e.Pos, p) < e.Radius+r
}

// stepToward moves the entity toward target by at most dist, never past it.
func (e *Entity) stepToward(target core.Vec2, dist float64) {
	delta := target.Sub(e.Pos)
	if l := delta.Len(); l <= dist {
		e.Pos = target
		return
	}
	e.Pos = e.Pos.Add(delta.Normalize().Scale(dist))
}

// Context is the per-tick view of the world a policy needs.
type Context struct {
	Frames       float64 // Reference frames elapsed this tick
	Ticks        int
	Stage        int
	StageCfg     config.StageConfig
	Player       core.Vec2
	PlayerRadius float64
	Moving       bool
	Sustained    float64
	Noise        float64
	Whispering   bool
	Rand         *rand.Rand
}

// Outcome reports what happened during one policy update.
type Outcome struct {
	Rolled      bool  // A spawn roll was attempted
	Spawned     []int // IDs of entities spawned this tick
	Collided    bool
	CollisionID int
}

// Policy drives a set of entities.
type Policy interface {
	Update(ctx Context) Outcome
	Entities() []Entity
	Clear()
}

// FrameChance converts a per-frame probability into the probability of at
// least one success over frames reference frames.
func FrameChance(p, frames float64) float64 {
	if p <= 0 || frames <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return 1 - math.Pow(1-p, frames)
}
