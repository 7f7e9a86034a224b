package engine

// Event is something observable that happened during a tick.
type Event interface {
	// Name is the stable wire name of the event.
	Name() string
	engineEvent()
}

// StageTransition is emitted when a new stage begins.
type StageTransition struct {
	Index int `json:"index"`
}

func (StageTransition) Name() string { return "stage_transition" }
func (StageTransition) engineEvent() {}

// ObjectiveCollected is emitted when a lantern or checkpoint is picked up.
type ObjectiveCollected struct {
	ID int `json:"id"`
}

func (ObjectiveCollected) Name() string { return "objective_collected" }
func (ObjectiveCollected) engineEvent() {}

// ThreatSpawned is emitted when a pursuer enters the world.
type ThreatSpawned struct {
	ID int `json:"id"`
}

func (ThreatSpawned) Name() string { return "threat_spawned" }
func (ThreatSpawned) engineEvent() {}

// ThreatCollision is emitted when a pursuer catches the player.
type ThreatCollision struct {
	ID int `json:"id"`
}

func (ThreatCollision) Name() string { return "threat_collision" }
func (ThreatCollision) engineEvent() {}

// ChallengeStarted is emitted when the silence challenge begins.
type ChallengeStarted struct{}

func (ChallengeStarted) Name() string { return "challenge_started" }
func (ChallengeStarted) engineEvent() {}

// RitualComplete is emitted when the silence timer fills.
type RitualComplete struct{}

func (RitualComplete) Name() string { return "ritual_complete" }
func (RitualComplete) engineEvent() {}

// GameOver is emitted once when the player is caught.
type GameOver struct{}

func (GameOver) Name() string { return "game_over" }
func (GameOver) engineEvent() {}

// Win is emitted once when the ritual completes.
type Win struct{}

func (Win) Name() string { return "win" }
func (Win) engineEvent() {}

// Heartbeat is a cue for hosts that play sound: the player is loud.
type Heartbeat struct {
	Intensity float64 `json:"intensity"`
}

func (Heartbeat) Name() string { return "heartbeat" }
func (Heartbeat) engineEvent() {}
