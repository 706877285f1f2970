package core

// Event is something that happened during a tick that a shell may react to
// (sounds, logging, score persistence). Events never feed back into the core.
type Event interface {
	gameEvent()
}

// ScoreEvent is emitted when pickups were collected this tick.
type ScoreEvent struct {
	Delta int
	Total int
}

func (ScoreEvent) gameEvent() {}

// LivesEvent is emitted when the life counter changed. An ambulance and a
// chair landing on the same tick are reported as two events, bonus first.
type LivesEvent struct {
	Delta int
	Total int
	Hit   bool // lost to a chair rather than gained from an ambulance
}

func (LivesEvent) gameEvent() {}

// PhaseEvent is emitted on every state machine transition.
type PhaseEvent struct {
	From Phase
	To   Phase
}

func (PhaseEvent) gameEvent() {}

// FatalityEvent is emitted once when the last life is lost.
// SessionID identifies the finished session for score records.
type FatalityEvent struct {
	SessionID  string
	MapID      string
	FinalScore int
}

func (FatalityEvent) gameEvent() {}

// SessionEndEvent is emitted when a session is discarded, whatever the reason.
type SessionEndEvent struct {
	SessionID  string
	MapID      string
	FinalScore int
	Ticks      int  // Playing ticks the session lasted
	Cancelled  bool // Escape rather than death
}

func (SessionEndEvent) gameEvent() {}

// ConfigErrorEvent is emitted when a session could not be built.
type ConfigErrorEvent struct {
	Err error
}

func (ConfigErrorEvent) gameEvent() {}
