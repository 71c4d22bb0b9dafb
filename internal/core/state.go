package core

// GameState is the platform-visible summary of a game.
// Returned by Game.State() so the platform can show and persist results
// without knowing game internals.
type GameState struct {
	Score    int    // Current score
	GameOver bool   // Whether the run has ended
	Paused   bool   // Whether the game is paused
	Started  bool   // Whether the run has left the start screen
	Day      int    // Sprint day reached
	Shipped  int    // Features shipped this run
	Cause    string // What ended the run, empty while running
	Elapsed  int64  // Milliseconds of play in this run
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// EventKind identifies something noteworthy that happened during a tick.
type EventKind int

const (
	EventJumped EventKind = iota + 1
	EventCollected
	EventDayAdvanced
	EventGameOver
	EventRestarted
)

// Event is a cue for the presentation layer (sound, flash, popup).
type Event struct {
	Kind  EventKind
	Value int    // Pickup value or new day number
	Label string // Pickup or obstacle name
}
