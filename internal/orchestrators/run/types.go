package run

import (
	runentity "github.com/deckfall/run-api/internal/entities/run"
)

// StartRunInput defines the request for starting a new run
type StartRunInput struct {
	AccountID  string
	Seed       int64  // optional; 0 seeds from the clock
	Difficulty string // optional; defaults to "normal"
	StartingHP int    // optional; defaults to the standard max HP
	MaxHP      int    // optional; defaults to the standard max HP
}

// StartRunOutput defines the response for starting a new run
type StartRunOutput struct {
	Save *runentity.RunSave
}

// GetCurrentRunInput defines the request for fetching an account's run
type GetCurrentRunInput struct {
	AccountID string
}

// GetCurrentRunOutput defines the response for fetching an account's run
type GetCurrentRunOutput struct {
	Save *runentity.RunSave
}

// MoveToInput defines the request for moving to a map node
type MoveToInput struct {
	AccountID    string
	RunID        string
	TargetNodeID string
	ClientTick   int64
}

// MoveToOutput defines the response for moving to a map node
type MoveToOutput struct {
	Save *runentity.RunSave
}

// StartCombatInput defines the request for opening an encounter on the
// current node. EncounterID, RngSeed, and Monsters are optional overrides;
// when absent the server derives them from the save.
type StartCombatInput struct {
	AccountID   string
	RunID       string
	ClientTick  int64
	EncounterID string
	RngSeed     int64
	Monsters    []*runentity.Monster
}

// StartCombatOutput defines the response for opening an encounter
type StartCombatOutput struct {
	Save *runentity.RunSave
}

// EndCombatInput defines the request for resolving the active encounter.
// FinalPlayerHP and GoldDelta are client-reported and clamped server-side.
type EndCombatInput struct {
	AccountID     string
	RunID         string
	ClientTick    int64
	Result        runentity.CombatResult
	FinalPlayerHP int
	GoldDelta     int
}

// EndCombatOutput defines the response for resolving an encounter
type EndCombatOutput struct {
	Save *runentity.RunSave
}

// AbandonRunInput defines the request for abandoning an in-progress run
type AbandonRunInput struct {
	AccountID string
	RunID     string
}

// AbandonRunOutput defines the response for abandoning a run
type AbandonRunOutput struct {
	Save *runentity.RunSave
}
