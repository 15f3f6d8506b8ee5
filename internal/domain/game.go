package domain

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is how a recorded game ended
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeWon        Outcome = "won"
	OutcomeAborted    Outcome = "aborted"
)

// Game is the persisted record of one play-through
type Game struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time // zero while in progress
	Outcome    Outcome
	Thresholds ThresholdTable
	Calibrated bool
	Sequence   []Color
}

// NewGame creates an in-progress game with a fresh ID
func NewGame() *Game {
	return &Game{
		ID:         uuid.NewString(),
		StartedAt:  time.Now().UTC(),
		Outcome:    OutcomeInProgress,
		Thresholds: NewThresholdTable(),
	}
}

// Finished reports whether the game has an outcome
func (g *Game) Finished() bool {
	return g.Outcome != OutcomeInProgress
}
