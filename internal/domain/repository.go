package domain

import (
	"context"
	"time"
)

// GameRepository defines operations for storing/retrieving game records
// This is a PORT - adapters (SQLite, Memory) implement it
type GameRepository interface {
	// CreateGame persists a new game
	CreateGame(ctx context.Context, game *Game) error

	// SaveCalibration stores the thresholds learned at startup
	SaveCalibration(ctx context.Context, gameID string, thresholds ThresholdTable) error

	// AppendColor records the color learned in the given 1-based round
	AppendColor(ctx context.Context, gameID string, round int, color Color) error

	// FinishGame sets the outcome and finish time
	FinishGame(ctx context.Context, gameID string, outcome Outcome, at time.Time) error

	// GetGame retrieves a game by ID
	GetGame(ctx context.Context, id string) (*Game, error)

	// GetLatestGame retrieves the most recently started game
	GetLatestGame(ctx context.Context) (*Game, error)

	// DeleteOldGames removes games started before now-olderThan
	DeleteOldGames(ctx context.Context, olderThan time.Duration) error
}
