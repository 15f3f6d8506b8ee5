package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/schubart/donald/internal/domain"
)

// GameRepository implements domain.GameRepository with in-memory storage
type GameRepository struct {
	mu    sync.RWMutex
	games map[string]*domain.Game
}

// NewGameRepository creates an empty in-memory repository
func NewGameRepository() *GameRepository {
	return &GameRepository{
		games: make(map[string]*domain.Game),
	}
}

// CreateGame stores a copy of game
func (r *GameRepository) CreateGame(ctx context.Context, game *domain.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.games[game.ID]; exists {
		return fmt.Errorf("game %s already exists", game.ID)
	}
	r.games[game.ID] = clone(game)
	return nil
}

// SaveCalibration stores the thresholds of a game
func (r *GameRepository) SaveCalibration(ctx context.Context, gameID string, thresholds domain.ThresholdTable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	game, exists := r.games[gameID]
	if !exists {
		return domain.ErrGameNotFound
	}
	game.Thresholds = thresholds
	game.Calibrated = true
	return nil
}

// AppendColor records the color learned in a round
func (r *GameRepository) AppendColor(ctx context.Context, gameID string, round int, color domain.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	game, exists := r.games[gameID]
	if !exists {
		return domain.ErrGameNotFound
	}
	if round != len(game.Sequence)+1 {
		return fmt.Errorf("round %d out of order, game has %d colors", round, len(game.Sequence))
	}
	game.Sequence = append(game.Sequence, color)
	return nil
}

// FinishGame sets the outcome of a game
func (r *GameRepository) FinishGame(ctx context.Context, gameID string, outcome domain.Outcome, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	game, exists := r.games[gameID]
	if !exists {
		return domain.ErrGameNotFound
	}
	game.Outcome = outcome
	game.FinishedAt = at
	return nil
}

// GetGame retrieves a game by ID
func (r *GameRepository) GetGame(ctx context.Context, id string) (*domain.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	game, exists := r.games[id]
	if !exists {
		return nil, domain.ErrGameNotFound
	}
	return clone(game), nil
}

// GetLatestGame returns the most recently started game
func (r *GameRepository) GetLatestGame(ctx context.Context) (*domain.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.Game
	for _, game := range r.games {
		if latest == nil || game.StartedAt.After(latest.StartedAt) {
			latest = game
		}
	}
	if latest == nil {
		return nil, domain.ErrGameNotFound
	}
	return clone(latest), nil
}

// DeleteOldGames removes games started before now-olderThan
func (r *GameRepository) DeleteOldGames(ctx context.Context, olderThan time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	for id, game := range r.games {
		if game.StartedAt.Before(cutoff) {
			delete(r.games, id)
		}
	}
	return nil
}

func clone(g *domain.Game) *domain.Game {
	c := *g
	c.Sequence = append([]domain.Color(nil), g.Sequence...)
	return &c
}
