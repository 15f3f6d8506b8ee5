package ports

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/schubart/donald/internal/domain"
)

// GameRecorder persists the progress of one game.
// Storage errors are logged and never interrupt play.
type GameRecorder struct {
	repo domain.GameRepository
	game *domain.Game
}

// NewGameRecorder creates a recorder writing to repo
func NewGameRecorder(repo domain.GameRepository) *GameRecorder {
	return &GameRecorder{repo: repo}
}

// Start creates the game record
func (r *GameRecorder) Start(ctx context.Context) error {
	r.game = domain.NewGame()
	if err := r.repo.CreateGame(ctx, r.game); err != nil {
		return err
	}

	log.Info().Str("game_id", r.game.ID).Msg("recording game")
	return nil
}

// GameID returns the ID of the game being recorded, or "" before Start
func (r *GameRecorder) GameID() string {
	if r.game == nil {
		return ""
	}
	return r.game.ID
}

// StateChanged marks the game won when the loop reaches the terminal state
func (r *GameRecorder) StateChanged(ctx context.Context, state domain.GameState) {
	if state == domain.StateWon {
		r.finish(ctx, domain.OutcomeWon)
	}
}

// Calibrated stores the learned thresholds
func (r *GameRecorder) Calibrated(ctx context.Context, thresholds domain.ThresholdTable) {
	if r.game == nil {
		return
	}
	if err := r.repo.SaveCalibration(ctx, r.game.ID, thresholds); err != nil {
		log.Error().Err(err).Str("game_id", r.game.ID).Msg("failed to save calibration")
	}
}

// ColorLearned appends the new color of a round
func (r *GameRecorder) ColorLearned(ctx context.Context, round int, color domain.Color) {
	if r.game == nil {
		return
	}
	if err := r.repo.AppendColor(ctx, r.game.ID, round, color); err != nil {
		log.Error().Err(err).
			Str("game_id", r.game.ID).
			Int("round", round).
			Msg("failed to save color")
	}
}

// Abort marks the game as ended by a fault or interruption
func (r *GameRecorder) Abort(ctx context.Context, cause error) {
	log.Warn().Err(cause).Str("game_id", r.GameID()).Msg("game aborted")
	r.finish(ctx, domain.OutcomeAborted)
}

func (r *GameRecorder) finish(ctx context.Context, outcome domain.Outcome) {
	if r.game == nil || r.game.Finished() {
		return
	}
	r.game.Outcome = outcome
	r.game.FinishedAt = time.Now().UTC()

	if err := r.repo.FinishGame(ctx, r.game.ID, outcome, r.game.FinishedAt); err != nil {
		log.Error().Err(err).Str("game_id", r.game.ID).Msg("failed to finish game")
	}
}
