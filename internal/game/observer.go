package game

import (
	"context"

	"github.com/schubart/donald/internal/domain"
)

// Observer is notified of game progress.
// Implementations must not block the loop for long; they run on the game goroutine.
type Observer interface {
	StateChanged(ctx context.Context, state domain.GameState)
	Calibrated(ctx context.Context, thresholds domain.ThresholdTable)
	ColorLearned(ctx context.Context, round int, color domain.Color)
}

// Observers fans notifications out to several observers in order
type Observers []Observer

func (o Observers) StateChanged(ctx context.Context, state domain.GameState) {
	for _, obs := range o {
		obs.StateChanged(ctx, state)
	}
}

func (o Observers) Calibrated(ctx context.Context, thresholds domain.ThresholdTable) {
	for _, obs := range o {
		obs.Calibrated(ctx, thresholds)
	}
}

func (o Observers) ColorLearned(ctx context.Context, round int, color domain.Color) {
	for _, obs := range o {
		obs.ColorLearned(ctx, round, color)
	}
}
