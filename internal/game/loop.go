// Package game runs the turn-based protocol against the memory-game device.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/schubart/donald/internal/domain"
)

// CalibrationWindow is how long the device flashes all lights after start
const CalibrationWindow = 1300 * time.Millisecond

// Controller is what the loop needs from the robot
type Controller interface {
	Calibrate(ctx context.Context, window time.Duration) error
	Thresholds() domain.ThresholdTable

	WaitForLightOn(ctx context.Context, color domain.Color) error
	WaitForLightOff(ctx context.Context, color domain.Color) error
	WaitForAnyLightOn(ctx context.Context) (domain.Color, error)

	LowerHand(ctx context.Context, color domain.Color) error
	LiftHand(ctx context.Context, color domain.Color) error
	LowerAllHands(ctx context.Context) error
	LiftAllHands(ctx context.Context) error
}

// Loop owns the sequence and alternates between watching the device and
// replaying to it. The first error ends the game; nothing is retried.
type Loop struct {
	robot    Controller
	observer Observer
	sequence domain.Sequence
	state    domain.GameState
}

// NewLoop creates a game loop. observer may be nil.
func NewLoop(robot Controller, observer Observer) *Loop {
	if observer == nil {
		observer = Observers(nil)
	}
	return &Loop{
		robot:    robot,
		observer: observer,
		state:    domain.StateCalibrating,
	}
}

// State returns the current phase
func (l *Loop) State() domain.GameState {
	return l.state
}

// Sequence returns a copy of the colors learned so far
func (l *Loop) Sequence() []domain.Color {
	return l.sequence.Colors()
}

// Run calibrates and then plays rounds until the device's winning length is reached
func (l *Loop) Run(ctx context.Context) error {
	if err := l.Calibrate(ctx); err != nil {
		return err
	}

	for {
		won, err := l.PlayRound(ctx)
		if err != nil {
			return err
		}
		if won {
			return nil
		}
	}
}

// Calibrate holds all buttons down to start the device, learns the
// thresholds while it flashes, then releases the buttons.
func (l *Loop) Calibrate(ctx context.Context) error {
	l.enter(ctx, domain.StateCalibrating)

	if err := l.robot.LowerAllHands(ctx); err != nil {
		return fmt.Errorf("start device: %w", err)
	}
	if err := l.robot.Calibrate(ctx, CalibrationWindow); err != nil {
		return fmt.Errorf("calibrate: %w", err)
	}
	if err := l.robot.LiftAllHands(ctx); err != nil {
		return fmt.Errorf("release device: %w", err)
	}
	l.observer.Calibrated(ctx, l.robot.Thresholds())

	l.enter(ctx, domain.StateIdle)
	return nil
}

// PlayRound watches the known sequence, learns one new color, and replays
// everything. It reports whether the game has been won.
func (l *Loop) PlayRound(ctx context.Context) (bool, error) {
	if l.state == domain.StateWon {
		return true, nil
	}
	round := l.sequence.Len() + 1

	l.enter(ctx, domain.StateObservingKnown)
	for _, color := range l.sequence.Colors() {
		if err := l.watch(ctx, color); err != nil {
			return false, fmt.Errorf("round %d: watch %s: %w", round, color, err)
		}
	}

	l.enter(ctx, domain.StateObservingNew)
	color, err := l.robot.WaitForAnyLightOn(ctx)
	if err != nil {
		return false, fmt.Errorf("round %d: watch new color: %w", round, err)
	}
	if err := l.robot.WaitForLightOff(ctx, color); err != nil {
		return false, fmt.Errorf("round %d: watch %s: %w", round, color, err)
	}
	if err := l.sequence.Append(color); err != nil {
		return false, fmt.Errorf("round %d: %w", round, err)
	}
	log.Info().Int("round", round).Stringer("color", color).Msg("learned color")
	l.observer.ColorLearned(ctx, round, color)

	l.enter(ctx, domain.StateReplaying)
	for _, color := range l.sequence.Colors() {
		if err := l.press(ctx, color); err != nil {
			return false, fmt.Errorf("round %d: press %s: %w", round, color, err)
		}
	}

	if l.sequence.Len() == domain.WinningLength {
		l.enter(ctx, domain.StateWon)
		return true, nil
	}
	return false, nil
}

func (l *Loop) watch(ctx context.Context, color domain.Color) error {
	if err := l.robot.WaitForLightOn(ctx, color); err != nil {
		return err
	}
	return l.robot.WaitForLightOff(ctx, color)
}

// press holds the button until the device lights it, then lets go and
// waits for the light to go out before the next press.
func (l *Loop) press(ctx context.Context, color domain.Color) error {
	if err := l.robot.LowerHand(ctx, color); err != nil {
		return err
	}
	if err := l.robot.WaitForLightOn(ctx, color); err != nil {
		return err
	}
	if err := l.robot.LiftHand(ctx, color); err != nil {
		return err
	}
	return l.robot.WaitForLightOff(ctx, color)
}

func (l *Loop) enter(ctx context.Context, state domain.GameState) {
	l.state = state
	log.Debug().Stringer("state", state).Int("length", l.sequence.Len()).Msg("game state")
	l.observer.StateChanged(ctx, state)
}
