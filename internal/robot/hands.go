package robot

import (
	"context"

	"github.com/schubart/donald/internal/domain"
)

// LowerHand presses the color's button
func (r *Robot) LowerHand(ctx context.Context, color domain.Color) error {
	hand := r.hardware[color].Hand
	return r.setServo(ctx, hand.Channel, hand.Pressed)
}

// LiftHand moves the color's hand back to rest
func (r *Robot) LiftHand(ctx context.Context, color domain.Color) error {
	hand := r.hardware[color].Hand
	return r.setServo(ctx, hand.Channel, hand.Rest)
}

// LowerAllHands presses every button, one bus write at a time
func (r *Robot) LowerAllHands(ctx context.Context) error {
	for _, color := range domain.Colors {
		if err := r.LowerHand(ctx, color); err != nil {
			return err
		}
	}
	return nil
}

// LiftAllHands rests every hand, one bus write at a time
func (r *Robot) LiftAllHands(ctx context.Context) error {
	for _, color := range domain.Colors {
		if err := r.LiftHand(ctx, color); err != nil {
			return err
		}
	}
	return nil
}
