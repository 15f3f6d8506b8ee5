package robot

import (
	"context"

	"github.com/schubart/donald/internal/domain"
)

// IsLightOn samples the color's sensor once and classifies the reading
func (r *Robot) IsLightOn(ctx context.Context, color domain.Color) (bool, error) {
	value, err := r.readSensor(ctx, color)
	if err != nil {
		return false, err
	}
	return r.hardware[color].Sensor.Polarity.IsOn(value, r.thresholds[color]), nil
}

// WaitForLightOn blocks until the color's light is on.
// It only gives up when ctx is cancelled.
func (r *Robot) WaitForLightOn(ctx context.Context, color domain.Color) error {
	return r.waitForLight(ctx, color, true)
}

// WaitForLightOff blocks until the color's light is off
func (r *Robot) WaitForLightOff(ctx context.Context, color domain.Color) error {
	return r.waitForLight(ctx, color, false)
}

func (r *Robot) waitForLight(ctx context.Context, color domain.Color, want bool) error {
	for {
		on, err := r.IsLightOn(ctx, color)
		if err != nil {
			return err
		}
		if on == want {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		r.clock.Sleep(PollInterval)
	}
}

// WaitForAnyLightOn scans the colors in enumeration order until one is on.
// If several lights are on at once, the first one scanned wins.
func (r *Robot) WaitForAnyLightOn(ctx context.Context) (domain.Color, error) {
	for {
		for _, color := range domain.Colors {
			on, err := r.IsLightOn(ctx, color)
			if err != nil {
				return 0, err
			}
			if on {
				return color, nil
			}
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		r.clock.Sleep(PollInterval)
	}
}
