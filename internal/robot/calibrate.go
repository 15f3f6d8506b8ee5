package robot

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/schubart/donald/internal/domain"
)

// Calibrate samples every sensor for the whole window and sets each color's
// threshold to the midpoint of its observed range. The device must be
// flashing all of its lights while this runs.
func (r *Robot) Calibrate(ctx context.Context, window time.Duration) error {
	var trackers [domain.ColorCount]domain.RangeTracker
	for i := range trackers {
		trackers[i] = domain.NewRangeTracker()
	}

	start := r.clock.Now()
	for r.clock.Since(start) < window {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, color := range domain.Colors {
			value, err := r.readSensor(ctx, color)
			if err != nil {
				return err
			}
			r.thresholds[color] = trackers[color].Observe(value)
		}
	}

	event := log.Info().Dur("window", window)
	for _, color := range domain.Colors {
		event = event.Dict(color.String(), rangeDict(trackers[color]))
	}
	event.Msg("calibrated light thresholds")

	return nil
}

func rangeDict(t domain.RangeTracker) *zerolog.Event {
	return zerolog.Dict().
		Uint8("min", t.Min()).
		Uint8("max", t.Max()).
		Uint8("threshold", t.Threshold()).
		Int("samples", t.Samples())
}
