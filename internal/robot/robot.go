// Package robot senses the game device's lights and moves the hands that press its buttons.
package robot

import (
	"context"
	"time"

	"github.com/schubart/donald/internal/domain"
	"github.com/schubart/donald/internal/ports"
	"github.com/schubart/donald/internal/timeutil"
)

// PollInterval is the pause between unsuccessful polls of a wait primitive
const PollInterval = 500 * time.Microsecond

// Robot owns the sensor and servo transports and the threshold table.
// It is not safe for concurrent use; every call blocks until the bus returns.
type Robot struct {
	sensors    ports.SensorBus
	servos     ports.ServoDriver
	hardware   domain.Hardware
	clock      timeutil.Clock
	thresholds domain.ThresholdTable
}

// New creates a robot with provisional thresholds until Calibrate is called
func New(sensors ports.SensorBus, servos ports.ServoDriver, hardware domain.Hardware, clock timeutil.Clock) *Robot {
	return &Robot{
		sensors:    sensors,
		servos:     servos,
		hardware:   hardware,
		clock:      clock,
		thresholds: domain.NewThresholdTable(),
	}
}

// Thresholds returns a copy of the current threshold table
func (r *Robot) Thresholds() domain.ThresholdTable {
	return r.thresholds
}

func (r *Robot) readSensor(ctx context.Context, color domain.Color) (domain.SensorReading, error) {
	return r.sensors.ReadSensor(ctx, r.hardware[color].Sensor.Command)
}

func (r *Robot) setServo(ctx context.Context, channel int, position uint16) error {
	return r.servos.SetChannel(ctx, channel, 0, position)
}
