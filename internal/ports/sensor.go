package ports

import (
	"context"

	"github.com/schubart/donald/internal/domain"
)

// SensorBus reads raw light samples
// This is a PORT - adapters (periph I2C, Mock toy) implement it
type SensorBus interface {
	// ReadSensor returns one sample from the ADC input selected by command
	ReadSensor(ctx context.Context, command uint8) (domain.SensorReading, error)
}

// ServoDriver writes pulse-width commands to the servo board
type ServoDriver interface {
	// SetChannel sets the on and off tick counts of one PWM channel
	SetChannel(ctx context.Context, channel int, on, off uint16) error
}
