package periph

import (
	"context"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/pca9685"

	"github.com/schubart/donald/internal/domain"
)

// ServoFrequency matches a PCA9685 prescale of roughly 100
const ServoFrequency = 60 * physic.Hertz

// ServoDriver drives the hands through a PCA9685 PWM board
type ServoDriver struct {
	dev *pca9685.Dev
}

// NewServoDriver wakes the board at addr and sets the servo frequency
func NewServoDriver(bus i2c.Bus, addr uint16) (*ServoDriver, error) {
	dev, err := pca9685.NewI2C(bus, addr)
	if err != nil {
		return nil, fmt.Errorf("%w: enable pca9685 at 0x%02x: %w", domain.ErrConfiguration, addr, err)
	}
	if err := dev.SetPwmFreq(ServoFrequency); err != nil {
		return nil, fmt.Errorf("%w: set servo frequency: %w", domain.ErrConfiguration, err)
	}
	return &ServoDriver{dev: dev}, nil
}

// SetChannel implements ports.ServoDriver. on and off are 12-bit tick counts.
func (s *ServoDriver) SetChannel(ctx context.Context, channel int, on, off uint16) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dev.SetPwm(channel, gpio.Duty(on), gpio.Duty(off)); err != nil {
		return fmt.Errorf("%w: set servo channel %d: %w", domain.ErrTransport, channel, err)
	}
	return nil
}
