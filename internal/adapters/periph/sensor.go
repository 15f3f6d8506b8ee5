package periph

import (
	"context"
	"fmt"

	"periph.io/x/conn/v3/i2c"

	"github.com/schubart/donald/internal/domain"
)

// DefaultSensorAddr is the ADS7830 address with both address pins high
const DefaultSensorAddr uint16 = 0x4b

// SensorBus reads 8-bit samples from an ADS7830-style ADC: the command byte
// selects the input, the reply is one byte.
type SensorBus struct {
	dev i2c.Dev
}

// NewSensorBus addresses the ADC at addr on bus
func NewSensorBus(bus i2c.Bus, addr uint16) *SensorBus {
	return &SensorBus{dev: i2c.Dev{Bus: bus, Addr: addr}}
}

// ReadSensor implements ports.SensorBus
func (s *SensorBus) ReadSensor(ctx context.Context, command uint8) (domain.SensorReading, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var reply [1]byte
	if err := s.dev.Tx([]byte{command}, reply[:]); err != nil {
		return 0, fmt.Errorf("%w: read sensor 0x%02x: %w", domain.ErrTransport, command, err)
	}
	return reply[0], nil
}
