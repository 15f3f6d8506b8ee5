// Package periph talks to the robot's sensor ADC and servo board over I2C.
package periph

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/schubart/donald/internal/domain"
)

// OpenBus initialises the host drivers and opens the named I2C bus.
// An empty name selects the first available bus.
func OpenBus(name string) (i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("%w: init host drivers: %w", domain.ErrConfiguration, err)
	}

	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: open i2c bus %q: %w", domain.ErrConfiguration, name, err)
	}
	return bus, nil
}
