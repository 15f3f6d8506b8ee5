package domain

// HandConfig describes the servo that presses one button.
// Values are PCA9685 "off" tick counts out of 4096.
type HandConfig struct {
	Channel int
	Rest    uint16
	Pressed uint16
}

// SensorConfig describes the ADC input watching one light
type SensorConfig struct {
	// Command is the single-ended channel select byte sent to the ADC
	Command  uint8
	Polarity Polarity
}

// ColorConfig is the fixed wiring of one color
type ColorConfig struct {
	Hand   HandConfig
	Sensor SensorConfig
}

// Hardware maps every color to its wiring
type Hardware [ColorCount]ColorConfig

// DefaultHardware is the wiring of the assembled robot.
// The blue hand is mounted mirrored, so its rest and pressed values are swapped.
var DefaultHardware = Hardware{
	Red:    {Hand: HandConfig{Channel: 0, Rest: 260, Pressed: 470}, Sensor: SensorConfig{Command: 0x84, Polarity: ActiveLow}},
	Green:  {Hand: HandConfig{Channel: 1, Rest: 260, Pressed: 470}, Sensor: SensorConfig{Command: 0xc4, Polarity: ActiveLow}},
	Yellow: {Hand: HandConfig{Channel: 2, Rest: 260, Pressed: 470}, Sensor: SensorConfig{Command: 0x94, Polarity: ActiveLow}},
	Blue:   {Hand: HandConfig{Channel: 3, Rest: 470, Pressed: 260}, Sensor: SensorConfig{Command: 0xd4, Polarity: ActiveLow}},
}

// ColorForChannel finds the color whose hand is on the given servo channel
func (h *Hardware) ColorForChannel(channel int) (Color, bool) {
	for _, c := range Colors {
		if h[c].Hand.Channel == channel {
			return c, true
		}
	}
	return 0, false
}

// ColorForCommand finds the color whose sensor uses the given ADC command
func (h *Hardware) ColorForCommand(command uint8) (Color, bool) {
	for _, c := range Colors {
		if h[c].Sensor.Command == command {
			return c, true
		}
	}
	return 0, false
}
