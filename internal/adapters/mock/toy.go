package mock

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/schubart/donald/internal/domain"
)

// Simulated sensor levels. Lit sensors read low, like the real photo resistors.
const (
	litLevel   = 40
	darkLevel  = 200
	noiseLevel = 8
)

// Simulation timings, in sensor reads
const (
	flashTicks   = 10
	showTicks    = 12
	gapTicks     = 8
	pauseTicks   = 40
	releaseTicks = 6
)

type toyMode int

const (
	modeOff toyMode = iota
	modeAttract
	modeDemo
	modeInput
	modeWon
	modeLost
)

type frame struct {
	lit   uint8 // bit per color
	ticks int
}

const allLit = 1<<domain.ColorCount - 1

// Toy simulates the memory-game device for development and tests.
// It implements both ports.SensorBus and ports.ServoDriver; every sensor
// read advances the simulation by one tick. Not safe for concurrent use.
//
// Holding all four buttons starts the game and flashes every light until
// the first one is released. The toy then demonstrates a sequence grown by
// one random color per round and lights each button while it is correctly
// pressed.
type Toy struct {
	hardware domain.Hardware
	rng      *rand.Rand

	pressed  [domain.ColorCount]bool
	held     int
	mode     toyMode
	frames   []frame
	sequence []domain.Color
	input    int
	mistakes int
	ticks    int
}

// NewToy creates a switched-off toy wired like hardware
func NewToy(hardware domain.Hardware, seed int64) *Toy {
	return &Toy{
		hardware: hardware,
		rng:      rand.New(rand.NewSource(seed)),
		held:     -1,
	}
}

// ReadSensor returns the simulated reading of the sensor selected by command
func (t *Toy) ReadSensor(ctx context.Context, command uint8) (domain.SensorReading, error) {
	color, ok := t.hardware.ColorForCommand(command)
	if !ok {
		return 0, fmt.Errorf("%w: no sensor at command 0x%02x", domain.ErrTransport, command)
	}

	level := darkLevel
	if t.litMask()&(1<<color) != 0 {
		level = litLevel
	}
	t.tick()

	level += t.rng.Intn(2*noiseLevel+1) - noiseLevel
	return domain.SensorReading(max(0, min(255, level))), nil
}

// SetChannel moves the simulated hand on channel. Only the configured
// pressed position counts as pressing the button.
func (t *Toy) SetChannel(ctx context.Context, channel int, on, off uint16) error {
	color, ok := t.hardware.ColorForChannel(channel)
	if !ok {
		return fmt.Errorf("%w: no servo on channel %d", domain.ErrTransport, channel)
	}

	pressed := off == t.hardware[color].Hand.Pressed
	was := t.pressed[color]
	t.pressed[color] = pressed

	switch {
	case pressed && !was:
		t.press(color)
	case !pressed && was:
		t.release(color)
	}
	return nil
}

// Sequence returns the colors the toy has demonstrated so far
func (t *Toy) Sequence() []domain.Color {
	out := make([]domain.Color, len(t.sequence))
	copy(out, t.sequence)
	return out
}

// Won reports whether the full winning sequence was entered
func (t *Toy) Won() bool { return t.mode == modeWon }

// Mistakes returns how many wrong buttons were pressed
func (t *Toy) Mistakes() int { return t.mistakes }

// Ticks returns how many sensor reads the toy has served
func (t *Toy) Ticks() int { return t.ticks }

func (t *Toy) litMask() uint8 {
	if t.held >= 0 {
		return 1 << t.held
	}
	if len(t.frames) > 0 {
		return t.frames[0].lit
	}
	return 0
}

func (t *Toy) tick() {
	t.ticks++
	if len(t.frames) > 0 {
		t.frames[0].ticks--
		if t.frames[0].ticks <= 0 {
			t.frames = t.frames[1:]
		}
	}
	if len(t.frames) > 0 {
		return
	}

	switch t.mode {
	case modeAttract:
		t.frames = append(t.frames, frame{allLit, flashTicks}, frame{0, flashTicks})
	case modeDemo:
		t.mode = modeInput
		t.input = 0
	}
}

func (t *Toy) press(color domain.Color) {
	switch t.mode {
	case modeOff:
		for _, p := range t.pressed {
			if !p {
				return
			}
		}
		t.mode = modeAttract
		t.frames = []frame{{allLit, flashTicks}, {0, flashTicks}}
	case modeInput:
		if t.held >= 0 {
			return
		}
		if t.sequence[t.input] != color {
			t.mistakes++
			t.mode = modeLost
			t.frames = nil
			return
		}
		t.held = int(color)
	}
}

func (t *Toy) release(color domain.Color) {
	switch t.mode {
	case modeAttract:
		t.frames = []frame{{0, pauseTicks}}
		t.nextRound()
	case modeInput:
		if t.held != int(color) {
			return
		}
		t.held = -1
		t.frames = append(t.frames, frame{1 << color, releaseTicks})
		t.input++
		if t.input < len(t.sequence) {
			return
		}
		if len(t.sequence) == domain.WinningLength {
			t.mode = modeWon
			return
		}
		t.frames = append(t.frames, frame{0, pauseTicks})
		t.nextRound()
	}
}

func (t *Toy) nextRound() {
	t.mode = modeDemo
	t.sequence = append(t.sequence, domain.Colors[t.rng.Intn(domain.ColorCount)])
	// input opens as soon as the last light goes out
	for i, c := range t.sequence {
		if i > 0 {
			t.frames = append(t.frames, frame{0, gapTicks})
		}
		t.frames = append(t.frames, frame{1 << c, showTicks})
	}
}
