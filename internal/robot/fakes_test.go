package robot

import (
	"context"
	"fmt"
	"time"

	"github.com/schubart/donald/internal/domain"
	"github.com/schubart/donald/internal/timeutil"
)

// fakeBus replays scripted readings per ADC command; the last value repeats.
type fakeBus struct {
	script map[uint8][]domain.SensorReading
	reads  map[uint8]int
	total  int
	onRead func()
	err    error
}

func newFakeBus() *fakeBus {
	return &fakeBus{
		script: make(map[uint8][]domain.SensorReading),
		reads:  make(map[uint8]int),
	}
}

func (b *fakeBus) set(color domain.Color, values ...domain.SensorReading) {
	b.script[domain.DefaultHardware[color].Sensor.Command] = values
}

func (b *fakeBus) ReadSensor(ctx context.Context, command uint8) (domain.SensorReading, error) {
	if b.onRead != nil {
		b.onRead()
	}
	if b.err != nil {
		return 0, b.err
	}
	values, ok := b.script[command]
	if !ok || len(values) == 0 {
		return 0, fmt.Errorf("%w: no device at command 0x%02x", domain.ErrTransport, command)
	}
	i := b.reads[command]
	b.reads[command]++
	b.total++
	if i >= len(values) {
		i = len(values) - 1
	}
	return values[i], nil
}

type servoWrite struct {
	Channel int
	On, Off uint16
}

type fakeServos struct {
	writes []servoWrite
	failAt int // 1-based write that fails; 0 never
}

func (s *fakeServos) SetChannel(ctx context.Context, channel int, on, off uint16) error {
	if s.failAt > 0 && len(s.writes)+1 == s.failAt {
		return fmt.Errorf("%w: channel %d nack", domain.ErrTransport, channel)
	}
	s.writes = append(s.writes, servoWrite{Channel: channel, On: on, Off: off})
	return nil
}

func newTestRobot(bus *fakeBus, servos *fakeServos) (*Robot, *timeutil.MockClock) {
	clock := timeutil.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return New(bus, servos, domain.DefaultHardware, clock), clock
}
