package robot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/schubart/donald/internal/domain"
)

func TestCalibrate_MidpointPerColor(t *testing.T) {
	bus := newFakeBus()
	bus.set(domain.Red, 40, 200, 40)
	bus.set(domain.Green, 30, 30, 210)
	bus.set(domain.Yellow, 220, 10)
	bus.set(domain.Blue, 180) // never toggles

	robot, clock := newTestRobot(bus, &fakeServos{})
	bus.onRead = func() { clock.Advance(time.Millisecond) }

	if err := robot.Calibrate(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("Calibrate failed: %v", err)
	}

	// 4 reads per pass at 1ms each: passes start at 0, 4 and 8ms
	if bus.total != 12 {
		t.Errorf("expected 12 reads, got %d", bus.total)
	}

	want := domain.ThresholdTable{
		domain.Red:    120,
		domain.Green:  120,
		domain.Yellow: 115,
		domain.Blue:   180,
	}
	if got := robot.Thresholds(); got != want {
		t.Errorf("thresholds = %v, want %v", got, want)
	}
}

func TestCalibrate_ZeroWindowKeepsProvisional(t *testing.T) {
	bus := newFakeBus()
	robot, _ := newTestRobot(bus, &fakeServos{})

	if err := robot.Calibrate(context.Background(), 0); err != nil {
		t.Fatalf("Calibrate failed: %v", err)
	}
	if bus.total != 0 {
		t.Errorf("expected no reads, got %d", bus.total)
	}
	if got := robot.Thresholds(); got != domain.NewThresholdTable() {
		t.Errorf("thresholds = %v, want provisional", got)
	}
}

func TestCalibrate_TransportFailure(t *testing.T) {
	bus := newFakeBus()
	bus.err = domain.ErrTransport
	robot, _ := newTestRobot(bus, &fakeServos{})

	err := robot.Calibrate(context.Background(), time.Second)
	if !errors.Is(err, domain.ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
}

func TestCalibrate_Cancelled(t *testing.T) {
	bus := newFakeBus()
	for _, c := range domain.Colors {
		bus.set(c, 100)
	}
	robot, _ := newTestRobot(bus, &fakeServos{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// the mock clock never advances on its own, so only cancellation ends this
	if err := robot.Calibrate(ctx, time.Second); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
