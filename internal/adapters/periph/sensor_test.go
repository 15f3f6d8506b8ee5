package periph

import (
	"context"
	"errors"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/schubart/donald/internal/domain"
)

func TestSensorBus_ReadSensor(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: DefaultSensorAddr, W: []byte{0x84}, R: []byte{42}},
			{Addr: DefaultSensorAddr, W: []byte{0xd4}, R: []byte{211}},
		},
	}
	sensors := NewSensorBus(bus, DefaultSensorAddr)
	ctx := context.Background()

	got, err := sensors.ReadSensor(ctx, domain.DefaultHardware[domain.Red].Sensor.Command)
	if err != nil {
		t.Fatalf("ReadSensor failed: %v", err)
	}
	if got != 42 {
		t.Errorf("red reading = %d, want 42", got)
	}

	got, err = sensors.ReadSensor(ctx, domain.DefaultHardware[domain.Blue].Sensor.Command)
	if err != nil {
		t.Fatalf("ReadSensor failed: %v", err)
	}
	if got != 211 {
		t.Errorf("blue reading = %d, want 211", got)
	}

	if err := bus.Close(); err != nil {
		t.Errorf("unconsumed bus operations: %v", err)
	}
}

func TestSensorBus_TransportFailure(t *testing.T) {
	bus := &i2ctest.Playback{DontPanic: true}
	sensors := NewSensorBus(bus, DefaultSensorAddr)

	_, err := sensors.ReadSensor(context.Background(), 0x84)
	if !errors.Is(err, domain.ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
}

func TestSensorBus_Cancelled(t *testing.T) {
	bus := &i2ctest.Playback{DontPanic: true}
	sensors := NewSensorBus(bus, DefaultSensorAddr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sensors.ReadSensor(ctx, 0x84); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
