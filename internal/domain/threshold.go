package domain

import "math"

// SensorReading is one raw 8-bit sample from a light sensor
type SensorReading = uint8

// ProvisionalThreshold is used for every color until calibration runs: 50% of max.
const ProvisionalThreshold SensorReading = math.MaxUint8 / 2

// Polarity tells which side of the threshold means "light on"
type Polarity uint8

const (
	// ActiveLow sensors read lower values when their light is on
	ActiveLow Polarity = iota
	// ActiveHigh sensors read higher values when their light is on
	ActiveHigh
)

func (p Polarity) String() string {
	if p == ActiveHigh {
		return "active-high"
	}
	return "active-low"
}

// IsOn classifies a reading against a threshold.
// A reading equal to the threshold is always off.
func (p Polarity) IsOn(reading, threshold SensorReading) bool {
	if p == ActiveHigh {
		return reading > threshold
	}
	return reading < threshold
}

// ThresholdTable holds one decision boundary per color
type ThresholdTable [ColorCount]SensorReading

// NewThresholdTable returns a table filled with the provisional midpoint
func NewThresholdTable() ThresholdTable {
	var t ThresholdTable
	for i := range t {
		t[i] = ProvisionalThreshold
	}
	return t
}

// RangeTracker keeps the running extremes of one sensor during calibration
type RangeTracker struct {
	min, max SensorReading
	samples  int
}

// NewRangeTracker returns a tracker that has observed nothing yet
func NewRangeTracker() RangeTracker {
	return RangeTracker{min: math.MaxUint8, max: 0}
}

// Observe folds a sample into the range and returns the updated threshold.
// Halves are summed so the addition cannot overflow a byte.
func (r *RangeTracker) Observe(v SensorReading) SensorReading {
	r.min = min(r.min, v)
	r.max = max(r.max, v)
	r.samples++
	return r.Threshold()
}

// Threshold returns the midpoint of the observed range
func (r *RangeTracker) Threshold() SensorReading {
	return r.min/2 + r.max/2
}

// Min returns the smallest observed sample
func (r *RangeTracker) Min() SensorReading { return r.min }

// Max returns the largest observed sample
func (r *RangeTracker) Max() SensorReading { return r.max }

// Samples returns how many samples have been observed
func (r *RangeTracker) Samples() int { return r.samples }
