package mcts

import "github.com/chewxy/math32"

// TemperatureSchedule controls how sharply the final move is sampled from
// visit counts: temperature 1.0 samples proportionally to visits, and
// temperature 0.0 always takes the most-visited action (argmax). Ported
// from the original engine's TemperatureSchedule enum.
type TemperatureSchedule struct {
	kind      temperatureKind
	value     float32 // Constant
	threshold uint32  // Step, Linear
	hi, lo    float32 // Step, Linear
}

type temperatureKind uint8

const (
	constantTemperature temperatureKind = iota
	stepTemperature
	linearTemperature
)

// ConstantTemperature always returns value, regardless of turn number.
func ConstantTemperature(value float32) TemperatureSchedule {
	return TemperatureSchedule{kind: constantTemperature, value: value}
}

// StepTemperature returns hi for turnNumber < threshold, and lo afterwards.
// The original engine's self-play CLI used Step{threshold: 30, hi: 1.0, lo: 0.0}.
func StepTemperature(threshold uint32, hi, lo float32) TemperatureSchedule {
	return TemperatureSchedule{kind: stepTemperature, threshold: threshold, hi: hi, lo: lo}
}

// LinearTemperature interpolates linearly from hi at turn 0 down to lo at
// turnNumber == threshold, and holds at lo afterwards.
func LinearTemperature(threshold uint32, hi, lo float32) TemperatureSchedule {
	return TemperatureSchedule{kind: linearTemperature, threshold: threshold, hi: hi, lo: lo}
}

// GetTemperature evaluates the schedule at turnNumber.
func (s TemperatureSchedule) GetTemperature(turnNumber uint32) float32 {
	switch s.kind {
	case stepTemperature:
		if turnNumber < s.threshold {
			return s.hi
		}
		return s.lo
	case linearTemperature:
		if turnNumber >= s.threshold {
			return s.lo
		}
		frac := float32(turnNumber) / float32(s.threshold)
		return s.hi - frac*(s.hi-s.lo)
	default:
		return s.value
	}
}

// sampleByVisits picks an index into visits according to temperature:
// temperature == 0 deterministically picks the largest count (argmax);
// otherwise each index is weighted by visits[i]^(1/temperature) and sampled
// proportionally.
func sampleByVisits(visits []uint32, temperature float32, rnd float32) int {
	if temperature <= 0 {
		floats := make([]float32, len(visits))
		for i, v := range visits {
			floats[i] = float32(v)
		}
		return argmax(floats)
	}

	weights := make([]float32, len(visits))
	var total float32
	inv := 1 / temperature
	for i, v := range visits {
		w := math32.Pow(float32(v), inv)
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return argmax(weights)
	}

	target := rnd * total
	var accum float32
	for i, w := range weights {
		accum += w
		if target < accum {
			return i
		}
	}
	return len(weights) - 1
}
