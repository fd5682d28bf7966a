package mathutil

import "math"

// Lerp linearly interpolates between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EaseCubic is a cubic ease-in-out (3t² − 2t³). Input is clamped to [0,1].
// Zero slope at both ends, so animations driven by it start and stop softly.
func EaseCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// BellWeight is the turning-time weight sin(t·π): zero at t=0 and t=1,
// maximal (1) at the midpoint. Drives effects that must vanish at the
// start and end of a page turn.
func BellWeight(t float64) float64 {
	return math.Sin(Clamp(t, 0, 1) * math.Pi)
}

// DampFactor returns the fraction of remaining distance covered during dt
// by an exponential decay with time constant tau. tau <= 0 converges
// immediately (returns 1).
func DampFactor(dt, tau float64) float64 {
	if tau <= 0 {
		return 1
	}
	return 1 - math.Exp(-dt/tau)
}

// Sign returns -1, 0 or +1 matching the sign of v.
func Sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
