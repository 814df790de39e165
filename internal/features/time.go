package features

import (
	"fmt"
	"math"
)

// Window selects the weighting applied to a window of rectified samples
// before averaging in [MAV].
type Window string

const (
	// WindowUniform weights all samples equally.
	WindowUniform Window = "mav"

	// WindowRect is a rectangular window: the middle half of the window
	// receives unit weight, the first and last quarters half weight.
	WindowRect Window = "mav1"

	// WindowTrap is a trapezoidal window: weights ramp from 0 to 1 over
	// the first quarter and back down over the last.
	WindowTrap Window = "mav2"
)

// MAV computes the mean absolute value of a signal window, a common
// amplitude feature for EMG-style signals. The optional windowing function
// de-emphasizes the edges of the window.
type MAV struct {
	window  Window
	custom  []float64
	weights []float64
}

// NewMAV creates a mean-absolute-value feature with the given windowing
// function. An unrecognized window is an error.
func NewMAV(window Window) (*MAV, error) {
	switch window {
	case WindowUniform, WindowRect, WindowTrap:
		return &MAV{window: window}, nil
	default:
		return nil, fmt.Errorf("window not recognized: %q", window)
	}
}

// NewMAVCustom creates a mean-absolute-value feature with user-supplied
// per-sample weights. The weight count must match the window length passed
// to Compute.
func NewMAVCustom(weights []float64) *MAV {
	return &MAV{custom: weights}
}

// Compute returns the weighted mean absolute value of x.
func (m *MAV) Compute(x []float64) (float64, error) {
	n := len(x)
	if n == 0 {
		return 0, fmt.Errorf("empty window")
	}
	if m.custom != nil {
		if len(m.custom) != n {
			return 0, fmt.Errorf("custom window has %d weights, window has %d samples", len(m.custom), n)
		}
		m.weights = m.custom
	} else if len(m.weights) != n {
		m.weights = makeWeights(m.window, n)
	}

	sum := 0.0
	for i, v := range x {
		sum += m.weights[i] * math.Abs(v)
	}
	return sum / float64(n), nil
}

// makeWeights builds the weight vector for a built-in window of length n.
func makeWeights(window Window, n int) []float64 {
	w := make([]float64, n)
	lo, hi := n/4, (3*n)/4
	switch window {
	case WindowRect:
		for i := range w {
			if i >= lo && i < hi {
				w[i] = 1
			} else {
				w[i] = 0.5
			}
		}
	case WindowTrap:
		for i := range w {
			switch {
			case i < lo:
				w[i] = 4 * float64(i) / float64(n)
			case i >= hi:
				w[i] = 4 * float64(n-i) / float64(n)
			default:
				w[i] = 1
			}
		}
	default:
		for i := range w {
			w[i] = 1
		}
	}
	return w
}

// WL returns the waveform length of x: the summed absolute deltas between
// adjacent samples.
func WL(x []float64) float64 {
	sum := 0.0
	for i := 1; i < len(x); i++ {
		sum += math.Abs(x[i] - x[i-1])
	}
	return sum
}

// ZC returns the number of zero crossings in x. A crossing is counted when
// adjacent samples have opposite sign and differ by more than threshold,
// which discriminates true crossings from low-level noise about zero.
func ZC(x []float64, threshold float64) int {
	count := 0
	for i := 1; i < len(x); i++ {
		if math.Signbit(x[i]) != math.Signbit(x[i-1]) &&
			math.Abs(x[i]-x[i-1]) > threshold {
			count++
		}
	}
	return count
}

// SSC returns the number of slope sign changes in x: samples that are
// either greater than or less than both neighbors, with at least one
// adjacent delta exceeding threshold.
func SSC(x []float64, threshold float64) int {
	count := 0
	for i := 2; i < len(x); i++ {
		d1 := x[i-1] - x[i-2]
		d2 := x[i] - x[i-1]
		if math.Signbit(d1) != math.Signbit(d2) &&
			math.Max(math.Abs(d1), math.Abs(d2)) > threshold {
			count++
		}
	}
	return count
}
