package metrics

import "gonum.org/v1/gonum/stat"

// Window is a fixed-size ring buffer used to smooth a noisy series.
type Window struct {
	values []float64
	index  int
	count  int
}

func NewWindow(size int) *Window {
	if size < 1 {
		size = 1
	}
	return &Window{values: make([]float64, size)}
}

func (w *Window) Push(v float64) {
	w.values[w.index] = v
	w.index = (w.index + 1) % len(w.values)
	if w.count < len(w.values) {
		w.count++
	}
}

func (w *Window) Len() int { return w.count }

// Mean of the values currently held; zero when empty.
func (w *Window) Mean() float64 {
	if w.count == 0 {
		return 0
	}
	return stat.Mean(w.values[:w.count], nil)
}

func (w *Window) Reset() {
	for i := range w.values {
		w.values[i] = 0
	}
	w.index = 0
	w.count = 0
}
