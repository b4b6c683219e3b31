package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns the magnitude of the real FFT of data with its mean
// removed. Index k corresponds to k/len(data) cycles per sample.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	mean := stat.Mean(data, nil)
	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	fft := fourier.NewFFT(len(centered))
	coeffs := fft.Coefficients(nil, centered)

	ps := make([]float64, len(coeffs))
	for i, c := range coeffs {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}

// DominantPeriod returns the period, in units of dt, of the strongest non-DC
// component of data. ok is false for series that are too short or flat.
func DominantPeriod(data []float64, dt float64) (period float64, ok bool) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0, false
	}

	maxIdx := 0
	maxPower := 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0, false
	}

	freq := float64(maxIdx) / float64(len(data))
	return dt / freq, true
}
