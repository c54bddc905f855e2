package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the real FFT of
// data, after removing its mean so bin 0 carries no offset.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-zero
// bin and its magnitude. sampleRate is in samples per second.
func DominantFrequency(data []float64, sampleRate float64) (float64, float64) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0, 0
	}

	maxIdx := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}
	return float64(maxIdx) * sampleRate / float64(len(data)), ps[maxIdx]
}

// SettleIndex returns the first index after which every value stays at or
// below fraction of the series peak, or -1 if the series never settles.
func SettleIndex(data []float64, fraction float64) int {
	peak := math.Inf(-1)
	for _, v := range data {
		peak = max(peak, v)
	}
	if len(data) == 0 || peak <= 0 {
		return -1
	}

	limit := peak * fraction
	idx := -1
	for i := len(data) - 1; i >= 0; i-- {
		if data[i] > limit {
			break
		}
		idx = i
	}
	return idx
}
