package analysis

import (
	"math"
	"testing"
)

func TestDominantFrequency(t *testing.T) {
	const rate = 60.0
	data := make([]float64, 240)
	for i := range data {
		ts := float64(i) / rate
		data[i] = 100 + 20*math.Sin(2*math.Pi*1.5*ts) + 3*math.Sin(2*math.Pi*6*ts)
	}

	freq, power := DominantFrequency(data, rate)
	if math.Abs(freq-1.5) > 1e-9 {
		t.Errorf("expected 1.5 Hz, got %f", freq)
	}
	if power <= 0 {
		t.Errorf("expected positive power, got %f", power)
	}
}

func TestPowerSpectrumRemovesOffset(t *testing.T) {
	data := []float64{5, 5, 5, 5, 5, 5, 5, 5}
	for i, v := range PowerSpectrum(data) {
		if v > 1e-9 {
			t.Errorf("bin %d: expected no energy in a constant series, got %f", i, v)
		}
	}
	if PowerSpectrum([]float64{1}) != nil {
		t.Error("expected nil spectrum for a single sample")
	}
	if f, p := DominantFrequency([]float64{1, 2}, 60); f != 0 || p != 0 {
		t.Errorf("expected no dominant frequency, got %f/%f", f, p)
	}
}

func TestSettleIndex(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		frac float64
		want int
	}{
		{"decays", []float64{10, 8, 6, 0.5, 0.2, 0.1}, 0.1, 3},
		{"spikes at end", []float64{10, 0.1, 0.1, 5}, 0.1, -1},
		{"empty", nil, 0.1, -1},
		{"all zero", []float64{0, 0}, 0.1, -1},
		{"starts settled", []float64{1, 1, 1}, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SettleIndex(tt.data, tt.frac); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
