// Package synth generates the bouncebox soundscape sample by sample.
package synth

import "math"

const SampleRate = 44100

// Synth is a soft pad whose low-pass opens with kinetic energy, plus a short
// decaying click per bounce. It is not safe for concurrent use.
type Synth struct {
	Time        float64
	FilterState [2]float64
	DelayLine   [2][]float64
	DelayHead   int

	energySmooth float64
	click        float64
	clickPhase   float64
}

func NewSynth() *Synth {
	sampleRate := float64(SampleRate)
	delayLen := int(sampleRate * 0.35)
	return &Synth{
		DelayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

// Bounce triggers a click; strength is clamped to [0,1].
func (s *Synth) Bounce(strength float64) {
	s.click = math.Max(s.click, math.Min(math.Max(strength, 0), 1))
	s.clickPhase = 0
}

// Triangle Wave: Smooth, flute-like, no harsh buzz
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// Low Pass Filter (One Pole)
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// G2 Bb2 D3 F3
var padFreqs = []float64{98.00, 116.54, 146.83, 174.61}

const (
	clickFreq  = 880.0
	clickDecay = 0.9992
	volume     = 0.2
)

// Render fills a stereo buffer. energy is the current kinetic energy.
func (s *Synth) Render(energy float64, out [][]float32) {
	if len(out) < 2 {
		return
	}
	dt := 1.0 / float64(SampleRate)

	for i := range out[0] {
		s.energySmooth = s.energySmooth*0.9995 + energy*0.0005
		cutoff := 250.0 + math.Min(s.energySmooth/50.0, 1200.0)

		sampleL, sampleR := 0.0, 0.0
		g := 1.0 / float64(len(padFreqs))
		for j, f := range padFreqs {
			lfo := math.Sin(s.Time*0.2 + float64(j))
			sampleL += triangle(s.Time*f*0.999) * g * (0.7 + 0.3*lfo)
			sampleR += triangle(s.Time*f*1.001) * g * (0.7 + 0.3*lfo)
		}

		s.FilterState[0] = lpf(sampleL, cutoff, dt, s.FilterState[0])
		s.FilterState[1] = lpf(sampleR, cutoff, dt, s.FilterState[1])

		click := 0.0
		if s.click > 1e-4 {
			click = math.Sin(2*math.Pi*clickFreq*s.clickPhase) * s.click
			s.clickPhase += dt
			s.click *= clickDecay
		}

		delayL := s.DelayLine[0][s.DelayHead]
		delayR := s.DelayLine[1][s.DelayHead]
		mixL := s.FilterState[0] + click + delayL*0.3 + delayR*0.1
		mixR := s.FilterState[1] + click + delayR*0.3 + delayL*0.1
		s.DelayLine[0][s.DelayHead] = mixL * 0.5
		s.DelayLine[1][s.DelayHead] = mixR * 0.5
		s.DelayHead = (s.DelayHead + 1) % len(s.DelayLine[0])

		out[0][i] = float32(mixL * volume)
		out[1][i] = float32(mixR * volume)

		s.Time += dt
	}
}
