package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vancomm/funnyboom/internal/mines"
)

const SampleRate = beep.SampleRate(22050)

// Format is mono 16-bit, like the rendered effects.
var Format = beep.Format{SampleRate: SampleRate, NumChannels: 1, Precision: 2}

type waveType int

const (
	waveSquare waveType = iota
	waveSine
)

// oscillator generates a raw wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     waveType
	rate     beep.SampleRate
}

func newOscillator(freq float64, duration time.Duration, wave waveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, duration: rate.N(duration), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case waveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release over a fixed length.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if remaining := e.totalSamples - e.position; remaining < e.releaseSamples {
			vol = min(vol, float64(remaining)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// crusher drives the signal through tanh and quantizes it to a few bits,
// which gives the effects their arcade grit.
type crusher struct {
	streamer beep.Streamer
	drive    float64
	steps    float64
}

func newCrusher(s beep.Streamer, bits int, drive float64) beep.Streamer {
	return &crusher{streamer: s, drive: drive, steps: float64(int(1)<<bits - 1)}
}

func (c *crusher) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = c.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		for ch := range samples[i] {
			amplified := math.Tanh(samples[i][ch] * c.drive * 1.2)
			quantized := math.Round((amplified*0.5+0.5)*c.steps) / c.steps
			samples[i][ch] = quantized*2 - 1
		}
	}
	return n, ok
}

func (c *crusher) Err() error { return c.streamer.Err() }

type arpeggio struct {
	notes    []float64
	step     time.Duration
	gate     time.Duration
	tail     time.Duration
	attack   time.Duration
	release  time.Duration
	partial  func(freq float64) float64
	mainMix  float64
	extraMix float64
}

// stream plays each note as a pair of square waves (the main pitch and
// the partial) gated shorter than the step, then a silent tail.
func (a arpeggio) stream(rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, 2*len(a.notes)+1)
	for _, freq := range a.notes {
		tone := beep.Mix(
			newVolume(newOscillator(freq, a.gate, waveSquare, rate), a.mainMix),
			newVolume(newOscillator(a.partial(freq), a.gate, waveSquare, rate), a.extraMix),
		)
		parts = append(parts,
			newEnvelope(tone, a.gate, a.attack, a.release, rate),
			beep.Silence(rate.N(a.step-a.gate)),
		)
	}
	parts = append(parts, beep.Silence(rate.N(a.tail)))
	return beep.Seq(parts...)
}

var discovery = arpeggio{
	notes:    []float64{659.25, 830.61, 987.77, 1318.51, 987.77, 1318.51},
	step:     75 * time.Millisecond,
	gate:     65 * time.Millisecond,
	tail:     80 * time.Millisecond,
	attack:   6 * time.Millisecond,
	release:  12 * time.Millisecond,
	partial:  func(f float64) float64 { return f * 1.008 },
	mainMix:  0.57,
	extraMix: 0.3,
}

var victory = arpeggio{
	notes: []float64{
		523.25, 659.25, 783.99,
		659.25, 783.99, 1046.50,
		783.99, 1046.50, 1318.51,
	},
	step:     85 * time.Millisecond,
	gate:     75 * time.Millisecond,
	tail:     140 * time.Millisecond,
	attack:   5 * time.Millisecond,
	release:  18 * time.Millisecond,
	partial:  func(f float64) float64 { return f * 2 },
	mainMix:  0.62,
	extraMix: 0.2,
}

var countdown = arpeggio{
	notes:    []float64{1560},
	step:     110 * time.Millisecond,
	gate:     110 * time.Millisecond,
	attack:   4 * time.Millisecond,
	release:  30 * time.Millisecond,
	partial:  func(f float64) float64 { return f + 7 },
	mainMix:  0.58,
	extraMix: 0.36,
}

const (
	explosionDuration = 720 * time.Millisecond
	clickDuration     = 30 * time.Millisecond
)

// explosion is a falling square wave over a low rumble, with a noise burst
// on the attack. The noise comes from a fixed-seed LCG so every explosion
// sounds the same.
type explosion struct {
	rate     beep.SampleRate
	position int
	total    int
	lcg      uint64
}

func newExplosion(rate beep.SampleRate) beep.Streamer {
	return &explosion{rate: rate, total: rate.N(explosionDuration), lcg: 0xF00DBA11}
}

func (e *explosion) noise() float64 {
	e.lcg = e.lcg*6364136223846793005 + 1
	return float64((e.lcg>>32)&0xFFFF)/0xFFFF*2 - 1
}

func (e *explosion) Stream(samples [][2]float64) (n int, ok bool) {
	duration := explosionDuration.Seconds()
	for i := range samples {
		if e.position >= e.total {
			return i, i > 0
		}

		t := float64(e.position) / float64(e.rate)
		progress := min(1, t/duration)
		pitch := 170 - 145*progress
		square := 1.0
		if phase := t*pitch - math.Floor(t*pitch); phase >= 0.48 {
			square = -1
		}
		noise := e.noise()
		transient := math.Exp(-t * 19)
		body := math.Exp(-t * 4.8)
		rumble := math.Sin(2*math.Pi*52*t) * math.Exp(-t*3.1)

		val := square*body*0.34 + noise*transient*0.82 + rumble*0.36 + noise*body*0.18
		if t < 0.045 {
			val += noise * 0.5 * (0.045 - t) / 0.045
		}
		samples[i][0] = val
		samples[i][1] = val
		e.position++
	}
	return len(samples), true
}

func (e *explosion) Err() error { return nil }

// Synth renders the game's sound effects. Every call returns a fresh
// streamer.
type Synth struct {
	rate   beep.SampleRate
	volume float64
}

func NewSynth(volume float64) *Synth {
	return &Synth{rate: SampleRate, volume: volume}
}

func (s *Synth) Streamer(effect mines.SoundEffect) beep.Streamer {
	var raw beep.Streamer
	switch effect {
	case mines.SoundExplosion:
		raw = newCrusher(newExplosion(s.rate), 4, 0.92)
	case mines.SoundSpecialSquareDiscovered:
		raw = newCrusher(discovery.stream(s.rate), 5, 0.86)
	case mines.SoundVictory:
		raw = newCrusher(victory.stream(s.rate), 5, 0.88)
	case mines.SoundCountdownBeep:
		raw = newCrusher(countdown.stream(s.rate), 5, 0.74)
	case mines.SoundFlagPlaced:
		click := newOscillator(180, clickDuration, waveSine, s.rate)
		raw = newEnvelope(click, clickDuration, time.Millisecond, 25*time.Millisecond, s.rate)
	default:
		return nil
	}
	return newVolume(raw, s.volume)
}

// Duration is how long the effect plays.
func Duration(effect mines.SoundEffect) time.Duration {
	switch effect {
	case mines.SoundExplosion:
		return explosionDuration
	case mines.SoundSpecialSquareDiscovered:
		return discovery.length()
	case mines.SoundVictory:
		return victory.length()
	case mines.SoundCountdownBeep:
		return countdown.length()
	case mines.SoundFlagPlaced:
		return clickDuration
	}
	return 0
}

func (a arpeggio) length() time.Duration {
	return time.Duration(len(a.notes))*a.step + a.tail
}
