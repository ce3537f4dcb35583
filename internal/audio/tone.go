// internal/audio/tone.go
package audio

import (
	"math"
	"time"
)

const (
	// Peak amplitude of the rendered sine, leaving headroom below full scale
	toneAmplitude = 0.8
	// Attack/release ramp applied at tone edges to avoid clicks
	toneRamp = 5 * time.Millisecond
)

// Timing maps a signal string onto real time and pitch. On marks carry
// the tone, every other rune is rendered as silence of the same length.
type Timing struct {
	On        rune          // signal mark symbol, e.g. '█'
	Off       rune          // signal pause symbol, e.g. '_'
	Tick      time.Duration // real-time length of one signal rune
	Frequency float64       // tone pitch in Hz
}

// toneSegment is a run of consecutive ticks in the same state
type toneSegment struct {
	on    bool
	ticks int
}

// segments collapses a signal string into tone/silence runs so that a
// dash renders as one continuous tone instead of three restarted ones.
func segments(signal string, t Timing) []toneSegment {
	var segs []toneSegment
	for _, r := range signal {
		on := r == t.On
		if len(segs) > 0 && segs[len(segs)-1].on == on {
			segs[len(segs)-1].ticks++
			continue
		}
		segs = append(segs, toneSegment{on: on, ticks: 1})
	}
	return segs
}

// renderSignal renders the signal string as interleaved float32 PCM
func renderSignal(signal string, t Timing, sampleRate float64, channels int) []float32 {
	segs := segments(signal, t)
	if len(segs) == 0 || sampleRate <= 0 || channels < 1 {
		return nil
	}

	framesPerTick := int(math.Round(t.Tick.Seconds() * sampleRate))
	if framesPerTick < 1 {
		framesPerTick = 1
	}

	totalFrames := 0
	for _, seg := range segs {
		totalFrames += seg.ticks * framesPerTick
	}

	out := make([]float32, 0, totalFrames*channels)
	ramp := int(math.Round(toneRamp.Seconds() * sampleRate))
	step := 2 * math.Pi * t.Frequency / sampleRate

	for _, seg := range segs {
		frames := seg.ticks * framesPerTick

		if !seg.on {
			for i := 0; i < frames*channels; i++ {
				out = append(out, 0)
			}
			continue
		}

		r := ramp
		if r > frames/2 {
			r = frames / 2
		}

		for i := 0; i < frames; i++ {
			v := float32(toneAmplitude * math.Sin(step*float64(i)))
			if r > 0 {
				if i < r {
					v *= float32(i) / float32(r)
				}
				if frames-i <= r {
					v *= float32(frames-i) / float32(r)
				}
			}
			for ch := 0; ch < channels; ch++ {
				out = append(out, v)
			}
		}
	}

	return out
}

// float32ToBytes converts float32 samples to raw little-endian bytes
func float32ToBytes(samples []float32) []byte {
	data := make([]byte, len(samples)*4)

	for i, s := range samples {
		bits := math.Float32bits(s)
		offset := i * 4
		data[offset] = byte(bits)
		data[offset+1] = byte(bits >> 8)
		data[offset+2] = byte(bits >> 16)
		data[offset+3] = byte(bits >> 24)
	}

	return data
}
