package audio

import (
	"math"
	"testing"
	"time"
)

func testTiming() Timing {
	return Timing{
		On:        '█',
		Off:       '_',
		Tick:      10 * time.Millisecond,
		Frequency: 1000,
	}
}

func TestSegments_Empty(t *testing.T) {
	segs := segments("", testTiming())
	if len(segs) != 0 {
		t.Errorf("segments(empty) length = %d, want 0", len(segs))
	}
}

func TestSegments_MergesRuns(t *testing.T) {
	tests := []struct {
		name     string
		signal   string
		expected []toneSegment
	}{
		{"single mark", "█", []toneSegment{{true, 1}}},
		{"single pause", "_", []toneSegment{{false, 1}}},
		{"dot pause dot", "█_█", []toneSegment{{true, 1}, {false, 1}, {true, 1}}},
		{"dash pause dot", "███___█", []toneSegment{{true, 3}, {false, 3}, {true, 1}}},
		{"leading pause", "__██", []toneSegment{{false, 2}, {true, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := segments(tt.signal, testTiming())
			if len(segs) != len(tt.expected) {
				t.Fatalf("segments(%q) length = %d, want %d", tt.signal, len(segs), len(tt.expected))
			}
			for i, want := range tt.expected {
				if segs[i] != want {
					t.Errorf("segments(%q)[%d] = %+v, want %+v", tt.signal, i, segs[i], want)
				}
			}
		})
	}
}

func TestSegments_UnknownRunesArePauses(t *testing.T) {
	// Anything that is not the mark symbol counts as silence
	segs := segments("█x_", testTiming())

	expected := []toneSegment{{true, 1}, {false, 2}}
	if len(segs) != len(expected) {
		t.Fatalf("segments() length = %d, want %d", len(segs), len(expected))
	}
	for i, want := range expected {
		if segs[i] != want {
			t.Errorf("segments()[%d] = %+v, want %+v", i, segs[i], want)
		}
	}
}

func TestRenderSignal_FrameCounts(t *testing.T) {
	// 10ms ticks at 48kHz give 480 frames per tick
	tests := []struct {
		name     string
		signal   string
		expected int
	}{
		{"one mark tick", "█", 480},
		{"mark and pause", "█_", 960},
		{"dash", "███", 1440},
		{"pause only", "_", 480},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := renderSignal(tt.signal, testTiming(), 48000, 1)
			if len(out) != tt.expected {
				t.Errorf("renderSignal(%q) length = %d, want %d", tt.signal, len(out), tt.expected)
			}
		})
	}
}

func TestRenderSignal_Empty(t *testing.T) {
	if out := renderSignal("", testTiming(), 48000, 1); out != nil {
		t.Errorf("renderSignal(empty) = %v, want nil", out)
	}
	if out := renderSignal("█", testTiming(), 0, 1); out != nil {
		t.Errorf("renderSignal with zero sample rate = %v, want nil", out)
	}
	if out := renderSignal("█", testTiming(), 48000, 0); out != nil {
		t.Errorf("renderSignal with zero channels = %v, want nil", out)
	}
}

func TestRenderSignal_SilenceIsZero(t *testing.T) {
	out := renderSignal("___", testTiming(), 48000, 1)

	for i, v := range out {
		if v != 0 {
			t.Fatalf("renderSignal(pause)[%d] = %f, want 0", i, v)
		}
	}
}

func TestRenderSignal_ToneShape(t *testing.T) {
	out := renderSignal("█", testTiming(), 48000, 1)

	if len(out) == 0 {
		t.Fatal("renderSignal returned no samples")
	}

	// Tone ramps in from silence
	if out[0] != 0 {
		t.Errorf("first sample = %f, want 0 (ramp start)", out[0])
	}

	var peak float32
	for _, v := range out {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}

	if peak < 0.5 {
		t.Errorf("peak amplitude = %f, want > 0.5", peak)
	}
	if peak > 0.81 {
		t.Errorf("peak amplitude = %f, want <= amplitude limit", peak)
	}
}

func TestRenderSignal_DashIsContinuous(t *testing.T) {
	// The middle tick of a dash must carry tone, while the middle tick
	// of dot-pause-dot must be silent
	dash := renderSignal("███", testTiming(), 48000, 1)
	split := renderSignal("█_█", testTiming(), 48000, 1)

	if len(dash) != len(split) {
		t.Fatalf("length mismatch: dash %d, split %d", len(dash), len(split))
	}

	var dashPeak float32
	for _, v := range dash[480:960] {
		if v < 0 {
			v = -v
		}
		if v > dashPeak {
			dashPeak = v
		}
	}
	if dashPeak < 0.1 {
		t.Errorf("dash middle tick peak = %f, want tone", dashPeak)
	}

	for i, v := range split[480:960] {
		if v != 0 {
			t.Fatalf("split middle tick sample %d = %f, want silence", i, v)
		}
	}
}

func TestRenderSignal_Stereo(t *testing.T) {
	mono := renderSignal("█", testTiming(), 48000, 1)
	stereo := renderSignal("█", testTiming(), 48000, 2)

	if len(stereo) != 2*len(mono) {
		t.Fatalf("stereo length = %d, want %d", len(stereo), 2*len(mono))
	}

	// Channels are interleaved copies of the same tone
	for i := 0; i < len(stereo); i += 2 {
		if stereo[i] != stereo[i+1] {
			t.Fatalf("stereo frame %d: left %f != right %f", i/2, stereo[i], stereo[i+1])
		}
	}
}

func TestRenderSignal_TinyTick(t *testing.T) {
	// Sub-sample ticks are clamped to one frame each
	timing := testTiming()
	timing.Tick = time.Nanosecond

	out := renderSignal("█_█", timing, 48000, 1)
	if len(out) != 3 {
		t.Errorf("renderSignal with 1ns tick length = %d, want 3", len(out))
	}
}

// goertzelMagnitude measures the normalized magnitude of freq in samples
// with a single Goertzel pass over the whole slice. A pure sine at freq
// yields roughly its amplitude; unrelated frequencies yield near zero.
func goertzelMagnitude(samples []float32, sampleRate, freq float64) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}

	k := (freq / sampleRate) * float64(n)
	omega := (2.0 * math.Pi * k) / float64(n)
	coeff := 2.0 * math.Cos(omega)

	var s0, s1, s2 float64
	for i := 0; i < n; i++ {
		s0 = float64(samples[i]) + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}

	power := s1*s1 + s2*s2 - coeff*s1*s2
	if power < 0 {
		power = 0
	}

	return math.Sqrt(power) * 2.0 / float64(n)
}

func TestRenderSignal_ToneFrequency(t *testing.T) {
	timing := testTiming()
	samples := renderSignal("███", timing, 48000, 1)

	// The dash must carry its energy at the configured frequency. The
	// attack and release ramps shave a little off the ideal magnitude.
	atTone := goertzelMagnitude(samples, 48000, timing.Frequency)
	if atTone < 0.5 {
		t.Errorf("magnitude at %v Hz = %f, want > 0.5", timing.Frequency, atTone)
	}

	offTone := goertzelMagnitude(samples, 48000, 2500)
	if offTone > 0.1 {
		t.Errorf("magnitude at 2500 Hz = %f, want near zero", offTone)
	}

	silence := renderSignal("___", timing, 48000, 1)
	if got := goertzelMagnitude(silence, 48000, timing.Frequency); got > 0.01 {
		t.Errorf("silence magnitude = %f, want near zero", got)
	}
}

func TestFloat32ToBytes_Empty(t *testing.T) {
	result := float32ToBytes([]float32{})
	if len(result) != 0 {
		t.Errorf("float32ToBytes(empty) length = %d, want 0", len(result))
	}
}

func TestFloat32ToBytes_SingleSample(t *testing.T) {
	// IEEE 754 representation of 1.0 in little-endian
	// 1.0 = 0x3F800000
	result := float32ToBytes([]float32{1.0})

	expected := []byte{0x00, 0x00, 0x80, 0x3F}
	if len(result) != 4 {
		t.Fatalf("float32ToBytes() length = %d, want 4", len(result))
	}
	for i, b := range expected {
		if result[i] != b {
			t.Errorf("float32ToBytes()[%d] = 0x%02X, want 0x%02X", i, result[i], b)
		}
	}
}

func TestFloat32ToBytes_MultipleSamples(t *testing.T) {
	// 0.0 = 0x00000000, 1.0 = 0x3F800000, -1.0 = 0xBF800000
	result := float32ToBytes([]float32{0.0, 1.0, -1.0})

	expected := []byte{
		0x00, 0x00, 0x00, 0x00, // 0.0
		0x00, 0x00, 0x80, 0x3F, // 1.0
		0x00, 0x00, 0x80, 0xBF, // -1.0
	}

	if len(result) != len(expected) {
		t.Fatalf("float32ToBytes() length = %d, want %d", len(result), len(expected))
	}
	for i, b := range expected {
		if result[i] != b {
			t.Errorf("float32ToBytes()[%d] = 0x%02X, want 0x%02X", i, result[i], b)
		}
	}
}

func TestFloat32ToBytes_SpecialValues(t *testing.T) {
	tests := []struct {
		name     string
		sample   float32
		expected []byte
	}{
		{
			name:     "positive zero",
			sample:   0.0,
			expected: []byte{0x00, 0x00, 0x00, 0x00},
		},
		{
			name:     "0.5",
			sample:   0.5,
			expected: []byte{0x00, 0x00, 0x00, 0x3F}, // 0x3F000000
		},
		{
			name:     "-0.5",
			sample:   -0.5,
			expected: []byte{0x00, 0x00, 0x00, 0xBF}, // 0xBF000000
		},
		{
			name:     "2.0",
			sample:   2.0,
			expected: []byte{0x00, 0x00, 0x00, 0x40}, // 0x40000000
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := float32ToBytes([]float32{tt.sample})
			if len(result) != 4 {
				t.Fatalf("length = %d, want 4", len(result))
			}
			for i, b := range tt.expected {
				if result[i] != b {
					t.Errorf("byte[%d] = 0x%02X, want 0x%02X", i, result[i], b)
				}
			}
		})
	}
}

func BenchmarkRenderSignal(b *testing.B) {
	timing := testTiming()
	signal := "█_█_█___███_███_███___█_█_█"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = renderSignal(signal, timing, 48000, 1)
	}
}

func BenchmarkFloat32ToBytes(b *testing.B) {
	data := make([]float32, 512)
	for i := range data {
		data[i] = float32(i) / 512
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = float32ToBytes(data)
	}
}
