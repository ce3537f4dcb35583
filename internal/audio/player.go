// internal/audio/player.go
package audio

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
)

var (
	ErrNotInitialized = errors.New("audio playback not initialized")
	ErrAlreadyPlaying = errors.New("audio playback already running")
	ErrNotPlaying     = errors.New("audio playback not running")
)

// Config holds audio playback configuration
type Config struct {
	DeviceIndex int    // -1 for default device
	SampleRate  uint32 // e.g., 48000
	Channels    uint32 // 1 for mono, 2 for stereo
	BufferSize  uint32 // frames per callback
}

// DefaultConfig returns sensible defaults for sidetone playback
func DefaultConfig() Config {
	return Config{
		DeviceIndex: -1,
		SampleRate:  48000,
		Channels:    1,
		BufferSize:  1024,
	}
}

// Beeper plays signal strings as tone sequences on an output device
type Beeper struct {
	config  Config
	ctx     *malgo.AllocatedContext
	device  *malgo.Device
	playing bool
	cancel  context.CancelFunc
	mu      sync.RWMutex
}

// New creates a new beeper instance
func New(cfg Config) *Beeper {
	return &Beeper{config: cfg}
}

// Init initializes the audio backend
func (b *Beeper) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	ctxConfig := malgo.ContextConfig{}
	ctx, err := malgo.InitContext(nil, ctxConfig, nil)
	if err != nil {
		return fmt.Errorf("init audio context: %w", err)
	}
	b.ctx = ctx

	return nil
}

// ListDevices returns available playback devices
func (b *Beeper) ListDevices() ([]malgo.DeviceInfo, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.ctx == nil {
		return nil, ErrNotInitialized
	}

	infos, err := b.ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("enumerate devices: %w", err)
	}

	return infos, nil
}

// Play renders the signal string as audio and blocks until the sequence
// has been played, the context is canceled, or Stop is called. Runes
// other than the timing's mark symbol are played as silence.
func (b *Beeper) Play(ctx context.Context, signal string, t Timing) error {
	playCtx, cancelPlay := context.WithCancel(ctx)
	defer cancelPlay()

	b.mu.Lock()
	if b.playing {
		b.mu.Unlock()
		return ErrAlreadyPlaying
	}
	if b.ctx == nil {
		b.mu.Unlock()
		return ErrNotInitialized
	}
	// Claim playback before letting the lock go, so a second Play cannot
	// slip in during device setup. Stop works from this point on.
	b.playing = true
	b.cancel = cancelPlay
	audioCtx := b.ctx
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		if b.device != nil {
			_ = b.device.Stop()
			b.device.Uninit()
			b.device = nil
		}
		b.playing = false
		b.cancel = nil
		b.mu.Unlock()
	}()

	samples := renderSignal(signal, t, float64(b.config.SampleRate), int(b.config.Channels))
	if len(samples) == 0 {
		return nil
	}
	buf := float32ToBytes(samples)

	deviceConfig := malgo.DeviceConfig{
		DeviceType:         malgo.Playback,
		SampleRate:         b.config.SampleRate,
		PeriodSizeInFrames: b.config.BufferSize,
		Playback: malgo.SubConfig{
			Format:   malgo.FormatF32,
			Channels: b.config.Channels,
		},
	}

	// Select specific device if requested
	if b.config.DeviceIndex >= 0 {
		devices, err := b.ListDevices()
		if err != nil {
			return err
		}
		if b.config.DeviceIndex >= len(devices) {
			return fmt.Errorf("device index %d out of range (have %d devices)",
				b.config.DeviceIndex, len(devices))
		}
		deviceConfig.Playback.DeviceID = devices[b.config.DeviceIndex].ID.Pointer()
	}

	done := make(chan struct{})
	pos := 0
	finished := false

	// Callback feeds the pre-rendered buffer to the device. miniaudio
	// invokes it serially, so the cursor needs no locking.
	onSendFrames := func(outputSamples, inputSamples []byte, frameCount uint32) {
		if len(outputSamples) == 0 {
			return
		}

		n := copy(outputSamples, buf[pos:])
		pos += n

		// Zero-fill the tail once the buffer is exhausted
		for i := n; i < len(outputSamples); i++ {
			outputSamples[i] = 0
		}

		if pos >= len(buf) && !finished {
			finished = true
			close(done)
		}
	}

	deviceCallbacks := malgo.DeviceCallbacks{
		Data: onSendFrames,
	}

	device, err := malgo.InitDevice(audioCtx.Context, deviceConfig, deviceCallbacks)
	if err != nil {
		return fmt.Errorf("init device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		return fmt.Errorf("start device: %w", err)
	}

	b.mu.Lock()
	b.device = device
	b.mu.Unlock()

	// Block until the buffer drains or playback is interrupted
	select {
	case <-done:
	case <-playCtx.Done():
	}

	return ctx.Err()
}

// Stop interrupts the current playback
func (b *Beeper) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.playing {
		return ErrNotPlaying
	}
	if b.cancel != nil {
		b.cancel()
	}
	return nil
}

// Close releases all audio resources
func (b *Beeper) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Unblock an active Play call
	if b.cancel != nil {
		b.cancel()
	}

	if b.device != nil {
		_ = b.device.Stop()
		b.device.Uninit()
		b.device = nil
		b.playing = false
	}

	if b.ctx != nil {
		if err := b.ctx.Uninit(); err != nil {
			return fmt.Errorf("uninit context: %w", err)
		}
		b.ctx.Free()
		b.ctx = nil
	}

	return nil
}

// IsPlaying returns true if playback is active
func (b *Beeper) IsPlaying() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.playing
}
