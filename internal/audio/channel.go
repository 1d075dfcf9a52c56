// Package audio renders editing cues with synthesized tones. The channel is
// fire and forget: if the speaker cannot initialize the stage simply runs
// silent, and playback never blocks the frame loop.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"backstage/server/internal/stage"
)

// DefaultSampleRate matches the common 48kHz device rate.
const DefaultSampleRate = 48000

// movement cues are throttled so a sliding object does not retrigger the
// swish every frame.
const movementCooldown = 180 * time.Millisecond

// Channel synthesizes collision thumps and movement swishes on a shared
// mixer. It implements stage.SoundChannel.
type Channel struct {
	mu           sync.Mutex
	mixer        *beep.Mixer
	rate         beep.SampleRate
	initialized  bool
	lastMovement time.Time
}

// NewChannel creates an uninitialized channel. Call Init before use; until
// then every Play method is a no-op.
func NewChannel(sampleRate int) *Channel {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Channel{
		mixer: &beep.Mixer{},
		rate:  beep.SampleRate(sampleRate),
	}
}

// Init opens the speaker and attaches the mixer. Safe to call twice.
func (c *Channel) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return nil
	}
	if err := speaker.Init(c.rate, c.rate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Close silences the channel. The speaker itself stays open; beep exposes no
// teardown, so clearing the mixer is the whole shutdown.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

// PlayCollisionSound renders a short thump. Faster impacts hit harder and
// slightly lower.
func (c *Channel) PlayCollisionSound(pos stage.Vec3, speed float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	gain := math.Min(0.1+speed*0.04, 0.35)
	freq := math.Max(70, 160-speed*8)
	streamer := beep.Take(c.rate.N(time.Millisecond*160), newThump(c.rate, freq, gain, pan(pos.X)))
	speaker.Lock()
	c.mixer.Add(streamer)
	speaker.Unlock()
}

// PlayMovementSound renders a soft swish, rate limited per channel.
func (c *Channel) PlayMovementSound(pos stage.Vec3, speed float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	now := time.Now()
	if now.Sub(c.lastMovement) < movementCooldown {
		return
	}
	c.lastMovement = now
	gain := math.Min(0.03+speed*0.01, 0.12)
	streamer := beep.Take(c.rate.N(time.Millisecond*120), newSwish(c.rate, gain, pan(pos.X)))
	speaker.Lock()
	c.mixer.Add(streamer)
	speaker.Unlock()
}

// pan maps stage X to a -1..1 stereo position. The stage floor spans roughly
// -12..12 on X.
func pan(x float64) float64 {
	p := x / 12
	if p < -1 {
		p = -1
	}
	if p > 1 {
		p = 1
	}
	return p
}

// thump is a decaying sine, the percussive body of a collision cue.
type thump struct {
	sr   beep.SampleRate
	freq float64
	gain float64
	pan  float64
	pos  int
}

func newThump(sr beep.SampleRate, freq, gain, pan float64) *thump {
	return &thump{sr: sr, freq: freq, gain: gain, pan: pan}
}

func (g *thump) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 18)
		sample := g.gain * envelope * math.Sin(2*math.Pi*g.freq*t)
		left, right := applyPan(sample, g.pan)
		samples[i][0] = left
		samples[i][1] = right
		g.pos++
	}
	return len(samples), true
}

func (g *thump) Err() error { return nil }

// swish is filtered noise with a fast decay, used for drag cues.
type swish struct {
	sr   beep.SampleRate
	gain float64
	pan  float64
	pos  int
	seed int64
	last float64
}

func newSwish(sr beep.SampleRate, gain, pan float64) *swish {
	return &swish{sr: sr, gain: gain, pan: pan, seed: time.Now().UnixNano()}
}

func (g *swish) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 30)
		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		// one-pole low pass keeps the noise from hissing
		g.last += 0.2 * (noise - g.last)
		sample := g.gain * envelope * g.last
		left, right := applyPan(sample, g.pan)
		samples[i][0] = left
		samples[i][1] = right
		g.pos++
	}
	return len(samples), true
}

func (g *swish) Err() error { return nil }

func applyPan(sample, pan float64) (float64, float64) {
	return sample * (1 - pan) / 2, sample * (1 + pan) / 2
}

var _ stage.SoundChannel = (*Channel)(nil)
