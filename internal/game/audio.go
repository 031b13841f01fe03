package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/Garsondee/Tank-Ricochet/internal/session"
)

const sampleRate = 44100

// tone is a synthesized beep: frequency in Hz, duration in seconds.
type tone struct {
	freq float64
	dur  float64
}

var eventTones = map[session.EventKind]tone{
	session.EventFired:     {freq: 880, dur: 0.05},
	session.EventBounced:   {freq: 520, dur: 0.03},
	session.EventBurnedOut: {freq: 330, dur: 0.06},
	session.EventHit:       {freq: 220, dur: 0.12},
	session.EventGameOver:  {freq: 110, dur: 0.40},
}

// soundBank plays a short beep per gameplay event. The audio context is
// created on first use so a muted session never opens an audio device.
type soundBank struct {
	muted   bool
	ctx     *audio.Context
	players map[session.EventKind]*audio.Player
}

func newSoundBank(muted bool) *soundBank {
	return &soundBank{muted: muted}
}

// Toggle flips mute and returns the new state.
func (sb *soundBank) Toggle() bool {
	sb.muted = !sb.muted
	return sb.muted
}

// Muted reports whether playback is off.
func (sb *soundBank) Muted() bool {
	return sb.muted
}

// OnEvent is a session event sink.
func (sb *soundBank) OnEvent(e session.Event) {
	if sb.muted {
		return
	}
	if _, ok := eventTones[e.Kind]; !ok {
		return
	}
	if sb.ctx == nil {
		sb.init()
	}
	p := sb.players[e.Kind]
	if p == nil {
		return
	}
	_ = p.SetPosition(0)
	p.Play()
}

func (sb *soundBank) init() {
	sb.ctx = audio.NewContext(sampleRate)
	sb.players = make(map[session.EventKind]*audio.Player, len(eventTones))
	for kind, t := range eventTones {
		sb.players[kind] = sb.ctx.NewPlayerFromBytes(beepPCM(t.freq, t.dur))
	}
}

// beepPCM synthesizes a sine beep as 16-bit little-endian stereo with a
// linear fade-out to avoid a click at the end.
func beepPCM(freq, dur float64) []byte {
	n := int(float64(sampleRate) * dur)
	pcm := make([]byte, n*4)
	const amp = 0.3
	for i := 0; i < n; i++ {
		fade := 1 - float64(i)/float64(n)
		v := math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * amp * fade
		s := int16(v * 32767)
		pcm[4*i] = byte(s)
		pcm[4*i+1] = byte(s >> 8)
		pcm[4*i+2] = byte(s)
		pcm[4*i+3] = byte(s >> 8)
	}
	return pcm
}
