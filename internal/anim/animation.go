package anim

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-geom/internal/logger"
	"github.com/Faultbox/midgard-geom/pkg/math"
)

// DefaultTicksPerSecond is used when neither the animation nor the player
// declares a tick rate.
const DefaultTicksPerSecond = 25.0

// Animation is a set of node and mesh channels sharing one timeline.
type Animation struct {
	Name string
	// Duration in ticks. Zero or negative means unknown; it is then derived
	// from the channels' key ranges.
	Duration float64
	// TicksPerSecond, 0 if the source did not specify it.
	TicksPerSecond float64
	Channels       []NodeChannel
	MeshChannels   []MeshChannel
}

// Length returns the duration in ticks, derived from the keys when the
// declared duration is not positive.
func (a *Animation) Length() float64 {
	if a.Duration > 0 {
		return a.Duration
	}
	var last float64
	for i := range a.Channels {
		if a.Channels[i].Empty() {
			continue
		}
		_, l := a.Channels[i].Range()
		last = max(last, l)
	}
	for i := range a.MeshChannels {
		if n := len(a.MeshChannels[i].Keys); n > 0 {
			last = max(last, a.MeshChannels[i].Keys[n-1].Time)
		}
	}
	return last
}

// Player evaluates an Animation at wall-clock times.
type Player struct {
	anim           *Animation
	ticksPerSecond float64
	loop           bool
	log            *zap.Logger
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithDefaultTicksPerSecond sets the tick rate used when the animation
// declares none.
func WithDefaultTicksPerSecond(tps float64) PlayerOption {
	return func(p *Player) {
		if tps > 0 && p.anim.TicksPerSecond == 0 {
			p.ticksPerSecond = tps
		}
	}
}

// WithLoop wraps playback time into the animation length.
func WithLoop(loop bool) PlayerOption {
	return func(p *Player) { p.loop = loop }
}

// WithLogger overrides the component logger.
func WithLogger(l *zap.Logger) PlayerOption {
	return func(p *Player) { p.log = l }
}

// NewPlayer creates a player for anim.
func NewPlayer(anim *Animation, opts ...PlayerOption) *Player {
	p := &Player{
		anim:           anim,
		ticksPerSecond: anim.TicksPerSecond,
		log:            logger.Named("anim"),
	}
	if p.ticksPerSecond == 0 {
		p.ticksPerSecond = DefaultTicksPerSecond
	}
	for _, opt := range opts {
		opt(p)
	}

	for i := range anim.Channels {
		if anim.Channels[i].Empty() {
			p.log.Warn("channel has no keys",
				zap.String("animation", anim.Name),
				zap.String("node", anim.Channels[i].NodeName))
		}
	}
	return p
}

// TickAt converts seconds into animation ticks.
func (p *Player) TickAt(seconds float64) float64 {
	ticks := seconds * p.ticksPerSecond
	if p.loop {
		if length := p.anim.Length(); length > 0 {
			ticks = gomath.Mod(ticks, length)
			if ticks < 0 {
				ticks += length
			}
		}
	}
	return ticks
}

// Evaluate returns the local matrix of every animated node at the given
// time in seconds. defaults supplies each node's rest pose; nodes missing
// from it fall back to the identity transform.
func (p *Player) Evaluate(seconds float64, defaults map[string]Transform) map[string]math.Mat4 {
	t := p.TickAt(seconds)
	out := make(map[string]math.Mat4, len(p.anim.Channels))
	for i := range p.anim.Channels {
		ch := &p.anim.Channels[i]
		fallback, ok := defaults[ch.NodeName]
		if !ok {
			fallback = IdentityTransform()
		}
		out[ch.NodeName] = ch.Matrix(t, fallback)
	}
	p.log.Debug("evaluated animation",
		zap.String("animation", p.anim.Name),
		zap.Float64("seconds", seconds),
		zap.Float64("ticks", t),
		zap.Int("nodes", len(out)))
	return out
}

// MeshFrames returns the active attachment index of every mesh channel.
func (p *Player) MeshFrames(seconds float64) map[string]uint32 {
	t := p.TickAt(seconds)
	out := make(map[string]uint32, len(p.anim.MeshChannels))
	for i := range p.anim.MeshChannels {
		ch := &p.anim.MeshChannels[i]
		out[ch.MeshName] = ch.Sample(t)
	}
	return out
}
