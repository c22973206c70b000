// Package scene loads YAML scene descriptions into collision bodies, a node
// hierarchy and keyframe animations.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	gomath "math"
	"os"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-geom/internal/anim"
	"github.com/Faultbox/midgard-geom/internal/broadphase"
	"github.com/Faultbox/midgard-geom/internal/logger"
	"github.com/Faultbox/midgard-geom/pkg/math"
)

// ErrInvalidScene wraps every validation failure.
var ErrInvalidScene = errors.New("invalid scene")

// Scene is a loaded, validated scene.
type Scene struct {
	Bodies     []broadphase.Body
	Hierarchy  *anim.Hierarchy
	Animations []*anim.Animation

	// attach[i] is the node body i follows, or "".
	attach []string
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading scene %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML scene data. Unknown keys are rejected.
func Parse(data []byte) (*Scene, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	return Build(f)
}

// Build converts a decoded file into kernel types. All validation errors
// are reported together.
func Build(f File) (*Scene, error) {
	log := logger.Named("scene")
	var errs []error

	nodes := make([]anim.Node, 0, len(f.Nodes))
	known := make(map[string]bool, len(f.Nodes))
	for i, n := range f.Nodes {
		if n.Name == "" {
			errs = append(errs, fmt.Errorf("node %d: empty name", i))
			continue
		}
		if known[n.Name] {
			errs = append(errs, fmt.Errorf("node %q: duplicate name", n.Name))
			continue
		}
		known[n.Name] = true

		rot, err := n.Rotation.quat()
		if err != nil {
			errs = append(errs, fmt.Errorf("node %q: %w", n.Name, err))
		}
		scale := math.Vec3{X: 1, Y: 1, Z: 1}
		if n.Scale != nil {
			scale = math.Vec3FromArray(*n.Scale)
		}
		nodes = append(nodes, anim.Node{
			Name:   n.Name,
			Parent: n.Parent,
			Rest: anim.Transform{
				Position: math.Vec3FromArray(n.Position),
				Rotation: rot,
				Scale:    scale,
			},
		})
	}
	for _, n := range f.Nodes {
		if n.Parent != "" && !known[n.Parent] {
			errs = append(errs, fmt.Errorf("node %q: unknown parent %q", n.Name, n.Parent))
		}
	}

	s := &Scene{}
	bodyNames := make(map[string]bool, len(f.Bodies))
	for i, b := range f.Bodies {
		if b.Name == "" {
			errs = append(errs, fmt.Errorf("body %d: empty name", i))
			continue
		}
		if bodyNames[b.Name] {
			errs = append(errs, fmt.Errorf("body %q: duplicate name", b.Name))
			continue
		}
		bodyNames[b.Name] = true
		if b.Node != "" && !known[b.Node] {
			errs = append(errs, fmt.Errorf("body %q: unknown node %q", b.Name, b.Node))
		}

		lo, hi := math.Vec3FromArray(b.Min), math.Vec3FromArray(b.Max)
		if lo.X > hi.X || lo.Y > hi.Y || lo.Z > hi.Z {
			log.Warn("body min exceeds max, reordering corners",
				zap.String("body", b.Name), logger.Vec3("min", lo), logger.Vec3("max", hi))
		}
		s.Bodies = append(s.Bodies, broadphase.NewBody(b.Name, math.AABBFromPoints(lo, hi)))
		s.attach = append(s.attach, b.Node)
	}

	for i := range f.Animations {
		a, err := buildAnimation(&f.Animations[i], known)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s.Animations = append(s.Animations, a)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, errors.Join(errs...))
	}

	h, err := anim.NewHierarchy(nodes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	s.Hierarchy = h

	log.Debug("scene built",
		zap.Int("bodies", len(s.Bodies)),
		zap.Int("nodes", len(nodes)),
		zap.Int("animations", len(s.Animations)))
	return s, nil
}

func buildAnimation(spec *AnimationSpec, nodes map[string]bool) (*anim.Animation, error) {
	var errs []error
	a := &anim.Animation{
		Name:           spec.Name,
		Duration:       spec.Duration,
		TicksPerSecond: spec.TicksPerSecond,
	}
	if spec.TicksPerSecond < 0 {
		errs = append(errs, fmt.Errorf("negative ticks_per_second %v", spec.TicksPerSecond))
	}

	for _, cs := range spec.Channels {
		if !nodes[cs.Node] {
			errs = append(errs, fmt.Errorf("channel for unknown node %q", cs.Node))
			continue
		}
		ch := anim.NodeChannel{NodeName: cs.Node}

		var ok bool
		if ch.PreState, ok = anim.ParseBehaviour(cs.PreState); !ok {
			errs = append(errs, fmt.Errorf("channel %q: unknown pre_state %q", cs.Node, cs.PreState))
		}
		if ch.PostState, ok = anim.ParseBehaviour(cs.PostState); !ok {
			errs = append(errs, fmt.Errorf("channel %q: unknown post_state %q", cs.Node, cs.PostState))
		}

		ch.PositionKeys = vectorKeys(cs.PositionKeys)
		ch.ScalingKeys = vectorKeys(cs.ScalingKeys)
		for _, k := range cs.RotationKeys {
			q, err := k.RotationSpec.quat()
			if err != nil {
				errs = append(errs, fmt.Errorf("channel %q: rotation key at %v: %w", cs.Node, k.Time, err))
				continue
			}
			ch.RotationKeys = append(ch.RotationKeys, anim.QuatKey{Time: k.Time, Value: q})
		}
		anim.SortKeys(ch.RotationKeys)
		a.Channels = append(a.Channels, ch)
	}

	for _, ms := range spec.MeshChannels {
		mc := anim.MeshChannel{MeshName: ms.Mesh}
		for _, k := range ms.Keys {
			mc.Keys = append(mc.Keys, anim.MeshKey{Time: k.Time, Value: k.Value})
		}
		anim.SortKeys(mc.Keys)
		a.MeshChannels = append(a.MeshChannels, mc)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("animation %q: %w", spec.Name, errors.Join(errs...))
	}
	return a, nil
}

func vectorKeys(specs []VectorKeySpec) []anim.VectorKey {
	if len(specs) == 0 {
		return nil
	}
	keys := make([]anim.VectorKey, len(specs))
	for i, k := range specs {
		keys[i] = anim.VectorKey{Time: k.Time, Value: math.Vec3FromArray(k.Value)}
	}
	anim.SortKeys(keys)
	return keys
}

// quat converts the spec into a unit quaternion. A nil or empty spec is
// the identity.
func (r *RotationSpec) quat() (math.Quat, error) {
	switch {
	case r == nil || (r.Axis == nil && r.Quat == nil):
		return math.QuatIdentity(), nil
	case r.Axis != nil && r.Quat != nil:
		return math.Quat{}, errors.New("rotation sets both axis and quat")
	case r.Quat != nil:
		q := math.Quat{W: r.Quat[0], X: r.Quat[1], Y: r.Quat[2], Z: r.Quat[3]}
		if q.Length() == 0 {
			return math.Quat{}, errors.New("zero quaternion")
		}
		return q.Normalize(), nil
	default:
		axis := math.Vec3FromArray(*r.Axis)
		if axis.SquareLength() == 0 {
			return math.Quat{}, errors.New("zero rotation axis")
		}
		return math.QuatFromAxisAngle(axis, r.Angle*gomath.Pi/180), nil
	}
}

// Animation returns the named animation, or the first one when name is
// empty. It returns nil when nothing matches.
func (s *Scene) Animation(name string) *anim.Animation {
	for _, a := range s.Animations {
		if name == "" || a.Name == name {
			return a
		}
	}
	return nil
}

// AnimationNames returns the names of all animations, sorted.
func (s *Scene) AnimationNames() []string {
	names := make([]string, 0, len(s.Animations))
	for _, a := range s.Animations {
		names = append(names, a.Name)
	}
	sort.Strings(names)
	return names
}

// Pose evaluates a at the given time and resolves world matrices for every
// node. A nil animation yields the rest pose.
func (s *Scene) Pose(a *anim.Animation, seconds float64, opts ...anim.PlayerOption) map[string]math.Mat4 {
	var locals map[string]math.Mat4
	if a != nil {
		locals = anim.NewPlayer(a, opts...).Evaluate(seconds, s.Hierarchy.RestPose())
	}
	return s.Hierarchy.WorldMatrices(locals)
}

// BodiesAt returns the bodies with attached ones moved by their node's world
// matrix. Unattached bodies are returned unchanged.
func (s *Scene) BodiesAt(world map[string]math.Mat4) []broadphase.Body {
	out := make([]broadphase.Body, len(s.Bodies))
	for i, b := range s.Bodies {
		m, ok := world[s.attach[i]]
		if s.attach[i] == "" || !ok {
			out[i] = b
			continue
		}
		out[i] = b.Transformed(m)
	}
	return out
}
