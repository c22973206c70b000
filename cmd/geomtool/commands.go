package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-geom/internal/anim"
	"github.com/Faultbox/midgard-geom/internal/broadphase"
	"github.com/Faultbox/midgard-geom/internal/logger"
	"github.com/Faultbox/midgard-geom/internal/scene"
	"github.com/Faultbox/midgard-geom/pkg/math"
)

func (t *tool) cmdCollide(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("collide", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	animName := fs.String("anim", "", "Pose attached bodies with this animation")
	at := fs.Float64("t", 0, "Animation time in seconds")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return fmt.Errorf("%w: geomtool collide [-anim name] [-t seconds] <scene.yaml>", errUsage)
	}

	bodies, _, err := t.posedBodies(fs.Arg(0), *animName, *at)
	if err != nil {
		return err
	}

	opts := broadphase.Options{
		CellSize:   t.cfg.Broadphase.CellSize,
		Workers:    t.cfg.Broadphase.Workers,
		UseSpheres: t.cfg.Broadphase.UseSpheres,
	}
	contacts, err := broadphase.Collide(ctx, bodies, opts)
	if err != nil {
		return fmt.Errorf("collision pass: %w", err)
	}

	log := logger.Named("collide")
	for _, c := range contacts {
		log.Debug("contact",
			zap.String("a", c.A), zap.Stringer("a_id", c.AID),
			zap.String("b", c.B), zap.Stringer("b_id", c.BID))
		fmt.Fprintf(t.out, "%-16s %-16s distance %s\n", c.A, c.B, t.num(c.Result.Distance()))
	}
	fmt.Fprintf(t.out, "%d contacts among %d bodies\n", len(contacts), len(bodies))
	return nil
}

func (t *tool) cmdDecompose(args []string) error {
	m, err := parseMatrix(args)
	if err != nil {
		return fmt.Errorf("%w: geomtool decompose <16 row-major values>: %v", errUsage, err)
	}

	scale, rot, pos := m.Decompose()
	logger.Named("decompose").Debug("decomposed",
		logger.Vec3("scale", scale), logger.Quat("rotation", rot), logger.Vec3("position", pos))

	fmt.Fprintf(t.out, "scale:    %s\n", t.vec3(scale))
	fmt.Fprintf(t.out, "rotation: %s\n", t.quat(rot))
	fmt.Fprintf(t.out, "position: %s\n", t.vec3(pos))
	return nil
}

func (t *tool) cmdInvert(args []string) error {
	m, err := parseMatrix(args)
	if err != nil {
		return fmt.Errorf("%w: geomtool invert <16 row-major values>: %v", errUsage, err)
	}

	inv, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("inverting matrix: %w", err)
	}
	t.matrix(inv)
	return nil
}

func (t *tool) cmdSlerp(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: geomtool slerp <w,x,y,z> <w,x,y,z> <t>", errUsage)
	}
	from, err := parseQuat(args[0])
	if err != nil {
		return fmt.Errorf("%w: start rotation: %v", errUsage, err)
	}
	to, err := parseQuat(args[1])
	if err != nil {
		return fmt.Errorf("%w: end rotation: %v", errUsage, err)
	}
	factor, err := strconv.ParseFloat(args[2], 32)
	if err != nil {
		return fmt.Errorf("%w: factor: %v", errUsage, err)
	}

	q := from.Slerp(to, float32(factor))
	fmt.Fprintln(t.out, t.quat(q))
	return nil
}

func (t *tool) cmdSample(args []string) error {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	animName := fs.String("anim", "", "Animation name (default: first)")
	if err := fs.Parse(args); err != nil || fs.NArg() != 2 {
		return fmt.Errorf("%w: geomtool sample [-anim name] <scene.yaml> <seconds>", errUsage)
	}
	seconds, err := strconv.ParseFloat(fs.Arg(1), 64)
	if err != nil {
		return fmt.Errorf("%w: seconds: %v", errUsage, err)
	}

	s, err := scene.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	a := s.Animation(*animName)
	if a == nil {
		if *animName != "" {
			return fmt.Errorf("animation %q not found in %s", *animName, fs.Arg(0))
		}
		logger.Named("sample").Warn("scene has no animations, printing rest pose",
			zap.String("scene", fs.Arg(0)))
	}

	world := s.Pose(a, seconds, t.playerOptions()...)
	for _, name := range s.Hierarchy.Names() {
		fmt.Fprintf(t.out, "%s:\n", name)
		t.matrix(world[name])
	}

	if a != nil && len(a.MeshChannels) > 0 {
		frames := anim.NewPlayer(a, t.playerOptions()...).MeshFrames(seconds)
		meshes := make([]string, 0, len(frames))
		for name := range frames {
			meshes = append(meshes, name)
		}
		sort.Strings(meshes)
		for _, name := range meshes {
			fmt.Fprintf(t.out, "mesh %s: %d\n", name, frames[name])
		}
	}
	return nil
}

func (t *tool) cmdPick(args []string) error {
	fs := flag.NewFlagSet("pick", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	animName := fs.String("anim", "", "Pose attached bodies with this animation")
	at := fs.Float64("t", 0, "Animation time in seconds")
	node := fs.String("node", "", "Ray is given in this node's space")
	if err := fs.Parse(args); err != nil || fs.NArg() != 3 {
		return fmt.Errorf("%w: geomtool pick [-anim name] [-t seconds] [-node name] <scene.yaml> <x,y,z> <dx,dy,dz>", errUsage)
	}
	origin, err := parseVec3(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("%w: origin: %v", errUsage, err)
	}
	dir, err := parseVec3(fs.Arg(2))
	if err != nil {
		return fmt.Errorf("%w: direction: %v", errUsage, err)
	}

	bodies, world, err := t.posedBodies(fs.Arg(0), *animName, *at)
	if err != nil {
		return err
	}

	ray := broadphase.NewRay(origin, dir)
	if *node != "" {
		m, ok := world[*node]
		if !ok {
			return fmt.Errorf("node %q not found in %s", *node, fs.Arg(0))
		}
		ray = ray.Transformed(m)
	}

	hits := broadphase.Raycast(bodies, ray, t.cfg.Broadphase.UseSpheres)
	for _, h := range hits {
		fmt.Fprintf(t.out, "%-16s distance %s at %s\n", h.Body.Name, t.num(h.Distance), t.vec3(h.Point))
	}
	fmt.Fprintf(t.out, "%d hits\n", len(hits))
	return nil
}

// posedBodies loads a scene and places attached bodies at the given time of
// the named animation. An empty name leaves every node at rest. The node
// world matrices are returned alongside.
func (t *tool) posedBodies(path, animName string, seconds float64) ([]broadphase.Body, map[string]math.Mat4, error) {
	s, err := scene.Load(path)
	if err != nil {
		return nil, nil, err
	}
	var a *anim.Animation
	if animName != "" {
		if a = s.Animation(animName); a == nil {
			return nil, nil, fmt.Errorf("animation %q not found in %s", animName, path)
		}
	}
	world := s.Pose(a, seconds, t.playerOptions()...)
	return s.BodiesAt(world), world, nil
}

func (t *tool) playerOptions() []anim.PlayerOption {
	return []anim.PlayerOption{
		anim.WithDefaultTicksPerSecond(t.cfg.Animation.DefaultTicksPerSecond),
		anim.WithLoop(t.cfg.Animation.Loop),
	}
}

// parseMatrix accepts 16 values either as separate arguments or as one
// comma separated argument.
func parseMatrix(args []string) (math.Mat4, error) {
	if len(args) == 1 {
		args = strings.Split(args[0], ",")
	}
	if len(args) != 16 {
		return math.Mat4{}, fmt.Errorf("expected 16 values, got %d", len(args))
	}
	var v [16]float32
	for i, s := range args {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
		if err != nil {
			return math.Mat4{}, fmt.Errorf("value %d: %w", i+1, err)
		}
		v[i] = float32(f)
	}
	return math.Mat4FromRows(v), nil
}

// parseVec3 reads "x,y,z".
func parseVec3(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math.Vec3{}, err
		}
		v[i] = f
	}
	return math.Vec3From64(v[0], v[1], v[2]), nil
}

// parseQuat reads "w,x,y,z".
func parseQuat(s string) (math.Quat, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return math.Quat{}, fmt.Errorf("expected w,x,y,z, got %q", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math.Quat{}, err
		}
		v[i] = f
	}
	return math.QuatFrom64(v[0], v[1], v[2], v[3]), nil
}
