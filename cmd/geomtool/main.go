// geomtool is a CLI utility for exercising the geometry kernel: matrix
// decomposition and inversion, quaternion interpolation, collision queries
// and animation sampling over YAML scenes.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-geom/internal/config"
	"github.com/Faultbox/midgard-geom/internal/logger"
)

var errUsage = errors.New("usage")

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) < 1 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	t := &tool{cfg: cfg, out: os.Stdout}
	if err := t.run(ctx, args[0], args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
		} else {
			logger.Error("command failed", zap.String("command", args[0]), zap.Error(err))
		}
		stop()
		os.Exit(1)
	}
}

// tool holds what every command needs.
type tool struct {
	cfg *config.Config
	out io.Writer
}

func (t *tool) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "collide":
		return t.cmdCollide(ctx, args)
	case "decompose":
		return t.cmdDecompose(args)
	case "invert", "inv":
		return t.cmdInvert(args)
	case "slerp":
		return t.cmdSlerp(args)
	case "sample":
		return t.cmdSample(args)
	case "pick":
		return t.cmdPick(args)
	case "help", "-h", "--help":
		printUsage(t.out)
		return nil
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `geomtool - geometry kernel utility

Usage:
  geomtool [flags] <command> [options]

Commands:
  collide <scene.yaml>                  Report overlapping bodies
  decompose <m11 m12 ... m44>           Split a row-major matrix into scale, rotation, position
  invert <m11 m12 ... m44>              Print the inverse of a row-major matrix
  slerp <w,x,y,z> <w,x,y,z> <t>         Interpolate between two rotations
  sample <scene.yaml> <seconds>         Evaluate an animation into world matrices
  pick <scene.yaml> <x,y,z> <dx,dy,dz>  List bodies crossed by a ray, nearest first

Flags:
  -config <path>   Config file
  -debug           Debug logging
  -cell <size>     Broadphase grid cell size
  -workers <n>     Narrow phase workers
  -spheres         Collide bounding spheres instead of boxes
  -loop            Loop animations when sampling

Examples:
  geomtool decompose 2 0 0 1  0 2 0 2  0 0 2 3  0 0 0 1
  geomtool slerp 1,0,0,0 0.7071,0,0,0.7071 0.5
  geomtool -spheres collide scene.yaml
  geomtool sample -anim walk scene.yaml 1.5
  geomtool pick scene.yaml 0,10,0 0,-1,0`)
}
