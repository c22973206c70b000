package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagCell    = flag.Float64("cell", 0, "Broadphase grid cell size")
	flagWorkers = flag.Int("workers", 0, "Narrow phase worker goroutines")
	flagSpheres = flag.Bool("spheres", false, "Collide bounding spheres instead of boxes")
	flagLoop    = flag.Bool("loop", false, "Loop animations when sampling")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagCell > 0 {
		cfg.Broadphase.CellSize = float32(*flagCell)
	}
	if *flagWorkers > 0 {
		cfg.Broadphase.Workers = *flagWorkers
	}
	if *flagSpheres {
		cfg.Broadphase.UseSpheres = true
	}
	if *flagLoop {
		cfg.Animation.Loop = true
	}
}
