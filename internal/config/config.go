// Package config gathers the harness settings from the environment, an
// optional .env file and command line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

const envPrefix = "LETTERS_"

type Config struct {
	ModelPath  string
	LabelsPath string
	SamplePath string
	Threads    int64
	EdgeTPU    bool

	StartupDelay time.Duration
	InitDelay    time.Duration
	IdlePeriod   time.Duration

	Threshold       float64
	ClampConfidence bool

	Listen    string
	StaticDir string
	Once      bool
	LogLevel  string
}

// LoadEnv loads .env files into the process environment. Missing files are
// ignored and variables already set win.
func LoadEnv(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

func env(name string) cli.ValueSourceChain {
	return cli.EnvVars(envPrefix + name)
}

// Flags binds every setting to a flag with an LETTERS_* environment fallback.
func Flags(cfg *Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "model",
			Usage:       "path to the int8 .tflite model",
			Value:       "models/emnist_letters_int8.tflite",
			Destination: &cfg.ModelPath,
			Sources:     env("MODEL"),
		},
		&cli.StringFlag{
			Name:        "labels",
			Usage:       "optional label file, one class per line (default A-Z)",
			Destination: &cfg.LabelsPath,
			Sources:     env("LABELS"),
		},
		&cli.StringFlag{
			Name:        "sample",
			Usage:       "optional pre-captured image file (default: built-in sample)",
			Destination: &cfg.SamplePath,
			Sources:     env("SAMPLE"),
		},
		&cli.IntFlag{
			Name:        "threads",
			Usage:       "interpreter threads",
			Value:       1,
			Destination: &cfg.Threads,
			Sources:     env("THREADS"),
		},
		&cli.BoolFlag{
			Name:        "edgetpu",
			Usage:       "delegate to the first Edge TPU found",
			Destination: &cfg.EdgeTPU,
			Sources:     env("EDGETPU"),
		},
		&cli.DurationFlag{
			Name:        "startup-delay",
			Usage:       "wait before the banner so a terminal can attach",
			Value:       3 * time.Second,
			Destination: &cfg.StartupDelay,
			Sources:     env("STARTUP_DELAY"),
		},
		&cli.DurationFlag{
			Name:        "init-delay",
			Usage:       "wait after the engine is initialized",
			Value:       3 * time.Second,
			Destination: &cfg.InitDelay,
			Sources:     env("INIT_DELAY"),
		},
		&cli.DurationFlag{
			Name:        "idle-period",
			Usage:       "interval of the waiting message after a run",
			Value:       2 * time.Second,
			Destination: &cfg.IdlePeriod,
			Sources:     env("IDLE_PERIOD"),
		},
		&cli.FloatFlag{
			Name:        "threshold",
			Usage:       "list classes whose probability is above this value",
			Value:       0.05,
			Destination: &cfg.Threshold,
			Sources:     env("THRESHOLD"),
		},
		&cli.BoolFlag{
			Name:        "clamp-confidence",
			Usage:       "clamp displayed confidences to [0,100]%",
			Destination: &cfg.ClampConfidence,
			Sources:     env("CLAMP_CONFIDENCE"),
		},
		&cli.StringFlag{
			Name:        "listen",
			Usage:       "address of the status API, empty to disable",
			Destination: &cfg.Listen,
			Sources:     env("LISTEN"),
		},
		&cli.StringFlag{
			Name:        "static",
			Usage:       "directory served by the status API",
			Destination: &cfg.StaticDir,
			Sources:     env("STATIC"),
		},
		&cli.BoolFlag{
			Name:        "once",
			Usage:       "exit after the run instead of idling",
			Destination: &cfg.Once,
			Sources:     env("ONCE"),
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "debug, info, warn or error",
			Value:       "info",
			Destination: &cfg.LogLevel,
			Sources:     env("LOG_LEVEL"),
		},
	}
}

var ErrInvalid = errors.New("invalid configuration")

func (c *Config) Validate() error {
	if c.ModelPath == "" {
		return fmt.Errorf("%w: model path is required", ErrInvalid)
	}
	if c.Threads < 1 {
		return fmt.Errorf("%w: threads must be >= 1, got %d", ErrInvalid, c.Threads)
	}
	if c.StartupDelay < 0 || c.InitDelay < 0 || c.IdlePeriod < 0 {
		return fmt.Errorf("%w: delays must not be negative", ErrInvalid)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("%w: threshold must not be negative", ErrInvalid)
	}
	return nil
}
