package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/mpromonet/tflite-letters/internal/classify"
	"github.com/mpromonet/tflite-letters/internal/config"
	"github.com/mpromonet/tflite-letters/internal/engine/tflite"
	"github.com/mpromonet/tflite-letters/internal/logger"
	"github.com/mpromonet/tflite-letters/internal/pipeline"
	"github.com/mpromonet/tflite-letters/internal/sample"
	"github.com/mpromonet/tflite-letters/internal/status"
)

func main() {
	config.LoadEnv()

	cfg := &config.Config{}
	cmd := &cli.Command{
		Name:  "tflite-letters",
		Usage: "classify a 28x28 letter sample with an int8 TFLite model",
		Flags: config.Flags(cfg),
		Action: func(ctx context.Context, _ *cli.Command) error {
			return run(ctx, cfg)
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	opts, err := pipelineOptions(cfg)
	if err != nil {
		return err
	}

	eng := tflite.New(tflite.Options{
		ModelPath: cfg.ModelPath,
		Threads:   int(cfg.Threads),
		EdgeTPU:   cfg.EdgeTPU,
		InputLen:  sample.Pixels,
		OutputLen: classify.NumClasses,
	}, log)
	defer eng.Close()

	store := status.NewStore()
	if cfg.Listen != "" {
		srv := status.NewServer(cfg.Listen, status.NewRouter(store, cfg.StaticDir, log), log)
		srv.Start()
		defer shutdown(srv, log)
	}

	p := pipeline.New(eng, os.Stdout, log, opts, store)
	_, err = p.Run(ctx)
	switch {
	case err == nil:
		if !cfg.Once {
			p.Idle(ctx)
		}
		return nil
	case p.State().Failed():
		if !cfg.Once {
			p.Halt(ctx)
		}
		return err
	case errors.Is(err, context.Canceled):
		return nil
	default:
		return err
	}
}

func pipelineOptions(cfg *config.Config) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	opts.StartupDelay = cfg.StartupDelay
	opts.InitDelay = cfg.InitDelay
	opts.IdlePeriod = cfg.IdlePeriod
	opts.Threshold = float32(cfg.Threshold)
	opts.ClampConfidence = cfg.ClampConfidence

	if cfg.LabelsPath != "" {
		labels, err := classify.LoadLabels(cfg.LabelsPath)
		if err != nil {
			return opts, err
		}
		opts.Labels = labels
	}
	if cfg.SamplePath != "" {
		img, err := sample.Load(cfg.SamplePath)
		if err != nil {
			return opts, err
		}
		opts.Image = img
		opts.ExpectedLabel = -1
	}
	return opts, nil
}

func shutdown(srv *status.Server, log *zap.SugaredLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnw("status server shutdown", "error", err)
	}
}
